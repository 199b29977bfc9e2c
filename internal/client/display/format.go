// FILE: internal/client/display/format.go
package display

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrintJSON writes formatted JSON
func PrettyPrintJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Fprintln(w, string(data))
}
