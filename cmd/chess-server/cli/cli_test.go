package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chess/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGameID = "0b9d5a3e-7c41-4d8e-9f0a-1e2d3c4b5a69"

func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, strings.NewReader(input), &out)
	return out.String(), err
}

func seedDB(t *testing.T, path string) {
	t.Helper()
	store, err := storage.NewStore(path, false)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.RecordNewGame(storage.GameRecord{
		GameID:       testGameID,
		InitialFEN:   "3k4/8/8/8/8/8/8/R2K3R",
		InitialTurn:  "w",
		StartTimeUTC: start,
	})
	store.RecordMove(storage.MoveRecord{
		GameID:       testGameID,
		MoveNumber:   1,
		FromSquare:   "d1",
		ToSquare:     "b1",
		Side:         "w",
		Hook:         "a1c1",
		FENAfterMove: "3k4/8/8/8/8/8/8/1KR4R b",
		MoveTimeUTC:  start.Add(time.Second),
	})

	// Close drains the writer
	require.NoError(t, store.Close())
}

func TestRequiresSubcommand(t *testing.T) {
	_, err := runCLI(t, "")
	assert.Error(t, err)

	_, err = runCLI(t, "", "vacuum")
	assert.ErrorContains(t, err, "unknown subcommand")

	_, err = runCLI(t, "", "init")
	assert.ErrorContains(t, err, "database path required")
}

func TestInitAndQueryEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")

	out, err := runCLI(t, "", "init", "-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized")

	out, err = runCLI(t, "", "query", "-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No games found")
}

func TestQueryGamesAndMoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")
	seedDB(t, path)

	out, err := runCLI(t, "", "query", "-path", path, "-gameId", "*")
	require.NoError(t, err)
	assert.Contains(t, out, testGameID)
	assert.Contains(t, out, "3k4/8/8/8/8/8/8/R2K3R")
	assert.Contains(t, out, "Found 1 game(s)")

	out, err = runCLI(t, "", "moves", "-path", path, "-gameId", testGameID)
	require.NoError(t, err)
	assert.Contains(t, out, "d1b1")
	assert.Contains(t, out, "a1c1")
	assert.Contains(t, out, "Found 1 move(s)")

	_, err = runCLI(t, "", "moves", "-path", path, "-gameId", "nope")
	assert.ErrorContains(t, err, "valid game ID required")
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")
	_, err := runCLI(t, "", "init", "-path", path)
	require.NoError(t, err)

	out, err := runCLI(t, "n\n", "delete", "-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")
	assert.FileExists(t, path)

	out, err = runCLI(t, "yes\n", "delete", "-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Database deleted")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")
	_, err := runCLI(t, "", "init", "-path", path)
	require.NoError(t, err)

	_, err = runCLI(t, "", "delete", "-path", path, "-force")
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}
