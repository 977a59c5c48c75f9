package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saeidalz13/battle-of-warships/db/local"
	"github.com/saeidalz13/battle-of-warships/internal/config"
	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
)

// everyCell fires once at each cell of the grid, row by row. It always
// ends a match, so the lines that follow answer later prompts.
func everyCell() string {
	var sb strings.Builder
	for x := 1; x <= mb.GridSize; x++ {
		for y := 1; y <= mb.GridSize; y++ {
			fmt.Fprintf(&sb, "%d %d\n", x, y)
		}
	}
	return sb.String()
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_PlaysOneMatch(t *testing.T) {
	code, stdout, stderr := runCLI(t, everyCell()+"n\n", "--seed", "11", "--name", "Nelson")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Battle  of Warships")
	assert.Contains(t, stdout, "Your shot: ")
	assert.Contains(t, stdout, "Play again? [y/n]: ")
	assert.True(t,
		strings.Contains(stdout, "VICTORY!") || strings.Contains(stdout, "DEFEAT!"),
		"a match must end with a banner")
	assert.Equal(t, 1, strings.Count(stdout, "Turns: "))
}

func TestRun_PlayAgainStartsFreshMatch(t *testing.T) {
	code, stdout, stderr := runCLI(t, everyCell()+"y\n"+everyCell()+"n\n", "--seed", "5")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, 2, strings.Count(stdout, "Turns: "))
}

func TestRun_EndOfInputQuits(t *testing.T) {
	code, stdout, stderr := runCLI(t, "1 1\n", "--seed", "3")
	require.Equal(t, 0, code, stderr)

	assert.NotContains(t, stdout, "Turns: ")
}

func TestRun_RecordsMatchesInSqlite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	storage := []string{"--storage", config.StorageSqlite, "--sqlite-path", path}

	code, _, stderr := runCLI(t, everyCell()+"n\n", append([]string{"--seed", "8", "--name", "Drake"}, storage...)...)
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr := runCLI(t, "", append([]string{statsCommand, "--player", "Drake"}, storage...)...)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Drake\n")
	assert.Contains(t, stdout, "Games:     1\n")

	code, stdout, stderr = runCLI(t, "", append([]string{statsCommand, "--player", "Hawke"}, storage...)...)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Games:     0\n")

	store, err := local.Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	totals, err := store.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Games)
	assert.Equal(t, totals.Games, totals.Victories+totals.Defeats)
}

func TestRun_InvalidConfig(t *testing.T) {
	code, _, stderr := runCLI(t, "", "--storage", "redis")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "storage type")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, _ := runCLI(t, "", "--board-size", "10")
	assert.Equal(t, 2, code)
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI(t, "", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "--spectate")
}
