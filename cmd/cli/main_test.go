package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goshuffle/domain/shuffle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Cleanup(func() { shuffle.SetDefaultStrategy(nil) })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestShuffleCommandFaro(t *testing.T) {
	out, err := run(t, "", "shuffle", "--strategy", "faro:out", "1", "2", "3", "4", "5", "6", "7", "8")
	require.NoError(t, err)
	assert.Equal(t, "1 5 2 6 3 7 4 8\n", out)
}

func TestNShuffleCommandReadsJSONFromStdin(t *testing.T) {
	out, err := run(t, `[1,2,3,4,5,6,7,8]`, "nshuffle", "3", "--strategy", "faro:in")
	require.NoError(t, err)
	assert.Equal(t, "[8,7,6,5,4,3,2,1]\n", out)
}

func TestNShuffleZeroIsIdentity(t *testing.T) {
	out, err := run(t, "a,b,c", "nshuffle", "0", "--strategy", "gsr")
	require.NoError(t, err)
	assert.Equal(t, "a b c\n", out)
}

func TestShuffleCommandSeeded(t *testing.T) {
	first, err := run(t, "", "shuffle", "--seed", "3", "a", "b", "c", "d", "e")
	require.NoError(t, err)
	second, err := run(t, "", "shuffle", "--seed", "3", "a", "b", "c", "d", "e")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestShuffleCommandFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")
	require.NoError(t, os.WriteFile(path, []byte("card\n6\n5\n4\n3\n2\n1\n"), 0o600))

	out, err := run(t, "", "shuffle", "--strategy", "weave:in", "--file", path, "--header")
	require.NoError(t, err)
	assert.Equal(t, "3 6 2 5 1 4\n", out)
}

func TestDefaultStrategyFromEnvironment(t *testing.T) {
	t.Setenv("SHUFFLE_DEFAULT_STRATEGY", "faro:out")
	out, err := run(t, "", "default")
	require.NoError(t, err)
	assert.Equal(t, "faro:out\n", out)

	out, err = run(t, "", "--default-strategy", "gsr", "default")
	require.NoError(t, err)
	assert.Equal(t, "gsr\n", out)
}

func TestInvalidConfigurationFails(t *testing.T) {
	t.Setenv("SHUFFLE_DEFAULT_STRATEGY", "bogo")
	_, err := run(t, "", "default")
	assert.Error(t, err)
}

func TestStrategiesCommand(t *testing.T) {
	out, err := run(t, "", "strategies")
	require.NoError(t, err)
	for _, name := range shuffle.Names() {
		assert.Contains(t, out, name)
	}
}

func TestSimulateCommandExportsWorkbook(t *testing.T) {
	xlsx := filepath.Join(t.TempDir(), "sim.xlsx")
	out, err := run(t, "", "simulate", "--strategy", "gsr", "--deck", "3", "--trials", "300", "--seed", "4", "--xlsx", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "Shuffle simulation")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
}

func TestSimulateCommandRejectsFormat(t *testing.T) {
	_, err := run(t, "", "simulate", "--deck", "3", "--trials", "10", "--format", "pdf")
	assert.Error(t, err)
}

func TestVariationCommand(t *testing.T) {
	out, err := run(t, "", "variation", "--deck", "52", "--max", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "0.334")
}

func TestLargeDeckRiffleOutputIsFinite(t *testing.T) {
	out, err := run(t, "", "variation", "--deck", "200", "--max", "12")
	require.NoError(t, err)
	assert.NotContains(t, out, "NaN")

	out, err = run(t, "", "simulate", "--strategy", "gsr", "--deck", "200", "--repeats", "7", "--trials", "10", "--workers", "1", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"theoretical_tv"`)
}
