package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funvibe/funlet/internal/config"
)

// replConfig points history at a throwaway database so tests never
// touch the user's home directory.
func replConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.History = filepath.Join(t.TempDir(), "history.db")
	return cfg
}

func runReplSession(t *testing.T, cfg *config.Config, lines string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := RunRepl(strings.NewReader(lines), &out, &errOut, cfg)
	return out.String(), errOut.String(), code
}

func TestReplEvaluatesLines(t *testing.T) {
	out, errOut, code := runReplSession(t, replConfig(t), "print 1 + 2;\n:quit\n")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "funlet "+Version)
	assert.Contains(t, out, "3\n")
	assert.Empty(t, errOut)
}

func TestReplKeepsGlobalsAcrossLines(t *testing.T) {
	out, _, _ := runReplSession(t, replConfig(t), "var a = 7;\nprint a;\n:quit\n")

	assert.Contains(t, out, "7\n")
}

func TestReplContinuesAfterErrors(t *testing.T) {
	session := "print missing;\nprint 1;\nvar x = ;\nprint 2;\n:quit\n"
	out, errOut, code := runReplSession(t, replConfig(t), session)

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, errOut, "Undefined variable 'missing'.")
	assert.Contains(t, errOut, "Expect expression.")
	assert.Contains(t, out, "1\n")
	assert.Contains(t, out, "2\n")
}

func TestReplSkipsBlankLines(t *testing.T) {
	out, errOut, code := runReplSession(t, replConfig(t), "\n   \nprint 4;\n:quit\n")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "4\n")
	assert.Empty(t, errOut)
}

func TestReplMetaCommands(t *testing.T) {
	out, _, _ := runReplSession(t, replConfig(t), ":help\n:bogus\n:quit\n")

	assert.Contains(t, out, ":history")
	assert.Contains(t, out, "Unknown command :bogus")
}

func TestReplHistoryCommand(t *testing.T) {
	out, _, _ := runReplSession(t, replConfig(t), "print 1;\nprint 2;\n:history\n:quit\n")

	assert.Contains(t, out, "   1  print 1;")
	assert.Contains(t, out, "   2  print 2;")
}

func TestReplHistoryPersistsAcrossSessions(t *testing.T) {
	cfg := replConfig(t)

	runReplSession(t, cfg, "print 1;\n:quit\n")
	out, _, _ := runReplSession(t, cfg, ":history\n:quit\n")

	assert.Contains(t, out, "print 1;")
}

func TestReplHistoryUnavailable(t *testing.T) {
	cfg := config.Default()
	cfg.History = filepath.Join(t.TempDir(), "no", "such", "dir", "history.db")
	out, errOut, code := runReplSession(t, cfg, "print 3;\n:history\n:quit\n")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, errOut, "history disabled")
	assert.Contains(t, out, "3\n")
	assert.Contains(t, out, "History is disabled.")
}

func TestReplEOFEndsSession(t *testing.T) {
	out, _, code := runReplSession(t, replConfig(t), "print 9;\n")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "9\n")
}
