package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phroun/wizardstring"
	"github.com/phroun/wizardstring/internal/config"
	"github.com/phroun/wizardstring/internal/log"
)

const renameScript = `edits:
  - op: overwrite
    start: 9
    end: 12
    text: Bar
    storeName: true
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig() config.EnvConfig {
	return config.EnvConfig{
		LogLevel:       "ERROR",
		LogFormat:      "text",
		Hires:          "low",
		IncludeContent: true,
		Workers:        2,
	}
}

func TestRunApplyStdout(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "main.js"), "function Foo () {}")
	sc := writeFile(t, filepath.Join(dir, "rename.yaml"), renameScript)

	var stdout, stderr bytes.Buffer
	require.NoError(t, runApply(&stdout, &stderr, testConfig(), src, sc, ""))
	assert.Equal(t, "function Bar () {}", stdout.String())

	stdout.Reset()
	cfg := testConfig()
	cfg.InlineMap = true
	require.NoError(t, runApply(&stdout, &stderr, cfg, src, sc, ""))
	assert.True(t, strings.HasPrefix(stdout.String(),
		"function Bar () {}\n//# sourceMappingURL=data:application/json;charset=utf-8;base64,"))
	assert.Empty(t, stderr.String())
}

func TestRunApplyOut(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "src", "main.js"), "function Foo () {}")
	sc := writeFile(t, filepath.Join(dir, "rename.yaml"), renameScript)
	out := filepath.Join(dir, "dist", "main.js")

	var stdout, stderr bytes.Buffer
	require.NoError(t, runApply(&stdout, &stderr, testConfig(), src, sc, out))
	assert.Empty(t, stdout.String())

	code, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "function Bar () {}\n//# sourceMappingURL=main.js.map", string(code))

	data, err := os.ReadFile(out + ".map")
	require.NoError(t, err)
	m, err := wizardstring.ParseSourceMap(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"../src/main.js"}, m.Sources)
	assert.Equal(t, []string{"Foo"}, m.Names)
}

func TestRunApplyErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "main.js"), "abc")
	bad := writeFile(t, filepath.Join(dir, "bad.yaml"), "edits:\n  - op: remove\n    start: 2\n    end: 9\n")

	var stdout, stderr bytes.Buffer
	err := runApply(&stdout, &stderr, testConfig(), filepath.Join(dir, "missing.js"), bad, "")
	assert.ErrorContains(t, err, "read source")

	err = runApply(&stdout, &stderr, testConfig(), src, bad, "")
	assert.ErrorIs(t, err, wizardstring.ErrOutOfBounds)
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.js"), "function Foo () {}")
	writeFile(t, a+scriptSuffix, renameScript)
	b := writeFile(t, filepath.Join(dir, "b.js"), "let x")
	writeFile(t, b+scriptSuffix, "edits:\n  - op: append\n    text: ' = 1'\n")
	missing := writeFile(t, filepath.Join(dir, "c.js"), "orphan")

	cfg := testConfig()
	cfg.OutDir = filepath.Join(dir, "dist")

	results, err := runBatch(context.Background(), log.Discard(), cfg, "", []string{a, b, missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].err)
	assert.NoError(t, results[1].err)
	assert.Error(t, results[2].err)

	code, err := os.ReadFile(filepath.Join(cfg.OutDir, "b.js"))
	require.NoError(t, err)
	assert.Equal(t, "let x = 1\n//# sourceMappingURL=b.js.map", string(code))

	var summary bytes.Buffer
	printSummary(&summary, results)
	assert.Contains(t, summary.String(), "FAIL "+missing)
	assert.Contains(t, summary.String(), "2 of 3 files written")
}

func TestRunBatchSharedScript(t *testing.T) {
	dir := t.TempDir()
	sc := writeFile(t, filepath.Join(dir, "upper.yaml"), `edits:
  - op: prepend
    text: "// generated\n"
`)
	var sources []string
	for _, name := range []string{"one.js", "two.js", "three.js", "four.js", "five.js"} {
		sources = append(sources, writeFile(t, filepath.Join(dir, name), name))
	}

	cfg := testConfig()
	cfg.OutDir = filepath.Join(dir, "dist")
	cfg.HashNames = true
	cfg.InlineMap = true

	results, err := runBatch(context.Background(), log.Discard(), cfg, sc, sources)
	require.NoError(t, err)
	for i, r := range results {
		assert.Equal(t, sources[i], r.source)
		assert.Empty(t, r.MapPath)
		assert.Contains(t, filepath.Base(r.CodePath), "."+r.Hash[:8]+".js")

		code, err := os.ReadFile(r.CodePath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(code), "// generated\n"+filepath.Base(sources[i])))
	}
}

func TestRunBatchDebugLog(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.js"), "let x")
	writeFile(t, a+scriptSuffix, "edits:\n  - op: append\n    text: ';'\n")

	cfg := testConfig()
	cfg.OutDir = filepath.Join(dir, "dist")
	var buf bytes.Buffer
	logger := log.NewLoggerWithFormat(&buf, config.LogFormatText, "DEBUG")

	_, err := runBatch(context.Background(), logger, cfg, "", []string{a})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=DEBUG msg=processing")
	assert.Contains(t, buf.String(), "shared_script=false")
	assert.Contains(t, buf.String(), "file="+a)
}

func TestRunBatchMissingSharedScript(t *testing.T) {
	_, err := runBatch(context.Background(), log.Discard(), testConfig(), filepath.Join(t.TempDir(), "none.yaml"), []string{"x.js"})
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "wizard version dev")
	assert.Contains(t, out.String(), "commit: unknown")
}
