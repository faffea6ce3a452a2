package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the CLI with the given stdin and returns exit code, stdout and stderr
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	a := &app{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr}
	code := a.run(context.Background(), args)
	return code, stdout.String(), stderr.String()
}

func TestExpandArgs(t *testing.T) {
	code, out, errOut := runCLI(t, "", "expand", "hover:(bg-red-500", "md:(pl-3 pt-2))")
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Equal(t, "hover:bg-red-500 hover:md:pl-3 hover:md:pt-2\n", out)
}

func TestExpandStdin(t *testing.T) {
	code, out, errOut := runCLI(t, "sm:(m-1 p-2)\nlg:(m-4)\n", "expand")
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Equal(t, "sm:m-1 sm:p-2 lg:m-4\n", out)
}

func TestExpandAST(t *testing.T) {
	code, out, _ := runCLI(t, "", "expand", "--ast", "a md:(b)")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Root\n  Word \"a\"\n  Group \"md:\"\n    Word \"b\"\n", out)
}

func TestExpandUnbalanced(t *testing.T) {
	code, out, errOut := runCLI(t, "", "expand", "md:(pl-3")
	assert.Equal(t, ExitUnbalanced, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, `Error: group "md:" is never closed (1 open) at column 1`)
	assert.Contains(t, errOut, "prefix: md:")
}

func TestRewriteStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "App.tsx")
	require.NoError(t, os.WriteFile(path, []byte(`<div className="md:(p-1 m-2)" />`), 0o644))

	code, out, errOut := runCLI(t, "", "rewrite", path)
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Equal(t, `<div className="md:p-1 md:m-2" />`, out)
}

func TestRewriteWriteAndCheck(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "node_modules"), 0o755))

	app := filepath.Join(src, "App.jsx")
	plain := filepath.Join(src, "Plain.jsx")
	vendored := filepath.Join(src, "node_modules", "Lib.jsx")
	require.NoError(t, os.WriteFile(app, []byte(`<a className="sm:(a b)" />`), 0o644))
	require.NoError(t, os.WriteFile(plain, []byte(`<a className="flex" />`), 0o644))
	require.NoError(t, os.WriteFile(vendored, []byte(`<a className="x:(y)" />`), 0o644))

	code, out, _ := runCLI(t, "", "rewrite", "--check", dir)
	assert.Equal(t, ExitRewriteRequired, code)
	assert.Equal(t, app+"\n", out)

	code, out, errOut := runCLI(t, "", "rewrite", "--write", dir)
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Contains(t, out, "rewrote "+app+" (1 expanded)")

	data, err := os.ReadFile(app)
	require.NoError(t, err)
	assert.Equal(t, `<a className="sm:a sm:b" />`, string(data))

	data, err = os.ReadFile(vendored)
	require.NoError(t, err)
	assert.Equal(t, `<a className="x:(y)" />`, string(data), "node_modules must be skipped")

	code, _, _ = runCLI(t, "", "rewrite", "--check", dir)
	assert.Equal(t, ExitSuccess, code)
}

func TestRewriteWarnsOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.vue")
	require.NoError(t, os.WriteFile(path, []byte(`<div class="md:(p-1"></div>`), 0o644))

	code, out, errOut := runCLI(t, "", "rewrite", path)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, `<div class="md:(p-1"></div>`, out)
	assert.Contains(t, errOut, "Warning: "+path+": line 1 (class)")
}

func TestRewriteStrictConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "twgroup.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"strict": true}`), 0o644))
	path := filepath.Join(dir, "index.vue")
	require.NoError(t, os.WriteFile(path, []byte(`<div class="md:(p-1"></div>`), 0o644))

	code, out, errOut := runCLI(t, "", "--config", cfgPath, "rewrite", path)
	assert.Equal(t, ExitUnbalanced, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, `value: "md:(p-1"`)
}

func TestRewriteErrors(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tsx")
	b := filepath.Join(dir, "b.tsx")
	css := filepath.Join(dir, "site.css")
	for _, p := range []string{a, b, css} {
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	t.Run("multiple files to stdout", func(t *testing.T) {
		code, _, errOut := runCLI(t, "", "rewrite", a, b)
		assert.Equal(t, ExitInvalidArgs, code)
		assert.Contains(t, errOut, "Hint: pass a single file")
	})

	t.Run("unsupported file", func(t *testing.T) {
		code, _, errOut := runCLI(t, "", "rewrite", css)
		assert.Equal(t, ExitInvalidArgs, code)
		assert.Contains(t, errOut, "is not a supported file type")
	})

	t.Run("missing file", func(t *testing.T) {
		code, _, _ := runCLI(t, "", "rewrite", filepath.Join(dir, "nope.tsx"))
		assert.Equal(t, ExitIOError, code)
	})

	t.Run("write and check together", func(t *testing.T) {
		code, _, errOut := runCLI(t, "", "rewrite", "--write", "--check", a)
		assert.Equal(t, ExitInvalidArgs, code)
		assert.Contains(t, errOut, "mutually exclusive")
	})

	t.Run("bad config", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(cfgPath, []byte(`{"dialects": ["classname"]}`), 0o644))
		code, _, errOut := runCLI(t, "", "-c", cfgPath, "rewrite", a)
		assert.Equal(t, ExitConfigError, code)
		assert.Contains(t, errOut, `did you mean "className"?`)
	})
}

func TestWatchStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	a := &app{stdin: strings.NewReader(""), stdout: &stdout, stderr: &stderr}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() { done <- a.run(ctx, []string{"watch", dir}) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case code := <-done:
		assert.Equal(t, ExitSuccess, code, stderr.String())
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
