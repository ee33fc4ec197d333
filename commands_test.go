package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireterm/internal/canvas"
	"wireterm/internal/logging"
	"wireterm/internal/storage"
	"wireterm/internal/templates"
)

// run executes the command line with a fresh home directory per test.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// importedDesign writes fenced art to a text file and imports it.
func importedDesign(t *testing.T, dir string) string {
	t.Helper()
	src := filepath.Join(dir, "art.txt")
	require.NoError(t, os.WriteFile(src, []byte("```\n[ok]\n```\n"), 0o644))
	design := filepath.Join(dir, "design.json")
	_, err := run(t, "import", src, "-o", design)
	require.NoError(t, err)
	return design
}

func TestRenderCommand(t *testing.T) {
	withHome(t)
	out, err := run(t, "render", "button", "--text", "OK")
	require.NoError(t, err)
	assert.Equal(t, "┌────┐\n│ OK │\n└────┘\n", out)

	_, err = run(t, "render", "nope")
	assert.ErrorIs(t, err, templates.ErrUnknownTemplate)
}

func TestRenderDiagramMode(t *testing.T) {
	withHome(t)
	want, err := templates.Diagram.Generate("diamond")
	require.NoError(t, err)

	out, err := run(t, "--mode", "diagram", "render", "diamond")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, want.H)
}

func TestTemplatesCommand(t *testing.T) {
	withHome(t)
	out, err := run(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "button")

	out, err = run(t, "templates", "--mode", "diagram")
	require.NoError(t, err)
	assert.Contains(t, out, "diamond")
	assert.NotContains(t, out, "button")
}

func TestImportAndExport(t *testing.T) {
	home := withHome(t)
	design := importedDesign(t, home)

	st, err := storage.ReadFile(design)
	require.NoError(t, err)
	require.Len(t, st.Objects, 1)
	assert.Equal(t, canvas.TypeImported, st.Objects[0].Type)

	out, err := run(t, "export", design, "-f", "text")
	require.NoError(t, err)
	assert.Equal(t, "[ok]\n", out)

	out, err = run(t, "export", design)
	require.NoError(t, err)
	assert.Equal(t, "```\n[ok]\n```\n", out)

	htmlOut := filepath.Join(home, "out", "design.html")
	_, err = run(t, "export", design, "-o", htmlOut)
	require.NoError(t, err)
	data, err := os.ReadFile(htmlOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ok]")

	pngOut := filepath.Join(home, "design.png")
	_, err = run(t, "export", design, "-o", pngOut)
	require.NoError(t, err)
	f, err := os.Open(pngOut)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestImportFromStdin(t *testing.T) {
	withHome(t)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("+--+\n|  |\n+--+"))
	cmd.SetArgs([]string{"import", "-"})
	require.NoError(t, cmd.Execute())

	st, err := storage.JSON.Unmarshal(out.Bytes())
	require.NoError(t, err)
	require.Len(t, st.Objects, 1)
	assert.Equal(t, []string{"+--+", "|  |", "+--+"}, st.Objects[0].Data.Lines)
}

func TestExportNamedDesign(t *testing.T) {
	home := withHome(t)
	lib := storage.Designs{Dir: filepath.Join(home, ".wireterm", "designs")}
	c := canvas.New()
	c.AddText(4, 1)
	require.NoError(t, lib.SaveDesign("login", stateOf(c)))

	out, err := run(t, "export", "login", "-f", "txt")
	require.NoError(t, err)
	assert.Equal(t, canvas.DefaultText+"\n", out)

	_, err = run(t, "export", "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "export", "login", "-f", "pdf")
	assert.Error(t, err)
}

func TestShareAndUnshare(t *testing.T) {
	home := withHome(t)
	design := importedDesign(t, home)

	token, err := run(t, "share", design)
	require.NoError(t, err)
	token = strings.TrimSpace(token)
	require.NotEmpty(t, token)

	back := filepath.Join(home, "back.yaml")
	_, err = run(t, "unshare", "https://example.test/#"+token, "-o", back)
	require.NoError(t, err)
	st, err := storage.ReadFile(back)
	require.NoError(t, err)
	require.Len(t, st.Objects, 1)
	assert.Equal(t, []string{"[ok]"}, st.Objects[0].Data.Lines)

	_, err = run(t, "unshare", "%%%")
	assert.ErrorIs(t, err, storage.ErrBadToken)
}

func TestBlueprintCommands(t *testing.T) {
	home := withHome(t)

	var want bytes.Buffer
	require.NoError(t, printContent(&want, templates.Flowchart("Login", "Done")))
	out, err := run(t, "blueprint", "flowchart", "Login", "Done")
	require.NoError(t, err)
	assert.Equal(t, want.String(), out)

	out, err = run(t, "blueprint", "tree", "app", "app:api,web")
	require.NoError(t, err)
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "web")

	_, err = run(t, "blueprint", "tree", "app", "oops")
	assert.Error(t, err)

	design := filepath.Join(home, "form.json")
	_, err = run(t, "blueprint", "form", "Sign in", "Email", "-o", design)
	require.NoError(t, err)
	st, err := storage.ReadFile(design)
	require.NoError(t, err)
	require.Len(t, st.Objects, 1)
	assert.Equal(t, canvas.ImportX, st.Objects[0].X)
	assert.Equal(t, templates.Form("Sign in", []string{"Email"}, 30).Lines, st.Objects[0].Data.Lines)
}

func TestParseEdges(t *testing.T) {
	edges, err := parseEdges([]string{"a:b, c", "b:d", "c:"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"a": {"b", "c"}, "b": {"d"}}, edges)

	_, err = parseEdges([]string{":x"})
	assert.Error(t, err)
}

func TestPickFormat(t *testing.T) {
	f, err := pickFormat("", "")
	require.NoError(t, err)
	assert.Equal(t, "markdown", f.Name)

	f, err = pickFormat("", "x.html")
	require.NoError(t, err)
	assert.Equal(t, "html", f.Name)

	f, err = pickFormat("text", "x.html")
	require.NoError(t, err)
	assert.Equal(t, "text", f.Name)
}

func TestWatchRerenders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "design.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	a := &app{log: logging.Nop()}
	var renders atomic.Int32
	render := func() error {
		renders.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, path, render, io.Discard) }()

	require.Eventually(t, func() bool { return renders.Load() == 1 }, time.Second, 10*time.Millisecond)
	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(`{"objects":[]}`), 0o644)
		return renders.Load() >= 2
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
