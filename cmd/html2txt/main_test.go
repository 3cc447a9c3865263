package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/html2txt"
	main "github.com/fwojciec/html2txt/cmd/html2txt"
	"github.com/fwojciec/html2txt/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMain returns a Main rooted at a fresh directory without config files.
func testMain(t *testing.T) (*main.Main, string) {
	t.Helper()
	dir := t.TempDir()
	m := main.NewMain()
	m.WorkDir = dir
	m.ConfigPaths = nil
	return m, dir
}

// writeHTML writes files under root, creating parent directories.
func writeHTML(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func run(t *testing.T, m *main.Main, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m, _ := testMain(t)

	stdout, _, err := run(t, m, "--help")

	require.NoError(t, err)
	for _, flag := range []string{
		"--input-dir", "--ext", "--recursive", "--encoding", "--output-dir",
		"--dest-scope", "--single-file", "--single-only", "--merge-only",
		"--strip-leading-numbers", "--merge-strip-leading-numbers",
		"--strip-angle-buttons", "--no-section-headers", "--include-urls",
		"--list-runs", "--show-run",
	} {
		assert.Contains(t, stdout, flag)
	}
	// Consolidated-only output still honours the merge strip flag.
	assert.Contains(t, stdout, "--single-only).")
}

func TestMain_Run_NoArguments(t *testing.T) {
	t.Parallel()

	m, _ := testMain(t)

	_, stderr, err := run(t, m)

	assert.Equal(t, html2txt.ECONFIG, html2txt.ErrorCode(err))
	assert.Contains(t, stderr, "error:")
}

func TestMain_Run_Convert(t *testing.T) {
	t.Parallel()

	t.Run("writes one text file per source", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"in/a.html":     "<html><body><p>1. First</p><p>2. Second</p></body></html>",
			"in/b.HTM":      "<p>Beta</p>",
			"in/c.txt":      "ignored",
			"in/sub/d.html": "<p>nested</p>",
		})

		stdout, stderr, err := run(t, m, "-i", "in", "-o", "out")

		require.NoError(t, err)
		assert.Empty(t, stderr)
		assert.Equal(t, "1. First\n\n2. Second\n", readFile(t, filepath.Join(dir, "out", "a.txt")))
		assert.Equal(t, "Beta\n", readFile(t, filepath.Join(dir, "out", "b.txt")))
		assert.NoFileExists(t, filepath.Join(dir, "out", "c.txt"))
		assert.NoFileExists(t, filepath.Join(dir, "out", "sub", "d.txt"))
		assert.Contains(t, stdout, "Converted 2 file(s)")
		assert.Contains(t, stdout, "processed 2, skipped 0, written 2")
	})

	t.Run("strips leading numbers in per-file outputs", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{"in/a.html": "<p>1. First</p><p>2) Second</p>"})

		_, _, err := run(t, m, "-i", "in", "-o", "out", "--strip-leading-numbers")

		require.NoError(t, err)
		assert.Equal(t, "First\n\nSecond\n", readFile(t, filepath.Join(dir, "out", "a.txt")))
	})

	t.Run("recursive keeps subdirectories", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"in/a.html":     "<p>top</p>",
			"in/sub/d.html": "<p>nested</p>",
		})

		_, _, err := run(t, m, "-i", "in", "-o", "out", "--recursive", "--single-file", "out/all.txt")

		require.NoError(t, err)
		assert.Equal(t, "nested\n", readFile(t, filepath.Join(dir, "out", "sub", "d.txt")))
		assert.Equal(t,
			"===== a.html =====\ntop\n\n===== sub/d.html =====\nnested\n",
			readFile(t, filepath.Join(dir, "out", "all.txt")))
	})

	t.Run("single-only writes only the consolidated file", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"in/b.html": "<p>beta</p>",
			"in/a.html": "<p>alpha</p>",
		})

		stdout, _, err := run(t, m, "-i", "in", "-o", "out", "--single-only")

		require.NoError(t, err)
		entries, err := os.ReadDir(filepath.Join(dir, "out"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "all.txt", entries[0].Name())
		assert.Equal(t,
			"===== a.html =====\nalpha\n\n===== b.html =====\nbeta\n",
			readFile(t, filepath.Join(dir, "out", "all.txt")))
		assert.Contains(t, stdout, "processed 2, skipped 0, written 1")
	})

	t.Run("no section headers", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"in/a.html": "<p>alpha</p>",
			"in/b.html": "<p>beta</p>",
		})

		_, _, err := run(t, m, "-i", "in", "-o", "out", "--single-only", "--no-section-headers")

		require.NoError(t, err)
		assert.Equal(t, "alpha\n\nbeta\n", readFile(t, filepath.Join(dir, "out", "all.txt")))
	})

	t.Run("include urls annotates links", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"in/a.html": `<p>See <a href="https://example.com/docs">the docs</a> and <a href="#top">top</a>.</p>`,
		})

		_, _, err := run(t, m, "-i", "in", "-o", "out", "--include-urls")

		require.NoError(t, err)
		assert.Equal(t, "See the docs (https://example.com/docs) and top.\n", readFile(t, filepath.Join(dir, "out", "a.txt")))
	})

	t.Run("strip angle buttons", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"in/a.html": `<p>&lt;&lt; Previous | Next &gt;&gt;</p><p>if a &lt; b then</p>`,
		})

		_, _, err := run(t, m, "-i", "in", "-o", "out", "--strip-angle-buttons")

		require.NoError(t, err)
		assert.Equal(t, "Previous | Next\n\nif a < b then\n", readFile(t, filepath.Join(dir, "out", "a.txt")))
	})

	t.Run("reruns are byte identical", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"in/a.html": "<p>1 alpha</p>",
			"in/b.html": "<ul><li>one</li><li>two</li></ul>",
		})
		args := []string{"-i", "in", "-o", "out", "--single-file", "out/all.txt", "--merge-strip-leading-numbers"}

		_, _, err := run(t, m, args...)
		require.NoError(t, err)
		first := readFile(t, filepath.Join(dir, "out", "all.txt"))

		_, _, err = run(t, m, args...)
		require.NoError(t, err)
		second := readFile(t, filepath.Join(dir, "out", "all.txt"))

		assert.Equal(t, first, second)
		assert.Equal(t, "===== a.html =====\nalpha\n\n===== b.html =====\n• one\n• two\n", second)
		assert.Equal(t, "1 alpha\n", readFile(t, filepath.Join(dir, "out", "a.txt")))
	})

	t.Run("decodes declared encoding", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{"in/a.html": "<p>caf\xe9</p>"})

		_, stderr, err := run(t, m, "-i", "in", "-o", "out", "--encoding", "latin1")

		require.NoError(t, err)
		assert.Empty(t, stderr)
		assert.Equal(t, "café\n", readFile(t, filepath.Join(dir, "out", "a.txt")))
	})

	t.Run("warns about replaced bytes", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{"in/a.html": "<p>caf\xe9</p>"})

		_, stderr, err := run(t, m, "-i", "in", "-o", "out")

		require.NoError(t, err)
		assert.Contains(t, stderr, "warning: a.html: undecodable bytes replaced")
	})

	t.Run("no matching sources is not an error", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "in"), 0755))

		stdout, stderr, err := run(t, m, "-i", "in", "-o", "out")

		require.NoError(t, err)
		assert.Contains(t, stderr, "warning: no source files matched")
		assert.Contains(t, stdout, "processed 0, skipped 0, written 0")
	})

	t.Run("lists skipped documents after the counts", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{"in/a.html": "<p>alpha</p>"})
		broken := filepath.Join(dir, "in", "b.html")
		require.NoError(t, os.Symlink(filepath.Join(dir, "missing.html"), broken))

		stdout, stderr, err := run(t, m, "-i", "in", "-o", "out")

		require.NoError(t, err)
		assert.Contains(t, stderr, "skip "+broken)
		assert.Equal(t, "alpha\n", readFile(t, filepath.Join(dir, "out", "a.txt")))
		assert.Contains(t, stdout, "processed 1, skipped 1, written 1\nskipped:\n  "+broken+": ")
	})

	t.Run("custom extensions", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"in/a.xhtml": "<p>x</p>",
			"in/b.html":  "<p>h</p>",
		})

		_, _, err := run(t, m, "-i", "in", "-o", "out", "--ext", "xhtml")

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "out", "a.txt"))
		assert.NoFileExists(t, filepath.Join(dir, "out", "b.txt"))
	})
}

func TestMain_Run_OutputLocation(t *testing.T) {
	t.Parallel()

	t.Run("defaults under repository outputs directory", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
		writeHTML(t, dir, map[string]string{"corpus/bible_html/a.html": "<p>a</p>"})
		m.WorkDir = filepath.Join(dir, "corpus")

		_, _, err := run(t, m, "-i", "bible_html")

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "outputs", "processed", "bible_txt", "a.txt"))
	})

	t.Run("sibling scope writes next to input", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{"corpus/bible_html/a.html": "<p>a</p>"})

		_, _, err := run(t, m, "-i", "corpus/bible_html", "--dest-scope", "sibling")

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "corpus", "bible_txt", "a.txt"))
	})

	t.Run("unknown scope is rejected", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{"in/a.html": "<p>a</p>"})

		_, stderr, err := run(t, m, "-i", "in", "--dest-scope", "elsewhere")

		assert.Equal(t, html2txt.ECONFIG, html2txt.ErrorCode(err))
		assert.Contains(t, stderr, "error:")
	})
}

func TestMain_Run_Merge(t *testing.T) {
	t.Parallel()

	t.Run("empty output directory fails", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "out"), 0755))

		stdout, stderr, err := run(t, m, "-o", "out", "--merge-only")

		assert.Equal(t, html2txt.ECONFIG, html2txt.ErrorCode(err))
		assert.Contains(t, stderr, "error: no .txt files to merge")
		assert.Empty(t, stdout)
		assert.NoFileExists(t, filepath.Join(dir, "out", "all.txt"))
	})

	t.Run("merges existing outputs in filename order", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"out/02.txt": "2 beta\n",
			"out/01.txt": "1 alpha\n",
			"out/03.txt": "3 gamma\n",
		})

		stdout, _, err := run(t, m, "-o", "out", "--merge-only", "--merge-strip-leading-numbers")

		require.NoError(t, err)
		assert.Equal(t,
			"===== 01.txt =====\nalpha\n\n===== 02.txt =====\nbeta\n\n===== 03.txt =====\ngamma\n",
			readFile(t, filepath.Join(dir, "out", "all.txt")))
		assert.Contains(t, stdout, "Merged 3 file(s)")
		assert.Equal(t, "1 alpha\n", readFile(t, filepath.Join(dir, "out", "01.txt")))
	})

	t.Run("repeated merges are byte identical", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"out/a.txt": "alpha\n",
			"out/b.txt": "beta\n",
		})

		_, _, err := run(t, m, "-o", "out", "--merge-only", "--no-section-headers")
		require.NoError(t, err)
		first := readFile(t, filepath.Join(dir, "out", "all.txt"))

		_, _, err = run(t, m, "-o", "out", "--merge-only", "--no-section-headers")
		require.NoError(t, err)
		second := readFile(t, filepath.Join(dir, "out", "all.txt"))

		assert.Equal(t, "alpha\n\nbeta\n", first)
		assert.Equal(t, first, second)
	})

	t.Run("merges after conversion without reading sources", func(t *testing.T) {
		t.Parallel()

		m, dir := testMain(t)
		writeHTML(t, dir, map[string]string{
			"in/a.html": "<p>1 alpha</p>",
			"in/b.html": "<p>2 beta</p>",
		})

		_, _, err := run(t, m, "-i", "in", "-o", "out")
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(filepath.Join(dir, "in")))

		_, _, err = run(t, m, "-o", "out", "--merge-only", "--single-file", "merged.txt", "--merge-strip-leading-numbers")

		require.NoError(t, err)
		assert.Equal(t,
			"===== a.txt =====\nalpha\n\n===== b.txt =====\nbeta\n",
			readFile(t, filepath.Join(dir, "merged.txt")))
	})

	t.Run("cannot be combined with single-only", func(t *testing.T) {
		t.Parallel()

		m, _ := testMain(t)

		_, _, err := run(t, m, "-o", "out", "--merge-only", "--single-only")

		assert.Equal(t, html2txt.ECONFIG, html2txt.ErrorCode(err))
	})
}

func TestMain_Run_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing input dir", args: []string{"-o", "out"}},
		{name: "unknown encoding", args: []string{"-i", "in", "-o", "out", "--encoding", "bogus-8"}},
		{name: "empty extension list", args: []string{"-i", "in", "-o", "out", "--ext", ","}},
		{name: "unknown main content extractor", args: []string{"-i", "in", "--main-content", "magic"}},
		{name: "unknown flag", args: []string{"-i", "in", "--frobnicate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, _ := testMain(t)

			_, stderr, err := run(t, m, tt.args...)

			assert.Equal(t, html2txt.ECONFIG, html2txt.ErrorCode(err))
			assert.Contains(t, stderr, "error:")
		})
	}
}

func TestMain_Run_MissingInputDir(t *testing.T) {
	t.Parallel()

	m, _ := testMain(t)

	_, _, err := run(t, m, "-i", "does-not-exist", "-o", "out")

	assert.Equal(t, html2txt.EFILESYSTEM, html2txt.ErrorCode(err))
}

func TestMain_Run_Config(t *testing.T) {
	t.Parallel()

	m, dir := testMain(t)
	writeHTML(t, dir, map[string]string{
		"in/a.html":      "<p>1. alpha &gt;&gt;</p>",
		".html2txt.toml": "strip-leading-numbers = true\nstrip_angle_buttons = true\noutput-dir = \"from-config\"\n",
	})
	m.ConfigPaths = []string{".html2txt.toml"}

	_, _, err := run(t, m, "-i", "in")

	require.NoError(t, err)
	assert.Equal(t, "alpha\n", readFile(t, filepath.Join(dir, "from-config", "a.txt")))
}

func TestMain_Run_Manifest(t *testing.T) {
	t.Parallel()

	m, dir := testMain(t)
	writeHTML(t, dir, map[string]string{
		"in/a.html": "<p>alpha</p>",
		"in/b.html": "<p>beta</p>",
	})

	_, _, err := run(t, m, "-i", "in", "-o", "out", "--manifest", "runs.db")
	require.NoError(t, err)

	db := sqlite.NewDB(filepath.Join(dir, "runs.db"))
	require.NoError(t, db.Open())
	defer db.Close()
	svc := sqlite.NewRunService(db)

	runs, err := svc.FindRuns(context.Background(), html2txt.RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got, err := svc.FindRunByID(context.Background(), runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, html2txt.ModeConvert, got.Mode)
	assert.Equal(t, filepath.Join(dir, "in"), got.InputDir)
	assert.Equal(t, filepath.Join(dir, "out"), got.OutputDir)
	assert.Equal(t, 2, got.Processed)
	require.Len(t, got.Documents, 2)
	assert.Equal(t, filepath.Join(dir, "out", "a.txt"), got.Documents[0].OutputPath)
	assert.Equal(t, html2txt.StatusConverted, got.Documents[0].Status)
	assert.NotEmpty(t, got.Documents[0].ContentHash)
}

func TestMain_Run_ReadManifest(t *testing.T) {
	t.Parallel()

	m, dir := testMain(t)
	writeHTML(t, dir, map[string]string{"in/a.html": "<p>alpha</p>"})
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.html"), filepath.Join(dir, "in", "b.html")))

	_, _, err := run(t, m, "-i", "in", "-o", "out", "--manifest", "runs.db")
	require.NoError(t, err)

	db := sqlite.NewDB(filepath.Join(dir, "runs.db"))
	require.NoError(t, db.Open())
	runs, err := sqlite.NewRunService(db).FindRuns(context.Background(), html2txt.RunFilter{})
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Len(t, runs, 1)
	id := runs[0].ID

	t.Run("lists runs", func(t *testing.T) {
		stdout, _, err := run(t, m, "--manifest", "runs.db", "--list-runs", "5")

		require.NoError(t, err)
		assert.Contains(t, stdout, id)
		assert.Contains(t, stdout, "processed 1, skipped 1, written 1")
		assert.Contains(t, stdout, filepath.Join(dir, "out"))
	})

	t.Run("shows one run with documents", func(t *testing.T) {
		stdout, _, err := run(t, m, "--manifest", "runs.db", "--show-run", id)

		require.NoError(t, err)
		assert.Contains(t, stdout, "run "+id+" (convert)")
		assert.Contains(t, stdout, "converted  "+filepath.Join(dir, "in", "a.html")+" (1 lines, ")
		assert.Contains(t, stdout, "skipped    "+filepath.Join(dir, "in", "b.html")+": ")
	})

	t.Run("unknown run is an error", func(t *testing.T) {
		_, stderr, err := run(t, m, "--manifest", "runs.db", "--show-run", "nope")

		assert.Equal(t, html2txt.ENOTFOUND, html2txt.ErrorCode(err))
		assert.Contains(t, stderr, "error: ")
	})

	t.Run("requires a manifest", func(t *testing.T) {
		_, _, err := run(t, m, "--list-runs", "5")

		assert.Equal(t, html2txt.ECONFIG, html2txt.ErrorCode(err))
	})
}
