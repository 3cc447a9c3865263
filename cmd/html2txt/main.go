package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/html2txt"
	"github.com/fwojciec/html2txt/charset"
	"github.com/fwojciec/html2txt/convert"
	"github.com/fwojciec/html2txt/fs"
	"github.com/fwojciec/html2txt/goquery"
	"github.com/fwojciec/html2txt/readability"
	hslog "github.com/fwojciec/html2txt/slog"
	"github.com/fwojciec/html2txt/sqlite"
	"github.com/fwojciec/html2txt/toml"
	"github.com/fwojciec/html2txt/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// WorkDir resolves relative paths and starts the repository root
	// search. Empty means the process working directory.
	WorkDir string

	// ConfigPaths are TOML files supplying flag defaults. Missing files
	// are ignored; relative paths are resolved against WorkDir.
	ConfigPaths []string

	// Manifest database, open while a run records into it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{".html2txt.toml", "~/.html2txt.toml"},
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Fatal errors are
// reported on stderr before being returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	err := m.run(ctx, args, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", html2txt.ErrorMessage(err))
	}
	return err
}

func (m *Main) run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("html2txt"),
		kong.Description("Convert a directory of HTML documents to plain text"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(toml.Loader, m.configPaths()...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return html2txt.Errorf(html2txt.ECONFIG, "no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return html2txt.Errorf(html2txt.ECONFIG, "%v", err)
	}

	if cli.ListRuns > 0 || cli.ShowRun != "" {
		return m.inspect(ctx, cli, stdout)
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}
	if err := m.wire(cli, deps); err != nil {
		return err
	}
	defer m.Close()

	return cli.Run(deps)
}

// wire validates the parsed flags and builds the converter and job.
func (m *Main) wire(cli *CLI, deps *Dependencies) error {
	if cli.InputDir == "" && !cli.MergeOnly {
		return html2txt.Errorf(html2txt.ECONFIG, "--input-dir is required")
	}
	if _, err := charset.Lookup(cli.Encoding); err != nil {
		return err
	}
	exts := html2txt.ParseExtensions(cli.Ext)
	if len(exts) == 0 {
		return html2txt.Errorf(html2txt.ECONFIG, "--ext lists no extensions")
	}

	dirOpts := fs.OutputDirOptions{
		OutputDir: cli.OutputDir,
		DestScope: cli.DestScope,
		InputDir:  cli.InputDir,
		WorkDir:   m.WorkDir,
	}
	// Merging only reads the output directory, so it is not created.
	resolve := fs.ResolveOutputDir
	if cli.MergeOnly {
		resolve = fs.OutputDir
	}
	outputDir, err := resolve(dirOpts)
	if err != nil {
		return err
	}

	singleFile := cli.SingleFile
	if singleFile != "" && !filepath.IsAbs(singleFile) {
		singleFile = filepath.Join(m.workDir(), singleFile)
	}
	plan, err := html2txt.NewOutputPlan(html2txt.PlanOptions{
		OutputDir:  outputDir,
		SingleFile: singleFile,
		SingleOnly: cli.SingleOnly,
		MergeOnly:  cli.MergeOnly,
	})
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	var opts []goquery.Option
	opts = append(opts,
		goquery.WithIncludeURLs(cli.IncludeURLs),
		goquery.WithDropTags(goquery.ParseTags(cli.DropTags)),
	)
	switch cli.MainContent {
	case "trafilatura":
		opts = append(opts, goquery.WithContentExtractor(trafilatura.NewExtractor()))
	case "readability":
		opts = append(opts, goquery.WithContentExtractor(readability.NewExtractor()))
	}

	inputDir := m.absPath(cli.InputDir)
	deps.Converter = &convert.Converter{
		Sources:     hslog.NewLoggingSourceStore(fs.NewSourceStore(inputDir, cli.Encoding), logger),
		Extractor:   hslog.NewLoggingTextExtractor(goquery.NewExtractor(opts...), logger),
		Outputs:     hslog.NewLoggingOutputStore(fs.NewOutputStore(outputDir), logger),
		Concurrency: cli.Concurrency,
	}

	if cli.Manifest != "" {
		if err := m.openManifest(cli.Manifest); err != nil {
			return err
		}
		deps.Converter.Recorder = sqlite.NewRunService(m.DB)
	}

	deps.Job = &convert.Job{
		InputDir: inputDir,
		Plan:     plan,
		Filter: html2txt.SourceFilter{
			Extensions: exts,
			Recursive:  cli.Recursive,
		},
		Rules: html2txt.CleaningRuleSet{
			StripLeadingNumbers:      cli.StripLeadingNumbers,
			MergeStripLeadingNumbers: cli.MergeStripLeadingNumbers,
			StripAngleButtons:        cli.StripAngleButtons,
			IncludeURLs:              cli.IncludeURLs,
			SectionHeaders:           !cli.NoSectionHeaders,
		},
	}
	return nil
}

// inspect prints recorded runs from the manifest instead of converting.
func (m *Main) inspect(ctx context.Context, cli *CLI, stdout io.Writer) error {
	if cli.Manifest == "" {
		return html2txt.Errorf(html2txt.ECONFIG, "--manifest is required to read runs")
	}
	if err := m.openManifest(cli.Manifest); err != nil {
		return err
	}
	defer m.Close()

	runs := sqlite.NewRunService(m.DB)
	if cli.ShowRun != "" {
		return showRun(ctx, stdout, runs, cli.ShowRun)
	}
	return listRuns(ctx, stdout, runs, cli.ListRuns)
}

func (m *Main) openManifest(path string) error {
	m.DB = sqlite.NewDB(m.absPath(path))
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return html2txt.Errorf(html2txt.EFILESYSTEM, "open manifest %q: %v", path, err)
	}
	return nil
}

func (m *Main) workDir() string {
	if m.WorkDir != "" {
		return m.WorkDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func (m *Main) absPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.workDir(), p)
}

func (m *Main) configPaths() []string {
	paths := make([]string, 0, len(m.ConfigPaths))
	for _, p := range m.ConfigPaths {
		if len(p) > 0 && p[0] == '~' {
			paths = append(paths, p)
			continue
		}
		paths = append(paths, m.absPath(p))
	}
	return paths
}
