package main

import (
	"context"
	"io"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/html2txt/convert"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Converter *convert.Converter
	Job       *convert.Job
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	InputDir  string `short:"i" name:"input-dir" help:"Directory containing the HTML sources."`
	Ext       string `name:"ext" default:"htm,html" help:"Comma-separated source file extensions."`
	Recursive bool   `name:"recursive" help:"Include sources in subdirectories."`
	Encoding  string `name:"encoding" default:"utf-8" help:"Character encoding of the sources."`

	OutputDir  string `short:"o" name:"output-dir" help:"Output directory (default: derived from --dest-scope)."`
	DestScope  string `name:"dest-scope" enum:"outputs,sibling" default:"outputs" help:"Default output location: <root>/outputs/processed or next to the input directory."`
	SingleFile string `name:"single-file" help:"Also write all text to this consolidated file."`
	SingleOnly bool   `name:"single-only" help:"Write only the consolidated file."`
	MergeOnly  bool   `name:"merge-only" help:"Skip extraction and consolidate existing .txt outputs."`

	StripLeadingNumbers      bool `name:"strip-leading-numbers" help:"Strip verse-style numbers from line starts."`
	MergeStripLeadingNumbers bool `name:"merge-strip-leading-numbers" help:"Strip leading numbers in the consolidated file only (also applies under --single-only)."`
	StripAngleButtons        bool `name:"strip-angle-buttons" help:"Remove navigation tokens such as << and >>."`
	NoSectionHeaders         bool `name:"no-section-headers" help:"Omit ===== <file> ===== headers in the consolidated file."`
	IncludeURLs              bool `name:"include-urls" help:"Append link targets after anchor text."`

	DropTags    string `name:"drop-tags" default:"sup,sub" help:"Comma-separated elements removed before extraction."`
	MainContent string `name:"main-content" enum:"none,trafilatura,readability" default:"none" help:"Extract only the main content using this library."`
	Concurrency int    `short:"c" name:"concurrency" default:"1" help:"Documents extracted in parallel."`
	Manifest    string `name:"manifest" help:"Record runs in this SQLite database."`
	ListRuns    int    `name:"list-runs" help:"Print the N most recent runs in --manifest and exit."`
	ShowRun     string `name:"show-run" help:"Print one run from --manifest with its documents and exit."`

	Verbose bool            `short:"v" name:"verbose" help:"Log each operation to stderr."`
	Config  kong.ConfigFlag `name:"config" help:"Load flag defaults from a TOML file."`
}
