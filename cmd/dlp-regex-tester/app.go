package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/Veraticus/dlp-regex-tester/pkg/config"
	"github.com/Veraticus/dlp-regex-tester/pkg/highlight"
	"github.com/Veraticus/dlp-regex-tester/pkg/logging"
)

// stdinPath selects standard input instead of a file.
const stdinPath = "-"

// Dependencies holds all the dependencies for the application
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Markers highlight.Markers
	Stdin   io.Reader
	Stdout  io.Writer
}

// NewDependencies creates all dependencies with the given configuration
func NewDependencies(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) (*Dependencies, error) {
	logger, err := logging.NewFromName(stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	markers, err := cfg.ResolveMarkers(isColorTerminal(stdout))
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Markers: markers,
		Stdin:   stdin,
		Stdout:  stdout,
	}, nil
}

// Request describes one highlighting run.
type Request struct {
	Pattern    string
	Path       string
	IgnoreCase bool

	// Rule is the name of the config rule Pattern came from, if any.
	Rule string
}

// Application represents the main application
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new application with the given dependencies
func NewApplication(deps *Dependencies) *Application {
	return &Application{
		deps: deps,
	}
}

// Run reads the input, renders it and writes the result to stdout. It
// returns the process exit code.
func (a *Application) Run(req Request) int {
	log := a.deps.Logger
	cfg := a.deps.Config

	log.Debug("Starting scan",
		"pattern", req.Pattern,
		"rule", req.Rule,
		"file", req.Path,
		"engine", cfg.Engine,
		"ignore_case", req.IgnoreCase)

	text, err := a.readInput(req.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Error(fmt.Sprintf("File not found: %s", req.Path))
		} else {
			log.Error(fmt.Sprintf("Error reading file: %v", err))
		}
		return exitFileError
	}
	if !utf8.ValidString(text) {
		log.Warn("Input is not valid UTF-8; invalid bytes match as U+FFFD", "file", req.Path)
	}

	h, err := highlight.Compile(req.Pattern, highlight.Options{
		IgnoreCase:   req.IgnoreCase,
		Engine:       cfg.Engine,
		Markers:      a.deps.Markers,
		MatchTimeout: cfg.MatchTimeout,
	})
	if err != nil {
		var patternErr *highlight.PatternError
		if errors.As(err, &patternErr) {
			log.Error(fmt.Sprintf("Invalid regular expression: %v", patternErr.Err),
				"pattern", patternErr.Pattern,
				"engine", patternErr.Engine)
		} else {
			log.Error(fmt.Sprintf("Error compiling pattern: %v", err))
		}
		return exitError
	}

	spans, err := h.Spans(text)
	if err != nil {
		log.Error(fmt.Sprintf("Error scanning input: %v", err), "engine", h.Engine())
		return exitError
	}
	log.Debug("Scan complete", "matches", len(spans), "bytes", len(text))

	rendered := highlight.Apply(text, spans, a.deps.Markers)
	if _, err := fmt.Fprintln(a.deps.Stdout, rendered); err != nil {
		log.Error(fmt.Sprintf("Error writing output: %v", err))
		return exitError
	}

	return exitOK
}

// readInput returns the whole input as a string.
func (a *Application) readInput(path string) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(a.deps.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	// #nosec G304 - Reading the user-named file is the purpose of the tool
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
