package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/dlp-regex-tester/pkg/config"
	"github.com/Veraticus/dlp-regex-tester/pkg/highlight"
	"github.com/Veraticus/dlp-regex-tester/pkg/logging"
	flag "github.com/spf13/pflag"
)

// Exit codes.
const (
	exitOK        = 0
	exitFileError = 1
	exitError     = 2
)

const programName = "dlp-regex-tester"

type options struct {
	configPath   string
	ignoreCase   bool
	logLevel     string
	engine       string
	markers      string
	startMarker  string
	endMarker    string
	color        string
	matchColor   string
	matchTimeout time.Duration
	rule         string
	help         bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the os.Exit so tests can drive the whole program.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts, stderr)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printUsage(stderr, fs)
		return exitError
	}

	if opts.help {
		printUsage(stdout, fs)
		return exitOK
	}

	positional := fs.Args()
	wantArgs := 2
	if opts.rule != "" {
		wantArgs = 1
	}
	if len(positional) != wantArgs {
		if opts.rule != "" {
			fmt.Fprintf(stderr, "Error: expected <file_path> with --rule, got %d arguments\n\n", len(positional))
		} else {
			fmt.Fprintf(stderr, "Error: expected <regex> <file_path>, got %d arguments\n\n", len(positional))
		}
		printUsage(stderr, fs)
		return exitError
	}

	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitError
	}
	applyFlags(fs, &opts, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	req := Request{
		Pattern:    positional[0],
		Path:       positional[len(positional)-1],
		IgnoreCase: cfg.IgnoreCase,
	}
	if opts.rule != "" {
		rule, ok := cfg.Rule(opts.rule)
		if !ok {
			fmt.Fprintf(stderr, "Error: unknown rule %q\n", opts.rule)
			return exitError
		}
		req.Rule = rule.Name
		req.Pattern = rule.Regex
		req.IgnoreCase = req.IgnoreCase || rule.IgnoreCase
	}

	deps, err := NewDependencies(cfg, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating dependencies: %v\n", err)
		return exitError
	}

	return NewApplication(deps).Run(req)
}

func newFlagSet(opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "Perform case-insensitive matching")
	fs.StringVarP(&opts.logLevel, "log-level", "l", logging.DefaultLevel,
		"Set the logging level ("+strings.Join(logging.LevelNames(), ", ")+")")
	fs.StringVarP(&opts.engine, "engine", "e", highlight.EngineRE2,
		"Regex engine: re2 (Go RE2 syntax) or pcre (Perl syntax with lookaround and backreferences)")
	fs.StringVarP(&opts.markers, "markers", "m", highlight.PresetANSI,
		"Marker preset: "+strings.Join(highlight.PresetNames(), ", "))
	fs.StringVar(&opts.startMarker, "start-marker", "", "Custom string written before each match")
	fs.StringVar(&opts.endMarker, "end-marker", "", "Custom string written after each match")
	fs.StringVar(&opts.color, "color", config.ColorAlways,
		"When to use ANSI colors: always, never, auto")
	fs.StringVar(&opts.matchColor, "match-color", highlight.DefaultColor,
		"ANSI color for matches: "+strings.Join(highlight.ColorNames(), ", "))
	fs.DurationVar(&opts.matchTimeout, "match-timeout", highlight.DefaultMatchTimeout,
		"Maximum time for a pcre scan")
	fs.StringVarP(&opts.rule, "rule", "r", "", "Use a named rule from the config file instead of <regex>")
	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	fs.BoolVarP(&opts.help, "help", "h", false, "Show help message")

	return fs
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config) {
	if fs.Changed("ignore-case") {
		cfg.IgnoreCase = opts.ignoreCase
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if fs.Changed("engine") {
		cfg.Engine = opts.engine
	}
	if fs.Changed("markers") {
		cfg.Markers = opts.markers
	}
	if fs.Changed("start-marker") {
		cfg.StartMarker = opts.startMarker
	}
	if fs.Changed("end-marker") {
		cfg.EndMarker = opts.endMarker
	}
	if fs.Changed("color") {
		cfg.Color = opts.color
	}
	if fs.Changed("match-color") {
		cfg.MatchColor = opts.matchColor
	}
	if fs.Changed("match-timeout") {
		cfg.MatchTimeout = opts.matchTimeout
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "dlp-regex-tester - highlight regular expression matches in a text file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dlp-regex-tester [OPTIONS] <regex> <file_path>")
	fmt.Fprintln(w, "  dlp-regex-tester [OPTIONS] --rule NAME <file_path>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use - as <file_path> to read standard input. Put -- before a regex that starts with -.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status:")
	fmt.Fprintln(w, "  0  rendered (with or without matches)")
	fmt.Fprintln(w, "  1  the input file could not be read")
	fmt.Fprintln(w, "  2  invalid regex, match timeout, bad arguments or bad configuration")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  DLP_REGEX_TESTER_CONFIG         Path to config file")
	fmt.Fprintln(w, "  DLP_REGEX_TESTER_IGNORE_CASE    Case-insensitive matching (true/false)")
	fmt.Fprintln(w, "  DLP_REGEX_TESTER_ENGINE         Regex engine (re2, pcre)")
	fmt.Fprintln(w, "  DLP_REGEX_TESTER_MATCH_TIMEOUT  Maximum time for a pcre scan")
	fmt.Fprintln(w, "  DLP_REGEX_TESTER_MARKERS        Marker preset")
	fmt.Fprintln(w, "  DLP_REGEX_TESTER_COLOR          Color mode (always, never, auto)")
	fmt.Fprintln(w, "  DLP_REGEX_TESTER_MATCH_COLOR    ANSI color for matches")
	fmt.Fprintln(w, "  DLP_REGEX_TESTER_LOG_LEVEL      Logging level")
	fmt.Fprintln(w, "  NO_COLOR                        Disable colors in auto mode")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration file: ~/.config/dlp-regex-tester/config.yaml")
}
