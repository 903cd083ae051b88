// Package highlight finds regular expression matches in a document and
// renders the document with every match wrapped in a pair of markers.
package highlight

import (
	"errors"
	"strings"
	"time"
)

// Span is a half-open [Start, End) byte range of one match.
type Span struct {
	Start int
	End   int
}

// Options controls how a pattern is compiled and rendered.
type Options struct {
	// IgnoreCase compiles the pattern case-insensitively.
	IgnoreCase bool

	// Engine is EngineRE2 or EnginePCRE. Empty means EngineRE2.
	Engine string

	// Markers wrap every match. The zero value inserts nothing.
	Markers Markers

	// MatchTimeout bounds a pcre scan. Zero means DefaultMatchTimeout.
	MatchTimeout time.Duration
}

// Highlighter is a compiled pattern ready to render documents.
type Highlighter struct {
	pattern string
	opts    Options
	matcher matcher
}

// Compile compiles pattern with the engine selected in opts. A malformed
// pattern yields a *PatternError.
func Compile(pattern string, opts Options) (*Highlighter, error) {
	if opts.Engine == "" {
		opts.Engine = EngineRE2
	}
	if opts.MatchTimeout <= 0 {
		opts.MatchTimeout = DefaultMatchTimeout
	}

	m, err := compileMatcher(pattern, opts)
	if errors.Is(err, ErrUnknownEngine) {
		return nil, err
	}
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Engine: opts.Engine, Err: err}
	}

	return &Highlighter{
		pattern: pattern,
		opts:    opts,
		matcher: m,
	}, nil
}

// Pattern returns the source pattern.
func (h *Highlighter) Pattern() string {
	return h.pattern
}

// Engine returns the name of the engine the pattern was compiled with.
func (h *Highlighter) Engine() string {
	return h.opts.Engine
}

// Spans returns every non-overlapping match in text, ordered by start.
// An empty document has no matches, even for patterns that match the
// empty string.
func (h *Highlighter) Spans(text string) ([]Span, error) {
	if text == "" {
		return nil, nil
	}
	return h.matcher.findAll(text)
}

// Render returns text with every match wrapped in the configured markers.
func (h *Highlighter) Render(text string) (string, error) {
	spans, err := h.Spans(text)
	if err != nil {
		return "", err
	}
	return Apply(text, spans, h.opts.Markers), nil
}

// Render compiles pattern and renders text in one step.
func Render(text, pattern string, opts Options) (string, error) {
	h, err := Compile(pattern, opts)
	if err != nil {
		return "", err
	}
	return h.Render(text)
}

// Apply copies text, wrapping each span in markers. Spans must be ordered
// by start; a span that overlaps the one before it is skipped.
func Apply(text string, spans []Span, markers Markers) string {
	var builder strings.Builder
	builder.Grow(len(text) + len(spans)*(len(markers.Start)+len(markers.End)))

	lastIndex := 0
	for _, span := range spans {
		if span.Start < lastIndex {
			continue
		}
		builder.WriteString(text[lastIndex:span.Start])
		builder.WriteString(markers.Start)
		builder.WriteString(text[span.Start:span.End])
		builder.WriteString(markers.End)
		lastIndex = span.End
	}
	builder.WriteString(text[lastIndex:])

	return builder.String()
}
