package highlight

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

// Supported regex engines.
const (
	// EngineRE2 uses Go's regexp package: RE2 syntax, linear time.
	EngineRE2 = "re2"

	// EnginePCRE uses regexp2: Perl-style syntax with lookaround and
	// backreferences, backtracking, bounded by a match timeout.
	EnginePCRE = "pcre"
)

// DefaultMatchTimeout bounds a single pcre scan.
const DefaultMatchTimeout = 5 * time.Second

// Engines lists the valid engine names.
func Engines() []string {
	return []string{EngineRE2, EnginePCRE}
}

// matcher finds every non-overlapping match in text, in order.
type matcher interface {
	findAll(text string) ([]Span, error)
}

func compileMatcher(pattern string, opts Options) (matcher, error) {
	switch opts.Engine {
	case "", EngineRE2:
		return compileRE2(pattern, opts.IgnoreCase)
	case EnginePCRE:
		return compilePCRE(pattern, opts.IgnoreCase, opts.MatchTimeout)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, opts.Engine)
	}
}

type re2Matcher struct {
	re *regexp.Regexp
}

func compileRE2(pattern string, ignoreCase bool) (*re2Matcher, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &re2Matcher{re: re}, nil
}

// findAll drops empty matches that abut the previous match, which is the
// rule the pcre matcher reproduces.
func (m *re2Matcher) findAll(text string) ([]Span, error) {
	locs := m.re.FindAllStringIndex(text, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, Span{Start: loc[0], End: loc[1]})
	}
	return spans, nil
}

type pcreMatcher struct {
	re *regexp2.Regexp
}

func compilePCRE(pattern string, ignoreCase bool, timeout time.Duration) (*pcreMatcher, error) {
	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return &pcreMatcher{re: re}, nil
}

// findAll walks the input in runes, since regexp2 reports rune indexes,
// and converts every span back to byte offsets.
func (m *pcreMatcher) findAll(text string) ([]Span, error) {
	runes := []rune(text)
	offsets := runeOffsets(text, len(runes))

	var spans []Span
	prevEnd := -1
	for pos := 0; pos <= len(runes); {
		match, err := m.re.FindRunesMatchStartingAt(runes, pos)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMatchTimeout, err)
		}
		if match == nil {
			break
		}

		start, end := match.Index, match.Index+match.Length
		if start == end {
			// regexp2 does not step past an empty match on its own.
			if start != prevEnd {
				spans = append(spans, Span{Start: offsets[start], End: offsets[end]})
			}
			pos = end + 1
		} else {
			spans = append(spans, Span{Start: offsets[start], End: offsets[end]})
			pos = end
		}
		prevEnd = end
	}
	return spans, nil
}

// runeOffsets maps rune index i to its byte offset in text. The extra
// trailing entry maps len(runes) to len(text).
func runeOffsets(text string, n int) []int {
	offsets := make([]int, 0, n+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}
