package highlight

import (
	"fmt"
	"sort"
)

// Marker preset names.
const (
	PresetANSI     = "ansi"
	PresetHTML     = "html"
	PresetBrackets = "brackets"
)

// DefaultColor is the ANSI colour used when none is configured.
const DefaultColor = "red"

const ansiReset = "\033[0m"

// Markers is the pair of strings written around every match.
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers highlights matches in bold red.
var DefaultMarkers = Markers{Start: "\033[1;31m", End: ansiReset}

var ansiColorMap = map[string]string{
	"dark-red": "31m",
	"red":      "1;31m",

	"dark-green": "32m",
	"green":      "1;32m",

	"dark-yellow": "33m",
	"yellow":      "1;33m",

	"dark-blue": "34m",
	"blue":      "1;34m",

	"dark-magenta": "35m",
	"magenta":      "1;35m",
}

var presetMarkers = map[string]Markers{
	PresetHTML:     {Start: "<mark>", End: "</mark>"},
	PresetBrackets: {Start: "[[", End: "]]"},
}

// ANSIMarkers returns the escape sequences that switch color on and back off.
func ANSIMarkers(color string) (Markers, error) {
	if color == "" {
		color = DefaultColor
	}
	escape, ok := ansiColorMap[color]
	if !ok {
		return Markers{}, fmt.Errorf("unsupported color: %s", color)
	}
	return Markers{Start: "\033[" + escape, End: ansiReset}, nil
}

// PresetMarkers resolves a preset name. The color only applies to the ansi preset.
func PresetMarkers(preset, color string) (Markers, error) {
	if preset == "" || preset == PresetANSI {
		return ANSIMarkers(color)
	}
	m, ok := presetMarkers[preset]
	if !ok {
		return Markers{}, fmt.Errorf("unknown marker preset: %s", preset)
	}
	return m, nil
}

// PresetNames lists the valid preset names.
func PresetNames() []string {
	return []string{PresetANSI, PresetHTML, PresetBrackets}
}

// ColorNames lists the supported ANSI colors in sorted order.
func ColorNames() []string {
	names := make([]string, 0, len(ansiColorMap))
	for name := range ansiColorMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
