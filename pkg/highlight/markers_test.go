package highlight

import (
	"sort"
	"testing"
)

func TestANSIMarkers(t *testing.T) {
	tests := []struct {
		color     string
		wantStart string
		wantErr   bool
	}{
		{color: "", wantStart: "\033[1;31m"},
		{color: "red", wantStart: "\033[1;31m"},
		{color: "dark-red", wantStart: "\033[31m"},
		{color: "green", wantStart: "\033[1;32m"},
		{color: "dark-magenta", wantStart: "\033[35m"},
		{color: "chartreuse", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			m, err := ANSIMarkers(tt.color)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Start != tt.wantStart {
				t.Errorf("expected start %q but got %q", tt.wantStart, m.Start)
			}
			if m.End != "\033[0m" {
				t.Errorf("expected reset end marker but got %q", m.End)
			}
		})
	}
}

func TestANSIMarkers_DefaultMatchesDefaultMarkers(t *testing.T) {
	m, err := ANSIMarkers(DefaultColor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != DefaultMarkers {
		t.Errorf("expected %q but got %q", DefaultMarkers, m)
	}
}

func TestPresetMarkers(t *testing.T) {
	tests := []struct {
		preset  string
		color   string
		want    Markers
		wantErr bool
	}{
		{preset: "", want: DefaultMarkers},
		{preset: PresetANSI, color: "blue", want: Markers{Start: "\033[1;34m", End: "\033[0m"}},
		{preset: PresetHTML, want: Markers{Start: "<mark>", End: "</mark>"}},
		{preset: PresetHTML, color: "blue", want: Markers{Start: "<mark>", End: "</mark>"}},
		{preset: PresetBrackets, want: Markers{Start: "[[", End: "]]"}},
		{preset: "xml", wantErr: true},
		{preset: PresetANSI, color: "plaid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.preset+"/"+tt.color, func(t *testing.T) {
			got, err := PresetMarkers(tt.preset, tt.color)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q but got %q", tt.want, got)
			}
		})
	}
}

func TestPresetNames(t *testing.T) {
	for _, name := range PresetNames() {
		if _, err := PresetMarkers(name, ""); err != nil {
			t.Errorf("preset %q does not resolve: %v", name, err)
		}
	}
}

func TestColorNames(t *testing.T) {
	names := ColorNames()
	if len(names) != len(ansiColorMap) {
		t.Errorf("expected %d colors but got %d", len(ansiColorMap), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("expected sorted color names but got %v", names)
	}
	for _, name := range names {
		if _, err := ANSIMarkers(name); err != nil {
			t.Errorf("color %q does not resolve: %v", name, err)
		}
	}
}
