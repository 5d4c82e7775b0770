package chart

import "testing"

func TestColorForIndexCycles(t *testing.T) {
	n := len(DefaultPalette)
	for i := 0; i < 3*n; i++ {
		if got, want := ColorForIndex(i), ColorForIndex(i+n); got != want {
			t.Errorf("ColorForIndex(%d) = %s, ColorForIndex(%d) = %s", i, got, i+n, want)
		}
	}
	if got := ColorForIndex(0); got != ColorGreen {
		t.Errorf("ColorForIndex(0) = %s, want %s", got, ColorGreen)
	}
	if got := ColorForIndex(n + 1); got != DefaultPalette[1] {
		t.Errorf("ColorForIndex(%d) = %s, want %s", n+1, got, DefaultPalette[1])
	}
}

func TestPaletteAt(t *testing.T) {
	tests := []struct {
		name string
		p    Palette
		i    int
		want Color
	}{
		{"first", Palette{"#111111", "#222222"}, 0, "#111111"},
		{"wraps", Palette{"#111111", "#222222"}, 3, "#222222"},
		{"negative", Palette{"#111111", "#222222", "#333333"}, -1, "#333333"},
		{"empty falls back to muted", nil, 5, ColorMuted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.At(tt.i); got != tt.want {
				t.Errorf("At(%d) = %s, want %s", tt.i, got, tt.want)
			}
		})
	}
}

func TestColorForSeverity(t *testing.T) {
	tests := []struct {
		level string
		want  Color
	}{
		{"critical", ColorRed},
		{"high", ColorAmber},
		{"medium", ColorBlue},
		{"low", ColorGreen},
		{"info", ColorMuted},
		{"CRITICAL", ColorRed},
		{"unknown", ColorMuted},
		{"", ColorMuted},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := ColorForSeverity(tt.level); got != tt.want {
				t.Errorf("ColorForSeverity(%q) = %s, want %s", tt.level, got, tt.want)
			}
		})
	}
}

func TestColorForSeverityIndependentOfDataset(t *testing.T) {
	only := LayoutDonut(SeverityCounts{SeverityCritical: 1}, 400, DefaultMetrics(), DefaultTheme())
	mixed := LayoutDonut(SeverityCounts{SeverityLow: 3, SeverityCritical: 9, SeverityInfo: 1}, 400, DefaultMetrics(), DefaultTheme())

	if only.Slices[0].Color != ColorForSeverity("critical") {
		t.Errorf("critical color = %s, want %s", only.Slices[0].Color, ColorForSeverity("critical"))
	}
	if mixed.Slices[0].Color != only.Slices[0].Color {
		t.Errorf("critical color changed with composition: %s vs %s", mixed.Slices[0].Color, only.Slices[0].Color)
	}
}

func TestBadgeForSeverity(t *testing.T) {
	tests := map[string]string{
		"critical": "red",
		"high":     "amber",
		"medium":   "blue",
		"low":      "green",
		"info":     "muted",
		"bogus":    "muted",
	}
	for level, want := range tests {
		if got := BadgeForSeverity(level); got != want {
			t.Errorf("BadgeForSeverity(%q) = %q, want %q", level, got, want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	if sev, ok := ParseSeverity(" High "); !ok || sev != SeverityHigh {
		t.Errorf("ParseSeverity(\" High \") = %q, %v", sev, ok)
	}
	if _, ok := ParseSeverity("severe"); ok {
		t.Error("ParseSeverity(\"severe\") should not be recognized")
	}
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		name string
		fill Color
		want Color
	}{
		{"light fill gets dark ink", "#ffffff", ColorInk},
		{"palette red gets dark ink", ColorRed, ColorInk},
		{"dark fill gets light ink", "#101010", ColorText},
		{"unparseable gets dark ink", "not-a-color", ColorInk},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContrastColor(tt.fill, ColorInk, ColorText); got != tt.want {
				t.Errorf("ContrastColor(%s) = %s, want %s", tt.fill, got, tt.want)
			}
		})
	}
}

func TestValidColor(t *testing.T) {
	if !ValidColor(ColorBlue) {
		t.Errorf("ValidColor(%s) = false", ColorBlue)
	}
	if ValidColor("blue") {
		t.Error("ValidColor(\"blue\") = true, want false")
	}
}
