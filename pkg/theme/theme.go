// Package theme holds the named style variables the presentation layer
// renders toasts with. The core engine owns none of these values; hosts
// override them wholesale or per field, optionally from a YAML document.
package theme

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toastline-dev/toastline/pkg/toast"
)

// LevelStyle is the color triple for one severity level.
type LevelStyle struct {
	Background string `yaml:"background"`
	Border     string `yaml:"border"`
	Text       string `yaml:"text"`
}

// Theme is the full set of style variables: generic layout and typography
// parameters plus one LevelStyle per severity.
type Theme struct {
	Width          string `yaml:"width"`
	FontSize       string `yaml:"font_size"`
	FontFamily     string `yaml:"font_family"`
	FontWeight     string `yaml:"font_weight"`
	LineHeight     string `yaml:"line_height"`
	ProgressHeight string `yaml:"progress_height"`
	ZIndex         int    `yaml:"z_index"`

	Info    LevelStyle `yaml:"info"`
	Success LevelStyle `yaml:"success"`
	Warn    LevelStyle `yaml:"warn"`
	Error   LevelStyle `yaml:"error"`
}

// Default returns the reference palette.
func Default() Theme {
	return Theme{
		Width:          "320px",
		FontSize:       "14px",
		FontFamily:     "system-ui, sans-serif",
		FontWeight:     "400",
		LineHeight:     "1.5",
		ProgressHeight: "3px",
		ZIndex:         99999,

		Info:    LevelStyle{Background: "#e7f1ff", Border: "#79a6f6", Text: "#2361cd"},
		Success: LevelStyle{Background: "#e8f6ee", Border: "#6fcf97", Text: "#1d7a46"},
		Warn:    LevelStyle{Background: "#fdf3e0", Border: "#f2b75c", Text: "#a16a10"},
		Error:   LevelStyle{Background: "#fdecec", Border: "#ef7b7b", Text: "#b42323"},
	}
}

// Parse applies a YAML override document on top of the defaults. Fields
// absent from the document keep their default values.
func Parse(data []byte) (Theme, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("theme: parse overrides: %w", err)
	}
	return t, nil
}

// Load reads a YAML override file and applies it on top of the defaults.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return Parse(data)
}

// Level returns the color triple for a severity level. Unknown levels fall
// back to the info style.
func (t Theme) Level(level toast.Level) LevelStyle {
	switch level {
	case toast.LevelSuccess:
		return t.Success
	case toast.LevelWarn:
		return t.Warn
	case toast.LevelError:
		return t.Error
	default:
		return t.Info
	}
}

// CSSVariables renders the theme as a :root custom-property block. Every
// variable is prefixed --toastline- so host stylesheets can override any of
// them after the fact.
func (t Theme) CSSVariables() string {
	var b strings.Builder
	b.WriteString(":root {\n")

	write := func(name, value string) {
		fmt.Fprintf(&b, "\t--toastline-%s: %s;\n", name, value)
	}

	write("width", t.Width)
	write("font-size", t.FontSize)
	write("font-family", t.FontFamily)
	write("font-weight", t.FontWeight)
	write("line-height", t.LineHeight)
	write("progress-height", t.ProgressHeight)
	write("z-index", fmt.Sprintf("%d", t.ZIndex))

	for _, lvl := range []struct {
		name  string
		style LevelStyle
	}{
		{"info", t.Info},
		{"success", t.Success},
		{"warn", t.Warn},
		{"error", t.Error},
	} {
		write(lvl.name+"-background-color", lvl.style.Background)
		write(lvl.name+"-border-color", lvl.style.Border)
		write(lvl.name+"-text-color", lvl.style.Text)
	}

	b.WriteString("}\n")
	return b.String()
}
