package output

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/logging"
	"github.com/arthur-debert/drawables/pkg/output/styles"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Format selects how results are written
type Format string

const (
	FormatAuto Format = "auto"
	FormatTerm Format = "term"
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted --format values
var Formats = []Format{FormatAuto, FormatTerm, FormatText, FormatJSON, FormatYAML}

// ParseFormat converts a flag value into a Format
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatAuto, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown output format %q", s).
		WithDetail("format", s)
}

// DetectFormat resolves FormatAuto for w
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	f, ok := w.(*os.File)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(f).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerm
}

// Renderer writes results in one format
type Renderer struct {
	templates *template.Template
	writer    io.Writer
	format    Format
	lg        *lipgloss.Renderer
}

// NewRenderer creates a Renderer for w. FormatAuto is resolved against w
// immediately.
func NewRenderer(w io.Writer, format Format) (*Renderer, error) {
	log := logging.GetLogger("output.Renderer")

	if format == "" || format == FormatAuto {
		format = DetectFormat(w)
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := &Renderer{
		templates: tmpl,
		writer:    w,
		format:    format,
	}
	if format == FormatTerm {
		r.lg = lipgloss.NewRenderer(w)
		log.Debug().
			Str("colorProfile", fmt.Sprintf("%v", r.lg.ColorProfile())).
			Msg("Lipgloss renderer created")
	}

	log.Debug().
		Str("format", string(format)).
		Str("TERM", os.Getenv("TERM")).
		Msg("Created renderer")
	return r, nil
}

// Format returns the resolved output format
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes result
func (r *Renderer) Render(result *types.Result) error {
	if result == nil {
		return errors.New(errors.ErrInvalidInput, "nothing to render")
	}

	switch r.format {
	case FormatJSON:
		return r.writeJSON(result)
	case FormatYAML:
		return r.writeYAML(result)
	case FormatTerm:
		return r.renderTerm(result)
	default:
		return r.renderText(result)
	}
}

func (r *Renderer) renderText(result *types.Result) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "result.tmpl", result); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	_, err := fmt.Fprintln(r.writer, strings.TrimRight(buf.String(), "\n"))
	return err
}

func (r *Renderer) style(name string) lipgloss.Style {
	return styles.GetStyle(name).Renderer(r.lg)
}

func (r *Renderer) renderTerm(result *types.Result) error {
	var b strings.Builder

	if result.DryRun {
		b.WriteString(r.style("DryRunBanner").Render("DRY RUN: no files were written"))
		b.WriteString("\n")
	}
	b.WriteString(r.style("Header").Render(result.Goal))
	b.WriteString("\n")

	arrow := r.style("Arrow").Render("→")
	for _, o := range result.Outputs {
		b.WriteString("  ")
		if o.Density != "" {
			b.WriteString(r.style("Density").Render(o.Density))
		}
		b.WriteString(r.style("Muted").Render(o.Source))
		b.WriteString(" " + arrow + " ")
		b.WriteString(r.style("FilePath").Render(o.Destination))
		if o.Overwrote {
			b.WriteString(" " + r.style("Overwrote").Render("overwrote"))
		}
		b.WriteString("\n")
	}

	for _, w := range result.Warnings {
		b.WriteString(pterm.Warning.Sprint(w))
		if !strings.HasSuffix(w, "\n") {
			b.WriteString("\n")
		}
	}

	noun := "files"
	if len(result.Outputs) == 1 {
		noun = "file"
	}
	b.WriteString(pterm.Success.Sprintf("%d %s in %s", len(result.Outputs), noun, result.Duration))

	_, err := fmt.Fprintln(r.writer, strings.TrimRight(b.String(), "\n"))
	return err
}

func (r *Renderer) writeJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	_, err = fmt.Fprintln(r.writer, string(data))
	return err
}

func (r *Renderer) writeYAML(v interface{}) error {
	enc := yaml.NewEncoder(r.writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// ErrorReport is the structured form of a failed goal
type ErrorReport struct {
	Code    string                 `json:"code" yaml:"code"`
	Message string                 `json:"message" yaml:"message"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewErrorReport extracts code, message and details from err
func NewErrorReport(err error) ErrorReport {
	report := ErrorReport{
		Code:    string(errors.GetErrorCode(err)),
		Message: err.Error(),
	}
	if de, ok := errors.As(err); ok {
		if len(de.Details) > 0 {
			report.Details = make(map[string]interface{}, len(de.Details))
			for k, v := range de.Details {
				report.Details[k] = fmt.Sprint(v)
			}
		}
	}
	return report
}

// RenderError writes err with its code and details
func (r *Renderer) RenderError(err error) error {
	report := NewErrorReport(err)

	switch r.format {
	case FormatJSON:
		return r.writeJSON(map[string]ErrorReport{"error": report})
	case FormatYAML:
		return r.writeYAML(map[string]ErrorReport{"error": report})
	}

	var b strings.Builder
	if r.format == FormatTerm {
		b.WriteString(r.style("Error").Render("Error:"))
	} else {
		b.WriteString("Error:")
	}
	b.WriteString(" " + report.Message)

	keys := make([]string, 0, len(report.Details))
	for k := range report.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n")
		if r.format == FormatTerm {
			b.WriteString(r.style("DetailKey").Render(k + ":"))
		} else {
			b.WriteString("  " + k + ":")
		}
		b.WriteString(fmt.Sprintf(" %v", report.Details[k]))
	}

	_, writeErr := fmt.Fprintln(r.writer, b.String())
	return writeErr
}
