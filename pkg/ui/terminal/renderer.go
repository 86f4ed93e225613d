// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/tmplfs/pkg/ui/display"
	"github.com/arthur-debert/tmplfs/pkg/ui/styles"
	"github.com/arthur-debert/tmplfs/pkg/ui/text"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using the embedded styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	rep, ok := display.FromResult(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	_, err := io.WriteString(r.output, Format(rep))
	return err
}

// RenderError renders an error with its details
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(styles.GetStyle("Error").Render(pterm.Error.Prefix.Text))
	b.WriteString(" ")
	b.WriteString(err.Error())
	b.WriteString("\n")
	for _, line := range text.DetailLines(err) {
		b.WriteString(styles.GetStyle("Item").Render(styles.GetStyle("Muted").Render(line)))
		b.WriteString("\n")
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Muted").Render(msg))
	return err
}

// Format lays out a report with styles.
func Format(rep *display.Report) string {
	var b strings.Builder
	b.WriteString(styles.GetStyle("Header").Render(rep.Command))
	b.WriteString(" ")
	b.WriteString(statusStyle(rep.Status).Render(rep.Summary))
	b.WriteString("\n")

	for _, s := range rep.Sections {
		b.WriteString("\n")
		b.WriteString(statusStyle(s.Status).Render(prefix(s.Status)))
		b.WriteString(" ")
		b.WriteString(styles.GetStyle("Title").Render(s.Title))
		b.WriteString("\n")

		if s.Error != "" {
			b.WriteString(field("error", styles.GetStyle("Error").Render(s.Error)))
		}
		for _, f := range s.Fields {
			if f.Value == "" {
				continue
			}
			b.WriteString(field(f.Label, styles.GetStyle("Path").Render(f.Value)))
		}
		for _, l := range s.Lists {
			b.WriteString(field(l.Title, styles.GetStyle("Muted").Render(fmt.Sprintf("%d", len(l.Items)))))
			for _, item := range l.Items {
				b.WriteString(styles.GetStyle("Item").Render(item))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func field(label, value string) string {
	return "  " + styles.GetStyle("Label").Render(label) + value + "\n"
}

func prefix(s display.Status) string {
	switch s {
	case display.StatusOK:
		return pterm.Success.Prefix.Text
	case display.StatusError:
		return pterm.Error.Prefix.Text
	default:
		return pterm.Info.Prefix.Text
	}
}

func statusStyle(s display.Status) lipgloss.Style {
	switch s {
	case display.StatusOK:
		return styles.GetStyle("Success")
	case display.StatusError:
		return styles.GetStyle("Error")
	default:
		return styles.GetStyle("Muted")
	}
}
