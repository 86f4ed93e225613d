// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/ui/display"
)

const labelWidth = 10

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	rep, ok := display.FromResult(result)
	if !ok {
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	_, err := io.WriteString(r.output, Format(rep))
	return err
}

// RenderError renders an error as plain text, followed by its details.
func (r *Renderer) RenderError(err error) error {
	_, werr := io.WriteString(r.output, FormatError(err))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// Format lays out a report as indented plain text.
func Format(rep *display.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", rep.Command, rep.Summary)
	for _, s := range rep.Sections {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s [%s]\n", s.Title, s.Status)
		if s.Error != "" {
			fmt.Fprintf(&b, "  %-*s%s\n", labelWidth, "error", s.Error)
		}
		for _, f := range s.Fields {
			if f.Value == "" {
				continue
			}
			fmt.Fprintf(&b, "  %-*s%s\n", labelWidth, f.Label, f.Value)
		}
		for _, l := range s.Lists {
			fmt.Fprintf(&b, "  %s:\n", l.Title)
			if len(l.Items) == 0 {
				b.WriteString("    (none)\n")
			}
			for _, item := range l.Items {
				fmt.Fprintf(&b, "    %s\n", item)
			}
		}
	}
	return b.String()
}

// FormatError renders err and its details sorted by key.
func FormatError(err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %v\n", err)
	for _, line := range DetailLines(err) {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	return b.String()
}

// DetailLines returns "key: value" lines for the details of a coded error.
func DetailLines(err error) []string {
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, details[k]))
	}
	return lines
}
