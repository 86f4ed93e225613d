// Package yaml provides YAML output
package yaml

import (
	"io"

	"github.com/arthur-debert/tmplfs/pkg/ui/json"
	"gopkg.in/yaml.v3"
)

// Renderer writes each result as its own YAML document
type Renderer struct {
	output io.Writer
}

// New creates a new YAML renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

func (r *Renderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// RenderResult renders any result type as YAML
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	return r.encode(json.NewErrorObject(err))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
