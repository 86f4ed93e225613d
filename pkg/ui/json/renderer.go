// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/tmplfs/pkg/errors"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
	}, nil
}

// RenderResult renders any result type as JSON
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// ErrorObject is the encoded form of an error.
type ErrorObject struct {
	Error   string                 `json:"error" yaml:"error"`
	Code    string                 `json:"code" yaml:"code"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewErrorObject captures the message, code and details of err.
func NewErrorObject(err error) ErrorObject {
	return ErrorObject{
		Error:   err.Error(),
		Code:    string(errors.GetErrorCode(err)),
		Details: errors.GetErrorDetails(err),
	}
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(NewErrorObject(err))
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	messageObj := map[string]string{
		"message": msg,
	}
	return r.encoder.Encode(messageObj)
}
