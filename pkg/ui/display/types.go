// Package display converts command results into a neutral report that the
// text and terminal renderers lay out.
package display

// Status is the outcome of a report section.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
	StatusInfo  Status = "info"
)

// Report is a rendered command result.
type Report struct {
	Command  string    `json:"command"`
	Summary  string    `json:"summary"`
	Status   Status    `json:"status"`
	Sections []Section `json:"sections"`
}

// Section is one template or archive.
type Section struct {
	Title  string  `json:"title"`
	Status Status  `json:"status"`
	Fields []Field `json:"fields,omitempty"`
	Lists  []List  `json:"lists,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Field is a labelled value.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// List is a titled list of items. Empty lists are rendered with a
// placeholder.
type List struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}
