// Package validate checks the manifests of template directories.
package validate

import (
	"github.com/arthur-debert/tmplfs/pkg/commands/targets"
	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/filesystem"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/manifest"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// Options configures Validate.
type Options struct {
	FS           types.FS
	Targets      []targets.Target
	ManifestFile string
}

// TemplateResult is the outcome for one template.
type TemplateResult struct {
	Dir     string `json:"dir" yaml:"dir"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Tests   string `json:"tests,omitempty" yaml:"tests,omitempty"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result lists every template in target order.
type Result struct {
	Templates []TemplateResult `json:"templates" yaml:"templates"`
	Invalid   int              `json:"invalid" yaml:"invalid"`
}

// OK reports whether every template is valid.
func (r *Result) OK() bool {
	return r.Invalid == 0
}

// Validate loads and validates the manifest of each target. Failures are
// reported per template and never stop the run.
func Validate(opts Options) *Result {
	log := logging.GetLogger("commands.validate")
	log.Debug().Int("targets", len(opts.Targets)).Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	result := &Result{}
	for _, target := range opts.Targets {
		tr := TemplateResult{Dir: target.Dir}

		m, err := manifest.LoadDir(fsys, target.Dir, opts.ManifestFile)
		if err != nil {
			tr.Code = string(errors.GetErrorCode(err))
			tr.Error = err.Error()
			result.Invalid++
			log.Warn().Err(err).Str("dir", target.Dir).Msg("Template is invalid")
		} else {
			tr.Valid = true
			tr.Name = m.Package.Name
			tr.Version = m.Package.Version.String()
			tr.Tests = m.Tool.Tests
		}
		result.Templates = append(result.Templates, tr)
	}

	log.Info().
		Int("templates", len(result.Templates)).
		Int("invalid", result.Invalid).
		Msg("Command finished")
	return result
}
