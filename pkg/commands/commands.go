// Package commands provides the high-level operations behind the tmplfs CLI.
//
// Each command is implemented in its own subdirectory:
//   - targets/  - resolve template directories from a path or --all
//   - pack/     - update dependencies and write template archives
//   - validate/ - check template manifests
//   - inspect/  - list the contents of a template archive
//
// This file re-exports the command functions so callers need a single
// import.
package commands

import (
	"github.com/arthur-debert/tmplfs/pkg/commands/inspect"
	"github.com/arthur-debert/tmplfs/pkg/commands/pack"
	"github.com/arthur-debert/tmplfs/pkg/commands/targets"
	"github.com/arthur-debert/tmplfs/pkg/commands/validate"
)

// TargetsOptions configures ResolveTargets.
type TargetsOptions = targets.Options

// ResolveTargets returns the template directories a command acts on.
func ResolveTargets(opts TargetsOptions) ([]targets.Target, error) {
	return targets.Resolve(opts)
}

// PackOptions configures PackTemplates.
type PackOptions = pack.Options

// PackTemplates packs every target into an archive.
func PackTemplates(opts PackOptions) (*pack.Result, error) {
	return pack.Pack(opts)
}

// ValidateOptions configures ValidateTemplates.
type ValidateOptions = validate.Options

// ValidateTemplates checks the manifest of every target.
func ValidateTemplates(opts ValidateOptions) *validate.Result {
	return validate.Validate(opts)
}

// InspectOptions configures InspectArchive.
type InspectOptions = inspect.Options

// InspectArchive lists the contents of a packed template.
func InspectArchive(opts InspectOptions) (*inspect.Result, error) {
	return inspect.Inspect(opts)
}
