package tmplfs

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Pack templates and their package dependencies into archives"
	MsgPackShort       = "Resolve dependencies and write template archives"
	MsgValidateShort   = "Check template manifests"
	MsgInspectShort    = "List the files, packages and fonts of an archive"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Error messages
	MsgErrNoCommand       = "no command specified"
	MsgErrLoadConfig      = "failed to load configuration: %w"
	MsgErrInvalidTemplate = "%d of %d template(s) invalid"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat      = "Output format: auto, term, text, json or yaml"
	MsgFlagConfig      = "Read configuration from this file instead of the user config"
	MsgFlagAll         = "Act on every template found below the path"
	MsgFlagOut         = "Directory the archives are written to (default pack.out_dir)"
	MsgFlagCompression = "Archive compression method (default pack.compression)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/pack-long.txt
	msgPackLongRaw string
	MsgPackLong    = strings.TrimSpace(msgPackLongRaw)

	//go:embed msgs/pack-example.txt
	msgPackExampleRaw string
	MsgPackExample    = strings.TrimSpace(msgPackExampleRaw)

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/inspect-long.txt
	msgInspectLongRaw string
	MsgInspectLong    = strings.TrimSpace(msgInspectLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
