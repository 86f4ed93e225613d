package tmplfs

import (
	"fmt"

	"github.com/arthur-debert/tmplfs/internal/version"
	"github.com/arthur-debert/tmplfs/pkg/commands"
	"github.com/arthur-debert/tmplfs/pkg/config"
	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/filesystem"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/pack"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/arthur-debert/tmplfs/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	verbosity  int
	format     string
	configFile string
	fs         types.FS
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globals{fs: filesystem.NewOS()}

	rootCmd := &cobra.Command{
		Use:     "tmplfs",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&g.format, "format", "f", ui.FormatAuto.String(), MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPackCmd(g))
	rootCmd.AddCommand(newValidateCmd(g))
	rootCmd.AddCommand(newInspectCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func (g *globals) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: g.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

func (g *globals) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func newPackCmd(g *globals) *cobra.Command {
	var (
		all         bool
		outDir      string
		compression string
	)

	cmd := &cobra.Command{
		Use:     "pack [path]",
		Short:   MsgPackShort,
		Long:    MsgPackLong,
		Example: MsgPackExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			overrides := map[string]interface{}{}
			if compression != "" {
				overrides["pack.compression"] = compression
			}
			if outDir != "" {
				overrides["pack.out_dir"] = outDir
			}
			cfg, err := g.loadConfig(overrides)
			if err != nil {
				return err
			}

			targets, err := commands.ResolveTargets(commands.TargetsOptions{
				FS:           g.fs,
				Path:         pathArg(args),
				All:          all,
				ManifestFile: cfg.Manifest.File,
			})
			if err != nil {
				return err
			}

			log.Info().
				Int("templates", len(targets)).
				Str("out_dir", cfg.Pack.OutDir).
				Msg("Packing templates")

			result, err := commands.PackTemplates(commands.PackOptions{
				FS:      g.fs,
				Targets: targets,
				Config:  cfg,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", MsgFlagOut)
	cmd.Flags().StringVarP(&compression, "compression", "c", "", MsgFlagCompression)
	_ = cmd.RegisterFlagCompletionFunc("compression", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pack.Methods(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newValidateCmd(g *globals) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "validate [path]",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			cfg, err := g.loadConfig(nil)
			if err != nil {
				return err
			}

			targets, err := commands.ResolveTargets(commands.TargetsOptions{
				FS:           g.fs,
				Path:         pathArg(args),
				All:          all,
				ManifestFile: cfg.Manifest.File,
			})
			if err != nil {
				return err
			}

			result := commands.ValidateTemplates(commands.ValidateOptions{
				FS:           g.fs,
				Targets:      targets,
				ManifestFile: cfg.Manifest.File,
			})
			if err := renderer.RenderResult(result); err != nil {
				return err
			}
			if !result.OK() {
				return errors.Newf(errors.ErrManifestInvalid, MsgErrInvalidTemplate, result.Invalid, len(result.Templates))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	return cmd
}

func newInspectCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <archive>",
		Short:   MsgInspectShort,
		Long:    MsgInspectLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			cfg, err := g.loadConfig(nil)
			if err != nil {
				return err
			}

			result, err := commands.InspectArchive(commands.InspectOptions{
				FS:           g.fs,
				Archive:      args[0],
				ManifestFile: cfg.Manifest.File,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
