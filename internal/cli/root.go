// Package cli provides the command-line interface for minisql.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/minisql/internal/cli/commands"
	"github.com/leapstack-labs/minisql/internal/cli/config"
	"github.com/leapstack-labs/minisql/pkg/highlight"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minisql",
		Short: "minisql - SQL validator, highlighter and in-memory engine",
		Long: `minisql tokenizes, parses and validates a small SQL dialect, executes it
against an in-memory store, and highlights it for terminals and HTML.

Validation reports errors, warnings and hints with suggested fixes.
Named snapshots and statement history live in a local SQLite state
database.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey{}, cfg)
			ctx = config.WithLogger(ctx, config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose))
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", configFile)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./minisql.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	rootCmd.PersistentFlags().String("theme", "", "Highlight theme")
	rootCmd.PersistentFlags().String("state", "", "Path to state database")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("snapshot-format", "", "Default snapshot encoding (json|yaml)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("theme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return highlight.ThemeNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("snapshot-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewTokensCommand())
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewExecCommand())
	rootCmd.AddCommand(commands.NewPlanCommand())
	rootCmd.AddCommand(commands.NewSuggestCommand())
	rootCmd.AddCommand(commands.NewHighlightCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewSnapshotCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return config.Default()
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for minisql.

To load completions:

Bash:
  $ source <(minisql completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ minisql completion bash > /etc/bash_completion.d/minisql
  # macOS:
  $ minisql completion bash > $(brew --prefix)/etc/bash_completion.d/minisql

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ minisql completion zsh > "${fpath[1]}/_minisql"

Fish:
  $ minisql completion fish | source

PowerShell:
  PS> minisql completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
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
	return cmd
}
