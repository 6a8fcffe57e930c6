package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/minisql/internal/cli/output"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]string{"version": version, "commit": commit, "date": date})
			}
			r.Printf("minisql v%s\n", version)
			if commit != "" {
				r.Muted("commit " + commit + " built " + date)
			}
			return nil
		},
	}
}
