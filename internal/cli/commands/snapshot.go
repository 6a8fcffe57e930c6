package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/internal/state"
	"github.com/leapstack-labs/minisql/pkg/engine"
)

// NewSnapshotCommand creates the snapshot command and its subcommands.
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage snapshots in the state database",
		Long: `Manage named table snapshots stored in the state database.

Snapshots are saved from the REPL with .save <name> and restored with
.load <name>.`,
		Example: `  minisql snapshot list
  minisql snapshot show users --format yaml
  minisql snapshot delete users`,
	}

	cmd.AddCommand(newSnapshotListCommand())
	cmd.AddCommand(newSnapshotShowCommand())
	cmd.AddCommand(newSnapshotDeleteCommand())
	return cmd
}

func newSnapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			store, err := openStore(cmdCtx.Cfg, cmdCtx.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			infos, err := store.ListSnapshots(cmd.Context())
			if err != nil {
				return err
			}
			return renderSnapshotList(cmdCtx.Renderer, infos)
		},
	}
}

func renderSnapshotList(r *output.Renderer, infos []state.SnapshotInfo) error {
	if r.EffectiveMode() == output.ModeJSON {
		if infos == nil {
			infos = []state.SnapshotInfo{}
		}
		return r.JSON(infos)
	}
	if len(infos) == 0 {
		r.Muted("No snapshots")
		return nil
	}
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.Name, info.CreatedAt.Local().Format("2006-01-02 15:04:05"), fmt.Sprintf("%d B", info.Size)}
	}
	r.Table([]string{"Name", "Created", "Size"}, rows)
	return nil
}

func newSnapshotShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			store, err := openStore(cmdCtx.Cfg, cmdCtx.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.LoadSnapshot(cmd.Context(), args[0])
			if errors.Is(err, state.ErrSnapshotNotFound) {
				return fmt.Errorf("snapshot %q not found", args[0])
			}
			if err != nil {
				return err
			}

			if format == "" {
				format = cmdCtx.Cfg.Snapshot.Format
			}
			data, err := engine.MarshalSnapshot(snap, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Encoding: json or yaml (default: snapshot.format)")
	return cmd
}

func newSnapshotDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			store, err := openStore(cmdCtx.Cfg, cmdCtx.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			err = store.DeleteSnapshot(cmd.Context(), args[0])
			if errors.Is(err, state.ErrSnapshotNotFound) {
				return fmt.Errorf("snapshot %q not found", args[0])
			}
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Deleted snapshot '%s'", args[0]))
			return nil
		},
	}
}
