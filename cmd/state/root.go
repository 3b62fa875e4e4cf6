// Package state implements the CLI commands for inspecting and repairing a
// file-backed storage directory out-of-process.
package state

import (
	"github.com/rehydrate-io/rehydrate/cmd/util"
	"github.com/rehydrate-io/rehydrate/lib/storage/fstore"
	"github.com/spf13/cobra"
)

var (
	store *fstore.Store

	// StateCommands represents the state command group
	StateCommands = &cobra.Command{
		Use:               "state",
		Short:             "Inspect and repair persisted store records",
		PersistentPreRunE: setupStore,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitEnvConfig)

	// Add common storage flags to the state command
	util.SetupStorageFlags(StateCommands)

	// Add subcommands
	StateCommands.AddCommand(lsCmd)
	StateCommands.AddCommand(getCmd)
	StateCommands.AddCommand(setCmd)
	StateCommands.AddCommand(rmCmd)
}

// setupStore opens the configured storage directory
func setupStore(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	s, err := util.GetStore()
	if err != nil {
		return err
	}
	store = s
	return nil
}
