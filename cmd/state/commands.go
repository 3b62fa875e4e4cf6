package state

import (
	"encoding/json"
	"fmt"

	"github.com/rehydrate-io/rehydrate/lib/snapshot"
	"github.com/spf13/cobra"
)

var (
	lsCmd = &cobra.Command{
		Use:   "ls",
		Short: "Lists the tokens that have a persisted record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := store.Tokens()
			if err != nil {
				return err
			}
			for _, token := range tokens {
				fmt.Println(token)
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [token]",
		Short: "Prints the record for a token as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := store.Read(args[0])
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("no record for token %q", args[0])
			}
			b, err := json.MarshalIndent(snapshot.Decode(record), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [token] [json]",
		Short: "Writes a record for a token from a JSON object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record map[string]any
			if err := json.Unmarshal([]byte(args[1]), &record); err != nil {
				return fmt.Errorf("value must be a JSON object: %w", err)
			}
			if err := store.Write(args[0], record); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	rmCmd = &cobra.Command{
		Use:   "rm [token]",
		Short: "Removes the record for a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("removed successfully")
			return nil
		},
	}
)
