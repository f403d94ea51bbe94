package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func unregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unregister <webhook-id>",
		Short: "Delete a webhook at the platform and locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			id := args[0]
			if err := d.registrar.Unregister(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("Unregistered webhook %s\n", id)
			return nil
		},
	}
}
