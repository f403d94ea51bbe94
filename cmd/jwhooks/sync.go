package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile local records and platform webhooks against the configured events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := buildDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			record, err := d.registrar.Sync(cmd.Context(), d.cfg.JW.Events)
			if err != nil {
				return err
			}

			if record == nil {
				fmt.Println("No events configured, all webhooks unregistered")
				return nil
			}

			fmt.Printf("Webhook %s in sync for events %v\n", record.ID, d.cfg.JW.Events)
			return nil
		},
	}
}
