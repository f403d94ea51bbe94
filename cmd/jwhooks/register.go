package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donut/jw-webhooks/internal/service/registration"
)

func registerCmd() *cobra.Command {
	var events []string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a webhook at the platform and record its secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := buildDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			if len(events) == 0 {
				events = d.cfg.JW.Events
			}

			record, err := d.registrar.Register(cmd.Context(), events)
			if err != nil {
				var orphaned *registration.OrphanedRemoteError
				if errors.As(err, &orphaned) {
					return fmt.Errorf("webhook %s exists at the platform but its secret was not saved; delete it remotely and retry: %w",
						orphaned.WebhookID, err)
				}
				return err
			}

			fmt.Printf("Registered webhook %s for events %v\n", record.ID, events)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&events, "events", nil, "event tags to subscribe to (defaults to JW_EVENTS)")
	return cmd
}
