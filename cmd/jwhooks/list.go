package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhook registrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := buildDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			if remote {
				webhooks, err := d.client.Webhooks.List(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintln(w, "ID\tNAME\tURL\tEVENTS")
				for _, wh := range webhooks {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						wh.ID, wh.Metadata.Name, wh.Metadata.WebhookURL, strings.Join(wh.Metadata.Events, ","))
				}
				return nil
			}

			records, err := d.hooks.List(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(w, "ID\tCREATED")
			for _, record := range records {
				fmt.Fprintf(w, "%s\t%s\n", record.ID, record.Created.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "list webhooks at the platform instead of local records")
	return cmd
}
