package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vrtu/musharaka/internal/leads"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List contact form leads stored in postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}

		repo, err := leads.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer repo.Close()

		list, err := repo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list leads: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED\tNAME\tEMAIL\tPHONE\tINTERESTED IN")
		for _, l := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				l.CreatedAt.Format("2006-01-02 15:04"), l.Name, l.Email, l.Phone, l.InterestedIn)
		}
		return tw.Flush()
	},
}
