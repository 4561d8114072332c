package main

import "github.com/spf13/cobra"

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the profile store from the CLI",
	}
	cmd.AddCommand(querySQLCmd())
	cmd.AddCommand(querySearchCmd())
	return cmd
}
