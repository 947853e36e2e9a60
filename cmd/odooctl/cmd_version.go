package main

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the Odoo server version information",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	info, err := client.Version(cmd.Context())
	if err != nil {
		return err
	}
	return printResult(cmd, false, info)
}
