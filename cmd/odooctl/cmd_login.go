package main

import (
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and print the resolved user id",
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	uid, err := client.Login(cmd.Context())
	if err != nil {
		return err
	}
	return printResult(cmd, false, map[string]any{"uid": uid})
}
