package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"odooctl/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "odooctl",
	Short: "Command-line client for the Odoo JSON-RPC gateway",
	Long: "odooctl talks to an Odoo server over its JSON-RPC gateway: generic\n" +
		"model execution, the usual ORM verbs, and database administration.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logging.Setup(rootFlags.logLevel, rootFlags.logFormat, os.Stderr)
	},
}

var rootFlags struct {
	configPath string
	url        string
	database   string
	username   string
	password   string
	uid        int
	timeout    time.Duration
	logLevel   string
	logFormat  string
	output     string
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to a connection profile (YAML or JSON)")
	pf.StringVar(&rootFlags.url, "url", "", "Odoo server URL (env: ODOO_URL)")
	pf.StringVar(&rootFlags.database, "database", "", "Database name (env: ODOO_DATABASE)")
	pf.StringVar(&rootFlags.username, "username", "", "Login username (env: ODOO_USERNAME)")
	pf.StringVar(&rootFlags.password, "password", "", "Login password (env: ODOO_PASSWORD)")
	pf.IntVar(&rootFlags.uid, "uid", 0, "Pre-resolved user id, skips authentication (env: ODOO_UID)")
	pf.DurationVar(&rootFlags.timeout, "timeout", 0, "HTTP timeout, e.g. 30s (0 = no timeout)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&rootFlags.output, "output", "json", "Output format: json or table")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(executeCmd)
	rootCmd.AddCommand(executeKwCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(searchReadCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
