package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"odooctl/internal/format"
	"odooctl/pkg/odoo"
)

// Database administration. These talk to the db service, keyed on the
// server's master password rather than the session credentials.

var dbFlags struct {
	masterPassword string
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Administer databases on the server",
}

var dbCreateFlags struct {
	name          string
	demo          bool
	language      string
	adminLogin    string
	adminPassword string
	countryCode   string
	phone         string
}

var dbCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new database",
	RunE:  runDBCreate,
}

var dbDuplicateFlags struct {
	from       string
	to         string
	neutralize bool
}

var dbDuplicateCmd = &cobra.Command{
	Use:   "duplicate",
	Short: "Duplicate a database under a new name",
	RunE:  runDBDuplicate,
}

var dbDropFlags struct {
	name string
}

var dbDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete a database",
	RunE:  runDBDrop,
}

var dbDumpFlags struct {
	name   string
	format string
	out    string
}

var dbDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Export a database as a base64-encoded dump",
	RunE:  runDBDump,
}

var dbRestoreFlags struct {
	name string
	file string
	copy bool
}

var dbRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a base64-encoded dump into a new database",
	RunE:  runDBRestore,
}

var dbRenameFlags struct {
	from string
	to   string
}

var dbRenameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename a database",
	RunE:  runDBRename,
}

var dbMigrateFlags struct {
	databases []string
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade the base module on the named databases",
	RunE:  runDBMigrate,
}

var dbExistsFlags struct {
	name string
}

var dbExistsCmd = &cobra.Command{
	Use:   "exists",
	Short: "Check whether a database exists",
	RunE:  runDBExists,
}

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the databases the server exposes",
	RunE:  runDBList,
}

var dbListLangCmd = &cobra.Command{
	Use:   "list-lang",
	Short: "List the installable languages",
	RunE:  runDBListLang,
}

var dbListCountriesCmd = &cobra.Command{
	Use:   "list-countries",
	Short: "List the known countries",
	RunE:  runDBListCountries,
}

var dbServerVersionCmd = &cobra.Command{
	Use:   "server-version",
	Short: "Show the server version string",
	RunE:  runDBServerVersion,
}

var dbChangeAdminPasswordFlags struct {
	newPassword string
}

var dbChangeAdminPasswordCmd = &cobra.Command{
	Use:   "change-admin-password",
	Short: "Replace the server's master password",
	RunE:  runDBChangeAdminPassword,
}

func init() {
	dbCmd.PersistentFlags().StringVar(&dbFlags.masterPassword, "master-password", "",
		"Server master password (env: ODOO_MASTER_PASSWORD)")

	cf := dbCreateCmd.Flags()
	cf.StringVar(&dbCreateFlags.name, "name", "", "Name of the database to create (required)")
	cf.BoolVar(&dbCreateFlags.demo, "demo", false, "Load demo data")
	cf.StringVar(&dbCreateFlags.language, "language", "en_US", "Default language")
	cf.StringVar(&dbCreateFlags.adminLogin, "admin-login", "admin", "Login of the admin user")
	cf.StringVar(&dbCreateFlags.adminPassword, "admin-password", "admin", "Password of the admin user")
	cf.StringVar(&dbCreateFlags.countryCode, "country-code", "", "Country code for the main company")
	cf.StringVar(&dbCreateFlags.phone, "phone", "", "Phone number of the main company")
	_ = dbCreateCmd.MarkFlagRequired("name")

	df := dbDuplicateCmd.Flags()
	df.StringVar(&dbDuplicateFlags.from, "from", "", "Database to copy (required)")
	df.StringVar(&dbDuplicateFlags.to, "to", "", "Name of the copy (required)")
	df.BoolVar(&dbDuplicateFlags.neutralize, "neutralize", false, "Neutralize the copy (disable mails, crons)")
	_ = dbDuplicateCmd.MarkFlagRequired("from")
	_ = dbDuplicateCmd.MarkFlagRequired("to")

	dbDropCmd.Flags().StringVar(&dbDropFlags.name, "name", "", "Database to delete (required)")
	_ = dbDropCmd.MarkFlagRequired("name")

	duf := dbDumpCmd.Flags()
	duf.StringVar(&dbDumpFlags.name, "name", "", "Database to dump (required)")
	duf.StringVar(&dbDumpFlags.format, "format", "zip", "Dump format: zip or pgdump")
	duf.StringVar(&dbDumpFlags.out, "out", "", "Write the base64 dump to a file instead of stdout")
	_ = dbDumpCmd.MarkFlagRequired("name")

	rf := dbRestoreCmd.Flags()
	rf.StringVar(&dbRestoreFlags.name, "name", "", "Name of the restored database (required)")
	rf.StringVar(&dbRestoreFlags.file, "file", "", "File holding the base64 dump (required)")
	rf.BoolVar(&dbRestoreFlags.copy, "copy", true, "Restore as a neutralized copy rather than a move")
	_ = dbRestoreCmd.MarkFlagRequired("name")
	_ = dbRestoreCmd.MarkFlagRequired("file")

	rnf := dbRenameCmd.Flags()
	rnf.StringVar(&dbRenameFlags.from, "from", "", "Current database name (required)")
	rnf.StringVar(&dbRenameFlags.to, "to", "", "New database name (required)")
	_ = dbRenameCmd.MarkFlagRequired("from")
	_ = dbRenameCmd.MarkFlagRequired("to")

	dbMigrateCmd.Flags().StringSliceVar(&dbMigrateFlags.databases, "databases", nil,
		"Databases to migrate (required)")
	_ = dbMigrateCmd.MarkFlagRequired("databases")

	dbExistsCmd.Flags().StringVar(&dbExistsFlags.name, "name", "", "Database name to check (required)")
	_ = dbExistsCmd.MarkFlagRequired("name")

	dbChangeAdminPasswordCmd.Flags().StringVar(&dbChangeAdminPasswordFlags.newPassword,
		"new-password", "", "New master password (required)")
	_ = dbChangeAdminPasswordCmd.MarkFlagRequired("new-password")

	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbListLangCmd)
	dbCmd.AddCommand(dbListCountriesCmd)
	dbCmd.AddCommand(dbExistsCmd)
	dbCmd.AddCommand(dbCreateCmd)
	dbCmd.AddCommand(dbDuplicateCmd)
	dbCmd.AddCommand(dbDropCmd)
	dbCmd.AddCommand(dbDumpCmd)
	dbCmd.AddCommand(dbRestoreCmd)
	dbCmd.AddCommand(dbRenameCmd)
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbServerVersionCmd)
	dbCmd.AddCommand(dbChangeAdminPasswordCmd)
}

// masterPassword resolves the --master-password flag with its env fallback.
func masterPassword() (string, error) {
	if dbFlags.masterPassword != "" {
		return dbFlags.masterPassword, nil
	}
	if mp := os.Getenv("ODOO_MASTER_PASSWORD"); mp != "" {
		return mp, nil
	}
	return "", fmt.Errorf("master password required: set --master-password or ODOO_MASTER_PASSWORD")
}

func runDBCreate(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	err = client.DatabaseCreate(cmd.Context(), mp, odoo.CreateDatabaseParams{
		Name:          dbCreateFlags.name,
		Demo:          dbCreateFlags.demo,
		Language:      dbCreateFlags.language,
		AdminLogin:    dbCreateFlags.adminLogin,
		AdminPassword: dbCreateFlags.adminPassword,
		CountryCode:   dbCreateFlags.countryCode,
		Phone:         dbCreateFlags.phone,
	})
	if err != nil {
		return err
	}
	return printResult(cmd, true, map[string]any{"database": dbCreateFlags.name})
}

func runDBDuplicate(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	err = client.DatabaseDuplicate(cmd.Context(), mp,
		dbDuplicateFlags.from, dbDuplicateFlags.to, dbDuplicateFlags.neutralize)
	if err != nil {
		return err
	}
	return printResult(cmd, true, map[string]any{"database": dbDuplicateFlags.to})
}

func runDBDrop(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DatabaseDrop(cmd.Context(), mp, dbDropFlags.name); err != nil {
		return err
	}
	return printResult(cmd, true, map[string]any{"database": dbDropFlags.name})
}

func runDBDump(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	dump, err := client.DatabaseDump(cmd.Context(), mp, dbDumpFlags.name, dbDumpFlags.format)
	if err != nil {
		return err
	}
	if dbDumpFlags.out != "" {
		if err := os.WriteFile(dbDumpFlags.out, []byte(dump), 0o644); err != nil {
			return fmt.Errorf("write dump: %w", err)
		}
		return printResult(cmd, false, map[string]any{"file": dbDumpFlags.out})
	}
	fmt.Fprintln(cmd.OutOrStdout(), dump)
	return nil
}

func runDBRestore(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(dbRestoreFlags.file)
	if err != nil {
		return fmt.Errorf("read dump: %w", err)
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	err = client.DatabaseRestore(cmd.Context(), mp,
		dbRestoreFlags.name, string(data), dbRestoreFlags.copy)
	if err != nil {
		return err
	}
	return printResult(cmd, true, map[string]any{"database": dbRestoreFlags.name})
}

func runDBRename(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DatabaseRename(cmd.Context(), mp, dbRenameFlags.from, dbRenameFlags.to); err != nil {
		return err
	}
	return printResult(cmd, true, map[string]any{"database": dbRenameFlags.to})
}

func runDBMigrate(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DatabaseMigrate(cmd.Context(), mp, dbMigrateFlags.databases); err != nil {
		return err
	}
	return printResult(cmd, true, map[string]any{"databases": dbMigrateFlags.databases})
}

func runDBExists(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	exists, err := client.DatabaseExists(cmd.Context(), mp, dbExistsFlags.name)
	if err != nil {
		return err
	}
	return printResult(cmd, false, map[string]any{"exists": exists})
}

func runDBList(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	names, err := client.DatabaseList(cmd.Context())
	if err != nil {
		return err
	}
	mode, err := outputMode()
	if err != nil {
		return err
	}
	if mode == format.JSON {
		return printResult(cmd, false, names)
	}
	rendered, err := format.List(mode, "DATABASE", names)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

func runDBListLang(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	pairs, err := client.DatabaseListLanguages(cmd.Context())
	if err != nil {
		return err
	}
	return printPairs(cmd, []string{"CODE", "LANGUAGE"}, pairs)
}

func runDBListCountries(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	pairs, err := client.DatabaseListCountries(cmd.Context(), mp)
	if err != nil {
		return err
	}
	return printPairs(cmd, []string{"CODE", "COUNTRY"}, pairs)
}

func runDBServerVersion(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	v, err := client.ServerVersion(cmd.Context())
	if err != nil {
		return err
	}
	return printResult(cmd, false, map[string]any{"server_version": v})
}

func runDBChangeAdminPassword(cmd *cobra.Command, _ []string) error {
	mp, err := masterPassword()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	err = client.ChangeAdminPassword(cmd.Context(), mp, dbChangeAdminPasswordFlags.newPassword)
	if err != nil {
		return err
	}
	return printResult(cmd, true, map[string]any{"changed_admin_password": true})
}

// printPairs renders [code, name] tuples honoring --output.
func printPairs(cmd *cobra.Command, header []string, pairs [][]string) error {
	mode, err := outputMode()
	if err != nil {
		return err
	}
	if mode == format.JSON {
		return printResult(cmd, false, pairs)
	}
	rendered, err := format.Pairs(mode, header, pairs)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
