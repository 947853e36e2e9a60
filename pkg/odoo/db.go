package odoo

import (
	"context"
	"net/http"
)

// The db service administers the database lifecycle. Its methods never
// require authentication; they are keyed on a per-call master password
// instead of the session credentials.

// CreateDatabaseParams describes a database to create. AdminLogin and
// AdminPassword default to "admin"; CountryCode and Phone are optional and
// forwarded as JSON null when empty.
type CreateDatabaseParams struct {
	Name          string
	Demo          bool
	Language      string
	AdminLogin    string
	AdminPassword string
	CountryCode   string
	Phone         string
}

// DatabaseCreate creates a new database, optionally loading demo data.
func (c *Client) DatabaseCreate(ctx context.Context, masterPassword string, p CreateDatabaseParams) error {
	if p.AdminLogin == "" {
		p.AdminLogin = "admin"
	}
	if p.AdminPassword == "" {
		p.AdminPassword = "admin"
	}
	args := []any{
		masterPassword, p.Name, p.Demo, p.Language,
		p.AdminPassword, p.AdminLogin,
		optionalString(p.CountryCode), optionalString(p.Phone),
	}
	return c.callInto(ctx, http.MethodPost, "db", "create_database", args, nil)
}

// DatabaseDuplicate copies an existing database under a new name.
func (c *Client) DatabaseDuplicate(ctx context.Context, masterPassword, from, to string, neutralize bool) error {
	args := []any{masterPassword, from, to, neutralize}
	return c.callInto(ctx, http.MethodPost, "db", "duplicate_database", args, nil)
}

// DatabaseDrop deletes a database.
func (c *Client) DatabaseDrop(ctx context.Context, masterPassword, name string) error {
	return c.callInto(ctx, http.MethodPost, "db", "drop", []any{masterPassword, name}, nil)
}

// DatabaseDump exports a database and returns the dump as a base64 string.
// format is "zip" or "pgdump".
func (c *Client) DatabaseDump(ctx context.Context, masterPassword, name, format string) (string, error) {
	var dump string
	args := []any{masterPassword, name, format}
	if err := c.callInto(ctx, http.MethodGet, "db", "dump", args, &dump); err != nil {
		return "", err
	}
	return dump, nil
}

// DatabaseRestore loads a base64-encoded dump into a new database. With copy
// the restored database is neutralized as a copy rather than a move.
func (c *Client) DatabaseRestore(ctx context.Context, masterPassword, name, data string, copy bool) error {
	args := []any{masterPassword, name, data, copy}
	return c.callInto(ctx, http.MethodPost, "db", "restore", args, nil)
}

// DatabaseRename renames a database.
func (c *Client) DatabaseRename(ctx context.Context, masterPassword, from, to string) error {
	return c.callInto(ctx, http.MethodPost, "db", "rename", []any{masterPassword, from, to}, nil)
}

// DatabaseMigrate upgrades the base module on each named database.
func (c *Client) DatabaseMigrate(ctx context.Context, masterPassword string, databases []string) error {
	return c.callInto(ctx, http.MethodPost, "db", "migrate_databases", []any{masterPassword, databases}, nil)
}

// DatabaseExists reports whether a database of that name exists.
func (c *Client) DatabaseExists(ctx context.Context, masterPassword, name string) (bool, error) {
	var exists bool
	if err := c.callInto(ctx, http.MethodPost, "db", "db_exist", []any{masterPassword, name}, &exists); err != nil {
		return false, err
	}
	return exists, nil
}

// DatabaseList returns the names of the databases the server exposes.
func (c *Client) DatabaseList(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.callInto(ctx, http.MethodPost, "db", "list", []any{false}, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// DatabaseListLanguages returns the installable languages as [code, name] pairs.
func (c *Client) DatabaseListLanguages(ctx context.Context) ([][]string, error) {
	var pairs [][]string
	if err := c.callInto(ctx, http.MethodPost, "db", "list_lang", []any{}, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

// DatabaseListCountries returns the known countries as [code, name] pairs.
func (c *Client) DatabaseListCountries(ctx context.Context, masterPassword string) ([][]string, error) {
	var pairs [][]string
	if err := c.callInto(ctx, http.MethodPost, "db", "list_countries", []any{masterPassword}, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

// ServerVersion returns the server version string (e.g. "18.0", "saas-16.3").
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	var v string
	if err := c.callInto(ctx, http.MethodPost, "db", "server_version", []any{}, &v); err != nil {
		return "", err
	}
	return v, nil
}

// ChangeAdminPassword replaces the server's master password.
func (c *Client) ChangeAdminPassword(ctx context.Context, masterPassword, newPassword string) error {
	return c.callInto(ctx, http.MethodPost, "db", "change_admin_password", []any{masterPassword, newPassword}, nil)
}

// optionalString forwards an empty string as JSON null.
func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
