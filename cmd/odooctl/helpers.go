package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"odooctl/internal/config"
	"odooctl/internal/format"
	"odooctl/internal/logging"
	"odooctl/pkg/odoo"
)

// resolveProfile merges the connection settings: profile file, then ODOO_*
// environment variables, then flags. Later sources win.
func resolveProfile() (*config.Profile, error) {
	profile := &config.Profile{}

	path := rootFlags.configPath
	if path == "" {
		path = os.Getenv("ODOO_CONFIG")
	}
	if path != "" {
		fromFile, err := config.LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		profile.Merge(fromFile)
	}

	fromEnv, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	profile.Merge(fromEnv)
	profile.Merge(&config.Profile{
		URL:      rootFlags.url,
		Database: rootFlags.database,
		Username: rootFlags.username,
		Password: rootFlags.password,
		UID:      rootFlags.uid,
	})

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// newClient builds the Odoo client from the resolved profile.
func newClient() (*odoo.Client, error) {
	profile, err := resolveProfile()
	if err != nil {
		return nil, err
	}

	logger := logging.New("odoo")
	redacted := profile.Redacted()
	logger.Debug("connection profile resolved",
		"url", redacted.URL, "database", redacted.Database,
		"username", redacted.Username, "uid", redacted.UID)

	opts := []odoo.Option{odoo.WithLogger(logger)}
	if rootFlags.timeout > 0 {
		opts = append(opts, odoo.WithTimeout(rootFlags.timeout))
	}
	return odoo.New(profile.URL, profile.Database, odoo.Credentials{
		Username: profile.Username,
		Password: profile.Password,
		UID:      profile.UID,
	}, opts...)
}

func outputMode() (format.Mode, error) {
	return format.ParseMode(rootFlags.output)
}

// cmdResult is the envelope every command prints on success.
type cmdResult struct {
	Changed bool `json:"changed"`
	Data    any  `json:"data"`
}

// printResult writes the {changed, data} envelope as indented JSON.
func printResult(cmd *cobra.Command, changed bool, data any) error {
	out, err := json.MarshalIndent(cmdResult{Changed: changed, Data: data}, "", "  ")
	if err != nil {
		return fmt.Errorf("render result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// printRecords renders query results honoring --output; the JSON form keeps
// the {changed, data} envelope.
func printRecords(cmd *cobra.Command, records []map[string]any) error {
	mode, err := outputMode()
	if err != nil {
		return err
	}
	if mode == format.JSON {
		return printResult(cmd, false, records)
	}
	rendered, err := format.Records(mode, records)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// parseDomain decodes a --domain flag value. Empty means no domain.
func parseDomain(raw string) (odoo.Domain, error) {
	if raw == "" {
		return nil, nil
	}
	var domain odoo.Domain
	if err := json.Unmarshal([]byte(raw), &domain); err != nil {
		return nil, fmt.Errorf("invalid --domain, want a JSON array like [[\"name\",\"=\",\"Test\"]]: %w", err)
	}
	return domain, nil
}

// parseIDs decodes a comma-separated id list, e.g. "1,2,3".
func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("no ids given")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", strings.TrimSpace(part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseJSONObject decodes a JSON object flag (e.g. --values, --kwargs).
func parseJSONObject(flag, raw string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("invalid --%s, want a JSON object: %w", flag, err)
	}
	return obj, nil
}

// parseJSONArray decodes a JSON array flag (e.g. --args).
func parseJSONArray(flag, raw string) ([]any, error) {
	if raw == "" {
		return nil, nil
	}
	var arr []any
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return nil, fmt.Errorf("invalid --%s, want a JSON array: %w", flag, err)
	}
	return arr, nil
}

// parseValues decodes a --values flag that may be a single object or, for
// batch creation, an array of objects.
func parseValues(raw string) (any, error) {
	if raw == "" {
		return nil, fmt.Errorf("--values is required")
	}
	var values any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("invalid --values, want a JSON object or array of objects: %w", err)
	}
	switch values.(type) {
	case map[string]any, []any:
		return values, nil
	default:
		return nil, fmt.Errorf("invalid --values, want a JSON object or array of objects")
	}
}

// searchOptions assembles the pagination options of search and search-read.
// The caller must register --offset, --limit and --order.
func searchOptions(cmd *cobra.Command, offset, limit int, order string) []odoo.QueryOption {
	opts := []odoo.QueryOption{odoo.WithOffset(offset)}
	if cmd.Flags().Changed("limit") {
		opts = append(opts, odoo.WithLimit(limit))
	}
	if cmd.Flags().Changed("order") {
		opts = append(opts, odoo.WithOrder(order))
	}
	return opts
}

// fieldOptions assembles the field selection options of search-read and read.
// The caller must register --fields and --load.
func fieldOptions(cmd *cobra.Command, fields, load string) []odoo.QueryOption {
	var opts []odoo.QueryOption
	if cmd.Flags().Changed("fields") && fields != "" {
		opts = append(opts, odoo.WithFields(splitFields(fields)...))
	}
	if cmd.Flags().Changed("load") {
		// "--load=false" asks for the explicit boolean false the gateway
		// understands as "skip display_name computation".
		if load == "false" || load == "" {
			opts = append(opts, odoo.WithLoad(""))
		} else {
			opts = append(opts, odoo.WithLoad(load))
		}
	}
	return opts
}

func splitFields(raw string) []string {
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if f := strings.TrimSpace(part); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
