// Package config resolves the connection profile for an Odoo gateway from a
// YAML/JSON file, environment variables and command-line flags, in ascending
// order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile holds the connection settings for one server/database pair.
type Profile struct {
	URL      string `yaml:"url" json:"url"`
	Database string `yaml:"database" json:"database"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	UID      int    `yaml:"uid" json:"uid"`
}

// LoadFromPath reads a profile file (YAML or JSON). Format is detected by
// extension (.yaml/.yml/.json) or, failing that, by content.
func LoadFromPath(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses a profile from bytes. ext is the file extension for a format
// hint; empty = detect from content.
func Load(data []byte, ext string) (*Profile, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}

	var p Profile
	if ext == ".json" {
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse profile json: %w", err)
		}
		return &p, nil
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile yaml: %w", err)
	}
	return &p, nil
}

// FromEnv builds a profile from ODOO_* environment variables. Unset
// variables leave their fields zero; a set but unparsable ODOO_UID is an
// error rather than a silent fallthrough to username auth.
func FromEnv() (*Profile, error) {
	p := &Profile{
		URL:      os.Getenv("ODOO_URL"),
		Database: os.Getenv("ODOO_DATABASE"),
		Username: os.Getenv("ODOO_USERNAME"),
		Password: os.Getenv("ODOO_PASSWORD"),
	}
	if raw := os.Getenv("ODOO_UID"); raw != "" {
		uid, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("ODOO_UID %q is not an integer", raw)
		}
		p.UID = uid
	}
	return p, nil
}

// Merge overlays the non-zero fields of other onto p and returns p.
func (p *Profile) Merge(other *Profile) *Profile {
	if other == nil {
		return p
	}
	if other.URL != "" {
		p.URL = other.URL
	}
	if other.Database != "" {
		p.Database = other.Database
	}
	if other.Username != "" {
		p.Username = other.Username
	}
	if other.Password != "" {
		p.Password = other.Password
	}
	if other.UID != 0 {
		p.UID = other.UID
	}
	return p
}

// Validate checks the profile can construct a client: url, database and one
// of uid/username are required.
func (p *Profile) Validate() error {
	if p.URL == "" {
		return fmt.Errorf("no server URL configured (flag --url, env ODOO_URL, or profile file)")
	}
	if p.Database == "" {
		return fmt.Errorf("no database configured (flag --database, env ODOO_DATABASE, or profile file)")
	}
	if p.UID == 0 && p.Username == "" {
		return fmt.Errorf("no identity configured: set a username or a uid")
	}
	return nil
}

// Redacted returns a copy with the password masked, safe for logging.
func (p Profile) Redacted() Profile {
	if p.Password != "" {
		p.Password = "********"
	}
	return p
}
