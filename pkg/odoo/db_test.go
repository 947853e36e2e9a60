package odoo

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDatabaseCreate_Defaults(t *testing.T) {
	server, calls := newGateway(t, func(_, _ string, _ []any) (any, map[string]any) {
		return true, nil
	})
	client := newTestClient(t, server)

	err := client.DatabaseCreate(context.Background(), "master", CreateDatabaseParams{
		Name:     "staging",
		Demo:     true,
		Language: "en_US",
	})
	if err != nil {
		t.Fatalf("DatabaseCreate: %v", err)
	}

	call := (*calls)[0]
	if call.Service != "db" || call.Method != "create_database" {
		t.Fatalf("unexpected call: %+v", call)
	}
	want := []any{"master", "staging", true, "en_US", "admin", "admin", nil, nil}
	if diff := cmp.Diff(want, call.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestDatabaseRename_IncludesMasterPassword(t *testing.T) {
	server, calls := newGateway(t, func(_, _ string, _ []any) (any, map[string]any) {
		return true, nil
	})
	client := newTestClient(t, server)

	if err := client.DatabaseRename(context.Background(), "master", "old", "new"); err != nil {
		t.Fatalf("DatabaseRename: %v", err)
	}
	want := []any{"master", "old", "new"}
	if diff := cmp.Diff(want, (*calls)[0].Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestDatabaseList(t *testing.T) {
	server, calls := newGateway(t, func(_, _ string, _ []any) (any, map[string]any) {
		return []string{"production", "staging"}, nil
	})
	client := newTestClient(t, server)

	names, err := client.DatabaseList(context.Background())
	if err != nil {
		t.Fatalf("DatabaseList: %v", err)
	}
	if diff := cmp.Diff([]string{"production", "staging"}, names); diff != "" {
		t.Errorf("names mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]any{false}, (*calls)[0].Args); diff != "" {
		t.Errorf("args mismatch:\n%s", diff)
	}
}

func TestDatabaseExists(t *testing.T) {
	server, calls := newGateway(t, func(_, _ string, args []any) (any, map[string]any) {
		return args[1] == "production", nil
	})
	client := newTestClient(t, server)
	ctx := context.Background()

	exists, err := client.DatabaseExists(ctx, "master", "production")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("expected production to exist")
	}
	missing, err := client.DatabaseExists(ctx, "master", "nope")
	if err != nil {
		t.Fatal(err)
	}
	if missing {
		t.Error("expected nope to be missing")
	}
	if (*calls)[0].Method != "db_exist" {
		t.Errorf("method = %q", (*calls)[0].Method)
	}
}

func TestDatabaseListLanguages(t *testing.T) {
	server, _ := newGateway(t, func(_, method string, _ []any) (any, map[string]any) {
		if method != "list_lang" {
			return nil, map[string]any{"code": 404, "message": "wrong method"}
		}
		return [][]string{{"en_US", "English (US)"}, {"fr_FR", "French / Français"}}, nil
	})
	client := newTestClient(t, server)

	pairs, err := client.DatabaseListLanguages(context.Background())
	if err != nil {
		t.Fatalf("DatabaseListLanguages: %v", err)
	}
	want := [][]string{{"en_US", "English (US)"}, {"fr_FR", "French / Français"}}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Errorf("pairs mismatch:\n%s", diff)
	}
}

func TestServerVersion(t *testing.T) {
	server, _ := newGateway(t, func(_, _ string, _ []any) (any, map[string]any) {
		return "18.0", nil
	})
	client := newTestClient(t, server)

	v, err := client.ServerVersion(context.Background())
	if err != nil {
		t.Fatalf("ServerVersion: %v", err)
	}
	if v != "18.0" {
		t.Errorf("version = %q", v)
	}
}

func TestDatabaseDump(t *testing.T) {
	server, calls := newGateway(t, func(_, _ string, _ []any) (any, map[string]any) {
		return "UEsDBBQ=", nil
	})
	client := newTestClient(t, server)

	dump, err := client.DatabaseDump(context.Background(), "master", "production", "zip")
	if err != nil {
		t.Fatalf("DatabaseDump: %v", err)
	}
	if dump != "UEsDBBQ=" {
		t.Errorf("dump = %q", dump)
	}
	want := []any{"master", "production", "zip"}
	if diff := cmp.Diff(want, (*calls)[0].Args); diff != "" {
		t.Errorf("args mismatch:\n%s", diff)
	}
}

func TestDatabaseMigrate(t *testing.T) {
	server, calls := newGateway(t, func(_, _ string, _ []any) (any, map[string]any) {
		return true, nil
	})
	client := newTestClient(t, server)

	if err := client.DatabaseMigrate(context.Background(), "master", []string{"a", "b"}); err != nil {
		t.Fatalf("DatabaseMigrate: %v", err)
	}
	want := []any{"master", []any{"a", "b"}}
	if diff := cmp.Diff(want, (*calls)[0].Args); diff != "" {
		t.Errorf("args mismatch:\n%s", diff)
	}
}

func TestVersionAndAbout(t *testing.T) {
	server, _ := newGateway(t, func(_, method string, _ []any) (any, map[string]any) {
		switch method {
		case "version":
			return map[string]any{"server_version": "18.0", "protocol_version": 1}, nil
		case "about":
			return "See https://openerp.com", nil
		}
		return nil, map[string]any{"code": 404, "message": "no such method"}
	})
	client := newTestClient(t, server)
	ctx := context.Background()

	info, err := client.Version(ctx)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if info["server_version"] != "18.0" {
		t.Errorf("info = %v", info)
	}

	about, err := client.About(ctx, false)
	if err != nil {
		t.Fatalf("About: %v", err)
	}
	if about != "See https://openerp.com" {
		t.Errorf("about = %v", about)
	}
}
