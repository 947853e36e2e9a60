package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"odooctl/pkg/odoo"
)

// newFakeGateway serves common.authenticate plus a per-method result table
// keyed on "service.method".
func newFakeGateway(t *testing.T, results map[string]any) (*httptest.Server, *[][]any) {
	t.Helper()
	argLog := &[][]any{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Params struct {
				Service string `json:"service"`
				Method  string `json:"method"`
				Args    []any  `json:"args"`
			} `json:"params"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		*argLog = append(*argLog, req.Params.Args)

		key := req.Params.Service + "." + req.Params.Method
		if key == "common.authenticate" {
			json.NewEncoder(w).Encode(map[string]any{"result": 7})
			return
		}
		result, ok := results[key]
		if !ok {
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 404, "message": "no handler for " + key},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"result": result})
	}))
	t.Cleanup(server.Close)
	return server, argLog
}

func newTestServer(t *testing.T, results map[string]any) (*Server, *[][]any) {
	t.Helper()
	gateway, argLog := newFakeGateway(t, results)
	client, err := odoo.New(gateway.URL, "testdb",
		odoo.Credentials{Username: "admin", Password: "secret"},
		odoo.WithHTTPClient(gateway.Client()))
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(client, "test"), argLog
}

func TestHandleVersion(t *testing.T) {
	s, _ := newTestServer(t, map[string]any{
		"common.version": map[string]any{"server_version": "18.0"},
	})
	_, out, err := s.handleVersion(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("handleVersion: %v", err)
	}
	if out.Version["server_version"] != "18.0" {
		t.Errorf("version = %v", out.Version)
	}
}

func TestHandleSearchRead(t *testing.T) {
	s, argLog := newTestServer(t, map[string]any{
		"object.execute_kw": []map[string]any{{"id": 1, "name": "Test"}},
	})
	_, out, err := s.handleSearchRead(context.Background(), nil, searchReadInput{
		Model:      "res.partner",
		DomainJSON: `[["name","=","Test"]]`,
		Fields:     []string{"name"},
		Limit:      5,
	})
	if err != nil {
		t.Fatalf("handleSearchRead: %v", err)
	}
	if out.Count != 1 || out.Records[0]["name"] != "Test" {
		t.Errorf("output = %+v", out)
	}

	// authenticate then execute_kw
	last := (*argLog)[len(*argLog)-1]
	kwargs := last[6].(map[string]any)
	if kwargs["limit"] != float64(5) || kwargs["offset"] != float64(0) {
		t.Errorf("kwargs = %v", kwargs)
	}
	if _, ok := kwargs["domain"]; !ok {
		t.Errorf("domain missing from kwargs: %v", kwargs)
	}
}

func TestHandleSearchRead_BadInput(t *testing.T) {
	s, _ := newTestServer(t, nil)
	if _, _, err := s.handleSearchRead(context.Background(), nil, searchReadInput{}); err == nil {
		t.Error("expected error for missing model")
	}
	_, _, err := s.handleSearchRead(context.Background(), nil, searchReadInput{
		Model:      "res.partner",
		DomainJSON: "not json",
	})
	if err == nil || !strings.Contains(err.Error(), "domain_json") {
		t.Errorf("expected domain_json error, got %v", err)
	}
}

func TestHandleCreateWriteUnlink(t *testing.T) {
	s, argLog := newTestServer(t, map[string]any{
		"object.execute_kw": true,
	})
	ctx := context.Background()

	if _, _, err := s.handleCreate(ctx, nil, createInput{
		Model: "res.partner", ValuesJSON: `{"name":"A"}`,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, out, err := s.handleWrite(ctx, nil, writeInput{
		Model: "res.partner", IDs: []int64{5}, ValuesJSON: `{"name":"B"}`,
	}); err != nil || !out.Updated {
		t.Fatalf("write: %v %+v", err, out)
	}
	if _, out, err := s.handleUnlink(ctx, nil, unlinkInput{
		Model: "res.partner", IDs: []int64{5},
	}); err != nil || !out.Deleted {
		t.Fatalf("unlink: %v %+v", err, out)
	}

	last := (*argLog)[len(*argLog)-1]
	if last[4] != "unlink" {
		t.Errorf("last method = %v", last[4])
	}

	if _, _, err := s.handleWrite(ctx, nil, writeInput{Model: "res.partner"}); err == nil {
		t.Error("expected error for write without ids")
	}
	if _, _, err := s.handleCreate(ctx, nil, createInput{Model: "x", ValuesJSON: "nope"}); err == nil {
		t.Error("expected error for invalid values_json")
	}
}

func TestHandleExecuteKw(t *testing.T) {
	s, argLog := newTestServer(t, map[string]any{
		"object.execute_kw": []any{[]any{1, "Test"}},
	})
	_, out, err := s.handleExecuteKw(context.Background(), nil, executeKwInput{
		Model:      "res.partner",
		Method:     "name_search",
		ArgsJSON:   `["Test"]`,
		KwargsJSON: `{"limit": 1}`,
	})
	if err != nil {
		t.Fatalf("handleExecuteKw: %v", err)
	}
	if out.Result == nil {
		t.Error("expected result")
	}
	last := (*argLog)[len(*argLog)-1]
	if last[4] != "name_search" {
		t.Errorf("method = %v", last[4])
	}
}

func TestWatchParent_CancelsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	WatchParent(ctx, 10*time.Millisecond, cancel)
	cancel()
	// The watcher goroutine must exit promptly after cancellation; nothing
	// to assert beyond not hanging.
	time.Sleep(30 * time.Millisecond)
}
