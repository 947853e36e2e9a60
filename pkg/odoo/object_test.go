package odoo

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExecute_InlinesArgs(t *testing.T) {
	server, calls := newGateway(t, authenticating(7, func(_, _ string, _ []any) (any, map[string]any) {
		return true, nil
	}))
	client := newTestClient(t, server)

	if _, err := client.Execute(context.Background(), "res.partner", "toggle_active", "a", 2, true); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	last := (*calls)[len(*calls)-1]
	if last.Service != "object" || last.Method != "execute" {
		t.Fatalf("unexpected call: %+v", last)
	}
	want := []any{"testdb", float64(7), "secret", "res.partner", "toggle_active", "a", float64(2), true}
	if diff := cmp.Diff(want, last.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteKw_NestsArgs(t *testing.T) {
	server, calls := newGateway(t, authenticating(7, func(_, _ string, _ []any) (any, map[string]any) {
		return true, nil
	}))
	client := newTestClient(t, server)

	_, err := client.ExecuteKw(context.Background(), "res.partner", "search",
		[]any{"a", 2}, map[string]any{"limit": 5})
	if err != nil {
		t.Fatalf("ExecuteKw: %v", err)
	}

	last := (*calls)[len(*calls)-1]
	if last.Service != "object" || last.Method != "execute_kw" {
		t.Fatalf("unexpected call: %+v", last)
	}
	want := []any{
		"testdb", float64(7), "secret", "res.partner", "search",
		[]any{"a", float64(2)},
		map[string]any{"limit": float64(5)},
	}
	if diff := cmp.Diff(want, last.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteKw_NilArgsAndKwargs(t *testing.T) {
	server, calls := newGateway(t, authenticating(7, func(_, _ string, _ []any) (any, map[string]any) {
		return true, nil
	}))
	client := newTestClient(t, server)

	if _, err := client.ExecuteKw(context.Background(), "res.partner", "m", nil, nil); err != nil {
		t.Fatalf("ExecuteKw: %v", err)
	}

	last := (*calls)[len(*calls)-1]
	if diff := cmp.Diff([]any{}, last.Args[5]); diff != "" {
		t.Errorf("nil args not sent as empty list:\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{}, last.Args[6]); diff != "" {
		t.Errorf("nil kwargs not sent as empty mapping:\n%s", diff)
	}
}

func TestEnsureAuthenticated_AtMostOnce(t *testing.T) {
	server, calls := newGateway(t, authenticating(7, func(_, _ string, _ []any) (any, map[string]any) {
		return true, nil
	}))
	client := newTestClient(t, server)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.ExecuteKw(ctx, "res.partner", "m", nil, nil); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	authCalls := 0
	for _, call := range *calls {
		if call.Service == "common" && call.Method == "authenticate" {
			authCalls++
		}
	}
	if authCalls != 1 {
		t.Errorf("authenticate called %d times, want 1", authCalls)
	}
	if client.UID() != 7 {
		t.Errorf("uid = %d, want 7", client.UID())
	}
}

func TestExecuteKw_PresuppliedUID(t *testing.T) {
	server, calls := newGateway(t, func(service, method string, _ []any) (any, map[string]any) {
		if service == "common" && method == "authenticate" {
			t.Error("authenticate must not be called when uid is supplied")
		}
		return true, nil
	})
	client, err := New(server.URL, "testdb", Credentials{UID: 9, Password: "secret"},
		WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.ExecuteKw(context.Background(), "res.partner", "m", nil, nil); err != nil {
		t.Fatalf("ExecuteKw: %v", err)
	}
	if got := (*calls)[0].Args[1]; got != float64(9) {
		t.Errorf("uid in args = %v, want 9", got)
	}
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	// Odoo answers false, not an error, for bad credentials.
	server, _ := newGateway(t, func(_, _ string, _ []any) (any, map[string]any) {
		return false, nil
	})
	client := newTestClient(t, server)

	_, err := client.ExecuteKw(context.Background(), "res.partner", "m", nil, nil)
	if !IsAuthenticationError(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if client.UID() != 0 {
		t.Errorf("uid must stay unresolved, got %d", client.UID())
	}
}

func TestAuthenticate_RPCErrorWrapped(t *testing.T) {
	server, _ := newGateway(t, func(_, _ string, _ []any) (any, map[string]any) {
		return nil, map[string]any{"code": 100, "message": "Access Denied"}
	})
	client := newTestClient(t, server)

	_, err := client.ExecuteKw(context.Background(), "res.partner", "m", nil, nil)
	if !IsAuthenticationError(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	// The RPC cause stays reachable through the wrap.
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Code != 100 {
		t.Errorf("expected wrapped RPC cause with code 100, got %v", err)
	}
}

func TestAuthenticate_ConnectionErrorWrapped(t *testing.T) {
	server, _ := newGateway(t, nil)
	url := server.URL
	server.Close()

	client, err := New(url, "testdb", Credentials{Username: "admin", Password: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = client.ExecuteKw(context.Background(), "res.partner", "m", nil, nil)
	if !IsAuthenticationError(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Errorf("expected wrapped connection cause, got %v", err)
	}
}

func TestLogin_ReturnsCachedUID(t *testing.T) {
	server, calls := newGateway(t, authenticating(7, func(_, _ string, _ []any) (any, map[string]any) {
		return true, nil
	}))
	client := newTestClient(t, server)

	ctx := context.Background()
	uid, err := client.Login(ctx)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if uid != 7 {
		t.Errorf("uid = %d, want 7", uid)
	}
	if _, err := client.Login(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(*calls); n != 1 {
		t.Errorf("expected a single authenticate round trip, got %d calls", n)
	}
}
