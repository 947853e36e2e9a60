package odoo

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorStrings(t *testing.T) {
	connErr := &ConnectionError{Endpoint: "http://x/jsonrpc", Err: fmt.Errorf("dial tcp: refused")}
	want := "odoo: could not connect to the server at http://x/jsonrpc: dial tcp: refused"
	if connErr.Error() != want {
		t.Errorf("connection error: got %q, want %q", connErr.Error(), want)
	}

	bare := &AuthenticationError{}
	if bare.Error() != "odoo: authentication failed, please check your credentials" {
		t.Errorf("bare auth error: %q", bare.Error())
	}

	rpcErr := &RPCError{Code: 3, Message: "Oops"}
	if rpcErr.Error() != "odoo: JSON-RPC error (code 3): Oops" {
		t.Errorf("rpc error: %q", rpcErr.Error())
	}

	detailed := &RPCError{Code: 200, Message: "Odoo Server Error",
		Data: map[string]any{"message": "ValidationError: bad vat"}}
	if detailed.Error() != "odoo: JSON-RPC error (code 200): Odoo Server Error: ValidationError: bad vat" {
		t.Errorf("detailed rpc error: %q", detailed.Error())
	}
}

func TestPredicates(t *testing.T) {
	connErr := error(&ConnectionError{Endpoint: "http://x/jsonrpc"})
	rpcErr := error(&RPCError{Code: 3, Message: "Oops"})
	authErr := error(&AuthenticationError{Err: rpcErr})

	if !IsConnectionError(connErr) || IsConnectionError(rpcErr) {
		t.Error("IsConnectionError misclassified")
	}
	if !IsRPCError(rpcErr) || IsRPCError(connErr) {
		t.Error("IsRPCError misclassified")
	}
	if !IsAuthenticationError(authErr) || IsAuthenticationError(rpcErr) {
		t.Error("IsAuthenticationError misclassified")
	}
	if !HasErrorCode(rpcErr, 3) || HasErrorCode(rpcErr, 4) || HasErrorCode(connErr, 3) {
		t.Error("HasErrorCode misclassified")
	}
	// The wrapped cause stays visible through the auth error.
	if !HasErrorCode(authErr, 3) {
		t.Error("cause not reachable through AuthenticationError")
	}
}

func TestUnwrapChain(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	connErr := &ConnectionError{Endpoint: "http://x/jsonrpc", Err: cause}
	authErr := &AuthenticationError{Err: connErr}

	if !errors.Is(authErr, cause) {
		t.Error("errors.Is does not reach the root cause")
	}
	var unwrapped *ConnectionError
	if !errors.As(authErr, &unwrapped) || unwrapped.Endpoint != "http://x/jsonrpc" {
		t.Error("errors.As does not surface the connection cause")
	}
}
