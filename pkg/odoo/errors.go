package odoo

import (
	"errors"
	"fmt"
)

// ConnectionError indicates the gateway could not be reached, answered with
// a non-success HTTP status, or returned a body that is not a JSON-RPC
// response. Callers should prefer the predicate functions (IsConnectionError,
// IsAuthenticationError, IsRPCError) over asserting on the types directly.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("odoo: could not connect to the server at %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("odoo: could not connect to the server at %s", e.Endpoint)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// AuthenticationError indicates the user id could not be resolved during the
// authentication handshake. It wraps the underlying connection or RPC error
// encountered while calling common.authenticate, distinguishing "could not
// establish identity" from a later business-call failure.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("odoo: authentication failed: %v", e.Err)
	}
	return "odoo: authentication failed, please check your credentials"
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// RPCError is a well-formed JSON-RPC error response from the server. Code,
// Message and Data are copied verbatim from the error object; when the server
// omits them, Code defaults to -1 and Message to "Unknown error".
type RPCError struct {
	Code    int
	Message string
	Data    map[string]any
}

func (e *RPCError) Error() string {
	msg := fmt.Sprintf("odoo: JSON-RPC error (code %d): %s", e.Code, e.Message)
	if m, ok := e.Data["message"].(string); ok && m != "" {
		msg += ": " + m
	}
	return msg
}

// Debug returns the server-side debug payload, if the error carried one.
func (e *RPCError) Debug() string {
	d, _ := e.Data["debug"].(string)
	return d
}

// IsConnectionError reports whether err is, or wraps, a *ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsAuthenticationError reports whether err is, or wraps, an *AuthenticationError.
func IsAuthenticationError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsRPCError reports whether err is, or wraps, an *RPCError.
func IsRPCError(err error) bool {
	var rpcErr *RPCError
	return errors.As(err, &rpcErr)
}

// HasErrorCode reports whether err is an RPC error whose server code matches.
func HasErrorCode(err error, code int) bool {
	var rpcErr *RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == code
}
