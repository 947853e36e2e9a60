package odoo

import (
	"context"
	"errors"
	"net/http"
)

// Version returns the gateway's version block (server_version,
// server_serie, protocol version and friends).
func (c *Client) Version(ctx context.Context) (map[string]any, error) {
	var info map[string]any
	if err := c.callInto(ctx, http.MethodGet, "common", "version", nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// About returns the server's about string; with extended it also carries the
// version number.
func (c *Client) About(ctx context.Context, extended bool) (any, error) {
	var about any
	if err := c.callInto(ctx, http.MethodGet, "common", "about", []any{extended}, &about); err != nil {
		return nil, err
	}
	return about, nil
}

// CommonLogin is the session-free common.login call. It does not touch the
// client's own credentials or cached uid; the server returns the user id, or
// false when the credentials are rejected.
func (c *Client) CommonLogin(ctx context.Context, db, login, password string) (any, error) {
	return c.sessionFree(ctx, "login", []any{db, login, password})
}

// CommonAuthenticate is the session-free common.authenticate call.
// userAgentEnv may be nil and is forwarded as JSON null.
func (c *Client) CommonAuthenticate(ctx context.Context, db, login, password string, userAgentEnv map[string]any) (any, error) {
	return c.sessionFree(ctx, "authenticate", []any{db, login, password, userAgentEnv})
}

func (c *Client) sessionFree(ctx context.Context, method string, args []any) (any, error) {
	var result any
	if err := c.callInto(ctx, http.MethodGet, "common", method, args, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Login resolves the session uid, authenticating if necessary, and returns it.
func (c *Client) Login(ctx context.Context) (int, error) {
	if c.uid != 0 {
		return c.uid, nil
	}
	return c.Authenticate(ctx)
}

// Authenticate resolves the session uid via common.authenticate using the
// session credentials, caches it and returns it. A server answer that is not
// a user id (Odoo returns false for bad credentials) becomes an
// *AuthenticationError.
func (c *Client) Authenticate(ctx context.Context) (int, error) {
	result, err := c.CommonAuthenticate(ctx, c.database, c.username, c.password, nil)
	if err != nil {
		return 0, err
	}
	uid, ok := asUserID(result)
	if !ok {
		return 0, &AuthenticationError{}
	}
	c.uid = uid
	c.logger.DebugContext(ctx, "authenticated",
		"database", c.database, "username", c.username, "uid", uid)
	return uid, nil
}

// ensureAuthenticated is the precondition for every session-bound call. It
// is a no-op once a uid is held: the uid resolves at most once per client
// lifetime and is never re-validated or unset afterwards. Connection and RPC
// failures during the handshake are re-wrapped as *AuthenticationError.
func (c *Client) ensureAuthenticated(ctx context.Context) error {
	if c.uid != 0 {
		return nil
	}
	if _, err := c.Authenticate(ctx); err != nil {
		var authErr *AuthenticationError
		if errors.As(err, &authErr) {
			return err
		}
		return &AuthenticationError{Err: err}
	}
	return nil
}

// asUserID interprets an authenticate result as a user id. JSON numbers
// decode as float64.
func asUserID(result any) (int, bool) {
	switch v := result.(type) {
	case float64:
		if v <= 0 {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
