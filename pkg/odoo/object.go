package odoo

import (
	"context"
	"net/http"
)

// Execute calls a model method via object.execute. The extra positional args
// are inlined directly into the outer argument list:
//
//	[database, uid, password, model, method, arg1, arg2, ...]
//
// This differs from ExecuteKw, which nests its args as a single list. The two
// remote signatures are distinct and must not be confused.
func (c *Client) Execute(ctx context.Context, model, method string, args ...any) (any, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}
	outer := append([]any{c.database, c.uid, c.password, model, method}, args...)
	var result any
	if err := c.callInto(ctx, http.MethodPost, "object", "execute", outer, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ExecuteKw calls a model method via object.execute_kw, passing positional
// args as a nested list and keyword args as a mapping:
//
//	[database, uid, password, model, method, [args...], {kwargs...}]
//
// Nil args and kwargs are sent as an empty list and mapping.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	var result any
	if err := c.executeKw(ctx, model, method, args, kwargs, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// executeKw is ExecuteKw with a typed destination, shared by the ORM layer.
func (c *Client) executeKw(ctx context.Context, model, method string, args []any, kwargs map[string]any, dst any) error {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return err
	}
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	outer := []any{c.database, c.uid, c.password, model, method, args, kwargs}
	return c.callInto(ctx, http.MethodPost, "object", "execute_kw", outer, dst)
}
