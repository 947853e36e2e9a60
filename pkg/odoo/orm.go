package odoo

import (
	"context"
	"fmt"
	"strconv"
)

// Domain is a search filter expression understood by the remote query
// engine, e.g. Domain{[]any{"name", "=", "Test"}}. The client treats it as
// opaque structured data.
type Domain []any

// QueryOption tunes the ORM verbs. Each verb honors only the options its
// remote method accepts: offset/limit/order apply to Search and SearchRead,
// fields to SearchRead and Read, load to SearchRead and Read.
type QueryOption func(*queryOptions)

type queryOptions struct {
	offset  int
	limit   *int
	order   *string
	fields  []string
	load    string
	loadSet bool
}

// WithOffset skips the first n matching records.
func WithOffset(n int) QueryOption {
	return func(q *queryOptions) { q.offset = n }
}

// WithLimit caps the number of records returned.
func WithLimit(n int) QueryOption {
	return func(q *queryOptions) { l := n; q.limit = &l }
}

// WithOrder sets the sort order, e.g. "create_date desc".
func WithOrder(order string) QueryOption {
	return func(q *queryOptions) { o := order; q.order = &o }
}

// WithFields restricts which fields are read.
func WithFields(fields ...string) QueryOption {
	return func(q *queryOptions) { q.fields = fields }
}

// WithLoad sets the record loading mode. An empty mode is sent as an
// explicit boolean false (never null, never omitted), which skips
// display_name computation on the server.
func WithLoad(mode string) QueryOption {
	return func(q *queryOptions) {
		q.load = mode
		q.loadSet = true
	}
}

func applyQueryOptions(opts []QueryOption) queryOptions {
	var q queryOptions
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

func (q queryOptions) loadValue() any {
	if q.load == "" {
		return false
	}
	return q.load
}

// Search returns the ids of the records matching domain. The domain is the
// single positional argument; offset is always sent, limit and order only
// when supplied.
func (c *Client) Search(ctx context.Context, model string, domain Domain, opts ...QueryOption) ([]int64, error) {
	q := applyQueryOptions(opts)
	if domain == nil {
		domain = Domain{}
	}
	kwargs := map[string]any{"offset": q.offset}
	if q.limit != nil {
		kwargs["limit"] = *q.limit
	}
	if q.order != nil {
		kwargs["order"] = *q.order
	}
	var ids []int64
	if err := c.executeKw(ctx, model, "search", []any{domain}, kwargs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SearchRead searches and reads in one round trip. Everything travels as
// keyword arguments; a nil domain is omitted entirely, matching the remote
// match-all default.
func (c *Client) SearchRead(ctx context.Context, model string, domain Domain, opts ...QueryOption) ([]map[string]any, error) {
	q := applyQueryOptions(opts)
	kwargs := map[string]any{"offset": q.offset}
	if domain != nil {
		kwargs["domain"] = domain
	}
	if q.fields != nil {
		kwargs["fields"] = q.fields
	}
	if q.limit != nil {
		kwargs["limit"] = *q.limit
	}
	if q.order != nil {
		kwargs["order"] = *q.order
	}
	if q.loadSet {
		kwargs["load"] = q.loadValue()
	}
	var records []map[string]any
	if err := c.executeKw(ctx, model, "search_read", []any{}, kwargs, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create creates one or more records. values is a field mapping or a
// sequence of mappings; accordingly the server returns a single id or a list
// of ids — the branch is server-side, not taken here.
func (c *Client) Create(ctx context.Context, model string, values any) (any, error) {
	var result any
	if err := c.executeKw(ctx, model, "create", []any{values}, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Write updates the given records with the field values. ids may be a single
// integer id or a sequence of them.
func (c *Client) Write(ctx context.Context, model string, ids any, values map[string]any) (bool, error) {
	idList, err := NormalizeIDs(ids)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := c.executeKw(ctx, model, "write", []any{idList, values}, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Unlink deletes the given records. ids may be a single integer id or a
// sequence of them.
func (c *Client) Unlink(ctx context.Context, model string, ids any) (bool, error) {
	idList, err := NormalizeIDs(ids)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := c.executeKw(ctx, model, "unlink", []any{idList}, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Read returns the field values of the given records. fields and load fold
// into the keyword arguments only when supplied.
func (c *Client) Read(ctx context.Context, model string, ids any, opts ...QueryOption) ([]map[string]any, error) {
	idList, err := NormalizeIDs(ids)
	if err != nil {
		return nil, err
	}
	q := applyQueryOptions(opts)
	kwargs := map[string]any{}
	if q.fields != nil {
		kwargs["fields"] = q.fields
	}
	if q.loadSet {
		kwargs["load"] = q.loadValue()
	}
	var records []map[string]any
	if err := c.executeKw(ctx, model, "read", []any{idList}, kwargs, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// NormalizeIDs coerces a record id argument into a list of integer ids. A
// scalar is promoted to a one-element list; string elements must be decimal
// integers. The normalization happens once at this boundary and fails before
// any network access.
func NormalizeIDs(ids any) ([]int64, error) {
	switch v := ids.(type) {
	case nil:
		return nil, fmt.Errorf("odoo: ids must not be nil")
	case []int64:
		return v, nil
	case []int:
		out := make([]int64, len(v))
		for i, id := range v {
			out[i] = int64(id)
		}
		return out, nil
	case []any:
		out := make([]int64, len(v))
		for i, elem := range v {
			id, err := normalizeID(elem)
			if err != nil {
				return nil, err
			}
			out[i] = id
		}
		return out, nil
	default:
		id, err := normalizeID(ids)
		if err != nil {
			return nil, err
		}
		return []int64{id}, nil
	}
}

func normalizeID(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("odoo: invalid record id %q", n)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("odoo: invalid record id of type %T", v)
	}
}
