package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	rpcEndpoint = "/jsonrpc"
	rpcVersion  = "2.0"

	// Calls are strictly synchronous and unpipelined, so a constant
	// request id is sufficient.
	rpcID = 1
)

// Credentials identify a user on one server/database pair. Either Username
// or UID must be set; Password may be empty for db-service-only use.
type Credentials struct {
	Username string
	Password string
	UID      int
}

// Client is a session against one Odoo server/database pair. It is not safe
// for concurrent use: the lazily resolved uid is an unsynchronized cached
// field, so concurrent first calls may authenticate more than once.
type Client struct {
	baseURL  string
	database string
	username string
	password string
	uid      int

	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// New creates a Client for the given gateway URL and database. It fails
// before any network access when baseURL or database is empty, or when the
// credentials carry neither a uid nor a username.
func New(baseURL, database string, creds Credentials, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("odoo: baseURL is required")
	}
	if database == "" {
		return nil, fmt.Errorf("odoo: database is required")
	}
	if creds.UID == 0 && creds.Username == "" {
		return nil, fmt.Errorf("odoo: either a uid or a username is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		database:   database,
		username:   creds.Username,
		password:   creds.Password,
		uid:        creds.UID,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging. Credentials are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a timeout on the HTTP client. Without one, a stuck call
// blocks until the transport gives up.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		cfg.timeout = d
		return nil
	}
}

// Database returns the database this client is bound to.
func (c *Client) Database() string { return c.database }

// UID returns the resolved user id, or 0 if authentication has not happened yet.
func (c *Client) UID() int { return c.uid }

func (c *Client) endpoint() string { return c.baseURL + rpcEndpoint }

// rpcRequest is the JSON-RPC 2.0 request envelope the gateway expects. The
// envelope is identical regardless of the HTTP method used to send it.
type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	ID      int       `json:"id"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

// rpcErrorBody decodes the error object of a failure response. Pointer
// fields distinguish omitted from zero-valued.
type rpcErrorBody struct {
	Code    *int           `json:"code"`
	Message *string        `json:"message"`
	Data    map[string]any `json:"data"`
}

// Call issues a raw JSON-RPC call against a service and returns the decoded
// result value verbatim. No client-side schema is enforced on the result.
func (c *Client) Call(ctx context.Context, service, method string, args []any) (any, error) {
	raw, err := c.call(ctx, http.MethodPost, service, method, args)
	if err != nil {
		return nil, err
	}
	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ConnectionError{Endpoint: c.endpoint(), Err: fmt.Errorf("decode result: %w", err)}
	}
	return result, nil
}

// callInto issues a call and decodes the result into dst (ignored when nil).
func (c *Client) callInto(ctx context.Context, httpMethod, service, method string, args []any, dst any) error {
	raw, err := c.call(ctx, httpMethod, service, method, args)
	if err != nil {
		return err
	}
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &ConnectionError{Endpoint: c.endpoint(), Err: fmt.Errorf("decode result: %w", err)}
	}
	return nil
}

// call builds the envelope, performs one blocking HTTP round trip and
// unpacks the response. Transport failures, non-success statuses and
// unparseable or malformed bodies all map to *ConnectionError; a well-formed
// error object maps to *RPCError. There are no retries.
func (c *Client) call(ctx context.Context, httpMethod, service, method string, args []any) (json.RawMessage, error) {
	endpoint := c.endpoint()
	if args == nil {
		args = []any{}
	}

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: rpcVersion,
		Method:  "call",
		ID:      rpcID,
		Params:  rpcParams{Service: service, Method: method, Args: sanitizeArgs(args)},
	})
	if err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "RPC request",
		"service", service, "method", method, "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "RPC response",
		"service", service, "method", method, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ConnectionError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Err: fmt.Errorf("read response: %w", err)}
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		// Deliberately folded into ConnectionError, matching the observed
		// gateway behavior rather than a protocol promise.
		return nil, &ConnectionError{Endpoint: endpoint, Err: fmt.Errorf("parse response: %w", err)}
	}

	if errRaw, ok := body["error"]; ok {
		rpcErr := &RPCError{Code: -1, Message: "Unknown error"}
		var decoded rpcErrorBody
		if json.Unmarshal(errRaw, &decoded) == nil {
			if decoded.Code != nil {
				rpcErr.Code = *decoded.Code
			}
			if decoded.Message != nil {
				rpcErr.Message = *decoded.Message
			}
			rpcErr.Data = decoded.Data
		}
		return nil, rpcErr
	}

	result, ok := body["result"]
	if !ok {
		return nil, &ConnectionError{
			Endpoint: endpoint,
			Err:      errors.New("response contains neither result nor error"),
		}
	}
	return result, nil
}

// sanitizeArgs replaces any value JSON cannot represent with its string
// rendering, so an odd value degrades the payload instead of failing the
// call. The replacement is per leaf: lists and maps are recursed into, never
// stringified wholesale, so the surrounding argument shape survives.
func sanitizeArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		out[i] = sanitizeValue(arg)
	}
	return out
}

func sanitizeValue(v any) any {
	if _, err := json.Marshal(v); err == nil {
		return v
	}
	switch val := v.(type) {
	case []any:
		return sanitizeArgs(val)
	case Domain:
		return Domain(sanitizeArgs(val))
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = sanitizeValue(elem)
		}
		return out
	default:
		return fmt.Sprint(v)
	}
}
