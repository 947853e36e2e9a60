// Package mcp exposes the Odoo client as MCP tools over stdio, so agent
// hosts can query and mutate records without shelling out per call.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"odooctl/internal/logging"
	"odooctl/pkg/odoo"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server around one Odoo client. Tool calls are
// handled sequentially by the host; the client's single-session model is
// fine here.
type Server struct {
	MCPServer *sdkmcp.Server

	client *odoo.Client
}

// NewServer creates an MCP server exposing the Odoo tools.
func NewServer(client *odoo.Client, version string) *Server {
	s := &Server{client: client}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "odooctl", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "odoo_version",
		Description: "Get the Odoo server version information.",
	}, s.handleVersion)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "odoo_search_read",
		Description: "Search a model and read matching records in one call. Returns record field mappings.",
	}, s.handleSearchRead)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "odoo_create",
		Description: "Create one or more records. values_json is a JSON object, or an array of objects for batch creation.",
	}, s.handleCreate)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "odoo_write",
		Description: "Update records by id with the given field values.",
	}, s.handleWrite)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "odoo_unlink",
		Description: "Delete records by id.",
	}, s.handleUnlink)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "odoo_execute_kw",
		Description: "Call an arbitrary model method with positional and keyword arguments. The escape hatch for everything without a dedicated tool.",
	}, s.handleExecuteKw)
}

// --- Tool input/output types ---

type versionOutput struct {
	Version map[string]any `json:"version"`
}

type searchReadInput struct {
	Model      string   `json:"model" jsonschema:"the Odoo model, e.g. res.partner"`
	DomainJSON string   `json:"domain_json,omitempty" jsonschema:"search domain as a JSON array, e.g. [[\"name\",\"=\",\"Test\"]]; omit to match all"`
	Fields     []string `json:"fields,omitempty" jsonschema:"field names to read; omit for all fields"`
	Offset     int      `json:"offset,omitempty" jsonschema:"number of records to skip"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of records"`
	Order      string   `json:"order,omitempty" jsonschema:"sort specification, e.g. create_date desc"`
}

type searchReadOutput struct {
	Records []map[string]any `json:"records"`
	Count   int              `json:"count"`
}

type createInput struct {
	Model      string `json:"model" jsonschema:"the Odoo model"`
	ValuesJSON string `json:"values_json" jsonschema:"field values as a JSON object, or an array of objects"`
}

type createOutput struct {
	Result any `json:"result" jsonschema:"the created id, or a list of ids for batch creation"`
}

type writeInput struct {
	Model      string  `json:"model" jsonschema:"the Odoo model"`
	IDs        []int64 `json:"ids" jsonschema:"record ids to update"`
	ValuesJSON string  `json:"values_json" jsonschema:"field values as a JSON object"`
}

type writeOutput struct {
	Updated bool `json:"updated"`
}

type unlinkInput struct {
	Model string  `json:"model" jsonschema:"the Odoo model"`
	IDs   []int64 `json:"ids" jsonschema:"record ids to delete"`
}

type unlinkOutput struct {
	Deleted bool `json:"deleted"`
}

type executeKwInput struct {
	Model      string `json:"model" jsonschema:"the Odoo model"`
	Method     string `json:"method" jsonschema:"the method to call, e.g. name_search"`
	ArgsJSON   string `json:"args_json,omitempty" jsonschema:"positional arguments as a JSON array"`
	KwargsJSON string `json:"kwargs_json,omitempty" jsonschema:"keyword arguments as a JSON object"`
}

type executeKwOutput struct {
	Result any `json:"result"`
}

// --- Tool handlers ---

func (s *Server) handleVersion(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, versionOutput, error) {
	info, err := s.client.Version(ctx)
	if err != nil {
		return nil, versionOutput{}, err
	}
	return nil, versionOutput{Version: info}, nil
}

func (s *Server) handleSearchRead(ctx context.Context, _ *sdkmcp.CallToolRequest, input searchReadInput) (*sdkmcp.CallToolResult, searchReadOutput, error) {
	if input.Model == "" {
		return nil, searchReadOutput{}, fmt.Errorf("model is required")
	}
	domain, err := parseDomain(input.DomainJSON)
	if err != nil {
		return nil, searchReadOutput{}, err
	}

	opts := []odoo.QueryOption{odoo.WithOffset(input.Offset)}
	if input.Fields != nil {
		opts = append(opts, odoo.WithFields(input.Fields...))
	}
	if input.Limit > 0 {
		opts = append(opts, odoo.WithLimit(input.Limit))
	}
	if input.Order != "" {
		opts = append(opts, odoo.WithOrder(input.Order))
	}

	records, err := s.client.SearchRead(ctx, input.Model, domain, opts...)
	if err != nil {
		return nil, searchReadOutput{}, err
	}
	logging.New("mcp").InfoContext(ctx, "search_read served",
		"model", input.Model, "count", len(records))
	return nil, searchReadOutput{Records: records, Count: len(records)}, nil
}

func (s *Server) handleCreate(ctx context.Context, _ *sdkmcp.CallToolRequest, input createInput) (*sdkmcp.CallToolResult, createOutput, error) {
	if input.Model == "" {
		return nil, createOutput{}, fmt.Errorf("model is required")
	}
	var values any
	if err := json.Unmarshal([]byte(input.ValuesJSON), &values); err != nil {
		return nil, createOutput{}, fmt.Errorf("values_json is not valid JSON: %w", err)
	}
	result, err := s.client.Create(ctx, input.Model, values)
	if err != nil {
		return nil, createOutput{}, err
	}
	return nil, createOutput{Result: result}, nil
}

func (s *Server) handleWrite(ctx context.Context, _ *sdkmcp.CallToolRequest, input writeInput) (*sdkmcp.CallToolResult, writeOutput, error) {
	if input.Model == "" || len(input.IDs) == 0 {
		return nil, writeOutput{}, fmt.Errorf("model and ids are required")
	}
	var values map[string]any
	if err := json.Unmarshal([]byte(input.ValuesJSON), &values); err != nil {
		return nil, writeOutput{}, fmt.Errorf("values_json is not a valid JSON object: %w", err)
	}
	ok, err := s.client.Write(ctx, input.Model, input.IDs, values)
	if err != nil {
		return nil, writeOutput{}, err
	}
	return nil, writeOutput{Updated: ok}, nil
}

func (s *Server) handleUnlink(ctx context.Context, _ *sdkmcp.CallToolRequest, input unlinkInput) (*sdkmcp.CallToolResult, unlinkOutput, error) {
	if input.Model == "" || len(input.IDs) == 0 {
		return nil, unlinkOutput{}, fmt.Errorf("model and ids are required")
	}
	ok, err := s.client.Unlink(ctx, input.Model, input.IDs)
	if err != nil {
		return nil, unlinkOutput{}, err
	}
	return nil, unlinkOutput{Deleted: ok}, nil
}

func (s *Server) handleExecuteKw(ctx context.Context, _ *sdkmcp.CallToolRequest, input executeKwInput) (*sdkmcp.CallToolResult, executeKwOutput, error) {
	if input.Model == "" || input.Method == "" {
		return nil, executeKwOutput{}, fmt.Errorf("model and method are required")
	}
	var args []any
	if input.ArgsJSON != "" {
		if err := json.Unmarshal([]byte(input.ArgsJSON), &args); err != nil {
			return nil, executeKwOutput{}, fmt.Errorf("args_json is not a valid JSON array: %w", err)
		}
	}
	var kwargs map[string]any
	if input.KwargsJSON != "" {
		if err := json.Unmarshal([]byte(input.KwargsJSON), &kwargs); err != nil {
			return nil, executeKwOutput{}, fmt.Errorf("kwargs_json is not a valid JSON object: %w", err)
		}
	}
	result, err := s.client.ExecuteKw(ctx, input.Model, input.Method, args, kwargs)
	if err != nil {
		return nil, executeKwOutput{}, err
	}
	return nil, executeKwOutput{Result: result}, nil
}

func parseDomain(raw string) (odoo.Domain, error) {
	if raw == "" {
		return nil, nil
	}
	var domain odoo.Domain
	if err := json.Unmarshal([]byte(raw), &domain); err != nil {
		return nil, fmt.Errorf("domain_json is not a valid JSON array: %w", err)
	}
	return domain, nil
}
