// Package format renders command results as JSON or fixed-width tables.
package format

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Mode controls the output format.
type Mode int

const (
	JSON  Mode = iota // Indented JSON, the default
	Table             // Fixed-width terminal tables
)

// ParseMode maps a --output flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "json", "":
		return JSON, nil
	case "table":
		return Table, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want json or table)", s)
	}
}

// Records renders a list of field mappings. In Table mode the columns are
// the union of the field names, with "id" first and the rest sorted.
func Records(mode Mode, records []map[string]any) (string, error) {
	if mode == JSON {
		return asJSON(records)
	}

	cols := recordColumns(records)
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)

	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	w.AppendHeader(header)

	for _, rec := range records {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = cell(rec[c])
		}
		w.AppendRow(row)
	}
	return w.Render(), nil
}

// Pairs renders rows of equal-length string tuples under the given header.
func Pairs(mode Mode, header []string, rows [][]string) (string, error) {
	if mode == JSON {
		return asJSON(rows)
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	hr := make(table.Row, len(header))
	for i, h := range header {
		hr[i] = h
	}
	w.AppendHeader(hr)
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v
		}
		w.AppendRow(r)
	}
	return w.Render(), nil
}

// List renders a flat list of strings.
func List(mode Mode, header string, items []string) (string, error) {
	if mode == JSON {
		return asJSON(items)
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{header})
	for _, item := range items {
		w.AppendRow(table.Row{item})
	}
	return w.Render(), nil
}

func asJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render json: %w", err)
	}
	return string(data), nil
}

func recordColumns(records []map[string]any) []string {
	seen := map[string]bool{}
	for _, rec := range records {
		for field := range rec {
			seen[field] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for field := range seen {
		if field == "id" {
			continue
		}
		cols = append(cols, field)
	}
	sort.Strings(cols)
	if seen["id"] {
		cols = append([]string{"id"}, cols...)
	}
	return cols
}

// cell flattens a field value for table display. Relational fields come back
// as [id, display_name] pairs; everything else prints via fmt.
func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []any:
		if len(val) == 2 {
			if _, isNum := val[0].(float64); isNum {
				return fmt.Sprint(val[1])
			}
		}
		return fmt.Sprint(val)
	default:
		return fmt.Sprint(val)
	}
}
