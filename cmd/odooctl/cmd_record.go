package main

import (
	"github.com/spf13/cobra"
)

// The CRUD wrappers: read, create, write, unlink.

var readFlags struct {
	model  string
	ids    string
	fields string
	load   string
}

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read field values of records by id",
	RunE:  runRead,
}

var createFlags struct {
	model  string
	values string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create one or more records",
	RunE:  runCreate,
}

var writeFlags struct {
	model  string
	ids    string
	values string
}

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Update records by id",
	RunE:  runWrite,
}

var unlinkFlags struct {
	model string
	ids   string
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Delete records by id",
	RunE:  runUnlink,
}

func init() {
	f := readCmd.Flags()
	f.StringVar(&readFlags.model, "model", "", "Model to read from (required)")
	f.StringVar(&readFlags.ids, "ids", "", "Comma-separated record ids (required)")
	f.StringVar(&readFlags.fields, "fields", "", "Comma-separated fields to read; empty reads all")
	f.StringVar(&readFlags.load, "load", "", "Loading mode; pass 'false' to skip display_name computation")
	_ = readCmd.MarkFlagRequired("model")
	_ = readCmd.MarkFlagRequired("ids")

	cf := createCmd.Flags()
	cf.StringVar(&createFlags.model, "model", "", "Model to create on (required)")
	cf.StringVar(&createFlags.values, "values", "", "Field values as a JSON object, or an array of objects (required)")
	_ = createCmd.MarkFlagRequired("model")
	_ = createCmd.MarkFlagRequired("values")

	wf := writeCmd.Flags()
	wf.StringVar(&writeFlags.model, "model", "", "Model to update (required)")
	wf.StringVar(&writeFlags.ids, "ids", "", "Comma-separated record ids (required)")
	wf.StringVar(&writeFlags.values, "values", "", "Field values as a JSON object (required)")
	_ = writeCmd.MarkFlagRequired("model")
	_ = writeCmd.MarkFlagRequired("ids")
	_ = writeCmd.MarkFlagRequired("values")

	uf := unlinkCmd.Flags()
	uf.StringVar(&unlinkFlags.model, "model", "", "Model to delete from (required)")
	uf.StringVar(&unlinkFlags.ids, "ids", "", "Comma-separated record ids (required)")
	_ = unlinkCmd.MarkFlagRequired("model")
	_ = unlinkCmd.MarkFlagRequired("ids")
}

func runRead(cmd *cobra.Command, _ []string) error {
	ids, err := parseIDs(readFlags.ids)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	opts := fieldOptions(cmd, readFlags.fields, readFlags.load)
	records, err := client.Read(cmd.Context(), readFlags.model, ids, opts...)
	if err != nil {
		return err
	}
	return printRecords(cmd, records)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	values, err := parseValues(createFlags.values)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	result, err := client.Create(cmd.Context(), createFlags.model, values)
	if err != nil {
		return err
	}
	return printResult(cmd, true, result)
}

func runWrite(cmd *cobra.Command, _ []string) error {
	ids, err := parseIDs(writeFlags.ids)
	if err != nil {
		return err
	}
	values, err := parseJSONObject("values", writeFlags.values)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	ok, err := client.Write(cmd.Context(), writeFlags.model, ids, values)
	if err != nil {
		return err
	}
	return printResult(cmd, ok, map[string]any{"updated": ok})
}

func runUnlink(cmd *cobra.Command, _ []string) error {
	ids, err := parseIDs(unlinkFlags.ids)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	ok, err := client.Unlink(cmd.Context(), unlinkFlags.model, ids)
	if err != nil {
		return err
	}
	return printResult(cmd, ok, map[string]any{"deleted": ok})
}
