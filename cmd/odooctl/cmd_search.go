package main

import (
	"github.com/spf13/cobra"
)

var searchFlags struct {
	model  string
	domain string
	offset int
	limit  int
	order  string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for record ids matching a domain",
	RunE:  runSearch,
}

var searchReadFlags struct {
	model  string
	domain string
	fields string
	offset int
	limit  int
	order  string
	load   string
}

var searchReadCmd = &cobra.Command{
	Use:   "search-read",
	Short: "Search and read matching records in one call",
	RunE:  runSearchRead,
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.model, "model", "", "Model to search, e.g. res.partner (required)")
	f.StringVar(&searchFlags.domain, "domain", "", "Search domain as a JSON array; empty matches all records")
	f.IntVar(&searchFlags.offset, "offset", 0, "Number of records to skip")
	f.IntVar(&searchFlags.limit, "limit", 0, "Maximum number of records to return")
	f.StringVar(&searchFlags.order, "order", "", "Sort specification, e.g. 'create_date desc'")
	_ = searchCmd.MarkFlagRequired("model")

	rf := searchReadCmd.Flags()
	rf.StringVar(&searchReadFlags.model, "model", "", "Model to search, e.g. res.partner (required)")
	rf.StringVar(&searchReadFlags.domain, "domain", "", "Search domain as a JSON array; empty matches all records")
	rf.StringVar(&searchReadFlags.fields, "fields", "", "Comma-separated fields to read; empty reads all")
	rf.IntVar(&searchReadFlags.offset, "offset", 0, "Number of records to skip")
	rf.IntVar(&searchReadFlags.limit, "limit", 0, "Maximum number of records to return")
	rf.StringVar(&searchReadFlags.order, "order", "", "Sort specification, e.g. 'create_date desc'")
	rf.StringVar(&searchReadFlags.load, "load", "", "Loading mode; pass 'false' to skip display_name computation")
	_ = searchReadCmd.MarkFlagRequired("model")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	domain, err := parseDomain(searchFlags.domain)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	opts := searchOptions(cmd, searchFlags.offset, searchFlags.limit, searchFlags.order)
	ids, err := client.Search(cmd.Context(), searchFlags.model, domain, opts...)
	if err != nil {
		return err
	}
	return printResult(cmd, false, ids)
}

func runSearchRead(cmd *cobra.Command, _ []string) error {
	domain, err := parseDomain(searchReadFlags.domain)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	opts := searchOptions(cmd, searchReadFlags.offset, searchReadFlags.limit, searchReadFlags.order)
	opts = append(opts, fieldOptions(cmd, searchReadFlags.fields, searchReadFlags.load)...)
	records, err := client.SearchRead(cmd.Context(), searchReadFlags.model, domain, opts...)
	if err != nil {
		return err
	}
	return printRecords(cmd, records)
}
