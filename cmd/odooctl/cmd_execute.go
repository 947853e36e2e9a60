package main

import (
	"github.com/spf13/cobra"
)

var executeFlags struct {
	model  string
	method string
	args   string
}

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Call a model method with positional arguments (object.execute)",
	RunE:  runExecute,
}

var executeKwFlags struct {
	model  string
	method string
	args   string
	kwargs string
}

var executeKwCmd = &cobra.Command{
	Use:   "execute-kw",
	Short: "Call a model method with positional and keyword arguments (object.execute_kw)",
	RunE:  runExecuteKw,
}

func init() {
	f := executeCmd.Flags()
	f.StringVar(&executeFlags.model, "model", "", "Model to execute on, e.g. res.partner (required)")
	f.StringVar(&executeFlags.method, "method", "", "Method to call (required)")
	f.StringVar(&executeFlags.args, "args", "", "Positional arguments as a JSON array")
	_ = executeCmd.MarkFlagRequired("model")
	_ = executeCmd.MarkFlagRequired("method")

	kf := executeKwCmd.Flags()
	kf.StringVar(&executeKwFlags.model, "model", "", "Model to execute on, e.g. res.partner (required)")
	kf.StringVar(&executeKwFlags.method, "method", "", "Method to call (required)")
	kf.StringVar(&executeKwFlags.args, "args", "", "Positional arguments as a JSON array")
	kf.StringVar(&executeKwFlags.kwargs, "kwargs", "", "Keyword arguments as a JSON object")
	_ = executeKwCmd.MarkFlagRequired("model")
	_ = executeKwCmd.MarkFlagRequired("method")
}

func runExecute(cmd *cobra.Command, _ []string) error {
	args, err := parseJSONArray("args", executeFlags.args)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	result, err := client.Execute(cmd.Context(), executeFlags.model, executeFlags.method, args...)
	if err != nil {
		return err
	}
	// A generic method call may mutate; report it as such.
	return printResult(cmd, true, result)
}

func runExecuteKw(cmd *cobra.Command, _ []string) error {
	args, err := parseJSONArray("args", executeKwFlags.args)
	if err != nil {
		return err
	}
	kwargs, err := parseJSONObject("kwargs", executeKwFlags.kwargs)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	result, err := client.ExecuteKw(cmd.Context(), executeKwFlags.model, executeKwFlags.method, args, kwargs)
	if err != nil {
		return err
	}
	return printResult(cmd, true, result)
}
