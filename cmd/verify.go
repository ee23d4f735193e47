/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/moamenhredeen/conductor/internal/conductor"
	"github.com/moamenhredeen/conductor/internal/models"
	"github.com/moamenhredeen/conductor/internal/output"
	"github.com/moamenhredeen/conductor/internal/parser"
	"github.com/spf13/cobra"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	white = color.New(color.FgWhite, color.Bold).SprintFunc()
)

type verifyOptions struct {
	filter       string
	verbose      bool
	outputFormat string
	outputFile   string
}

func newVerifyCmd(a *app) *cobra.Command {
	var opts verifyOptions

	cmd := &cobra.Command{
		Use:   "verifyEndpoints <api-document>",
		Short: "Check every command's endpoint against the server's API document",
		Long: `Check every command's endpoint against a Swagger 2.0 or OpenAPI 3.x document,
such as the one a Conductor server publishes. Placeholder names are ignored
when paths are compared. Exits with status 1 when an endpoint is missing.

Examples:
  conductor verifyEndpoints swagger.json
  conductor verifyEndpoints swagger.json --filter Workflow -v
  conductor verifyEndpoints openapi.yaml -o csv --output-file report.csv`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerify(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter commands by name or path substring")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show matched operation IDs")
	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", "", "Output format: json, csv")
	cmd.Flags().StringVar(&opts.outputFile, "output-file", "", "Write output to file (default: stdout)")

	return cmd
}

func (a *app) runVerify(document string, opts verifyOptions) error {
	// Validate the format before doing any work
	var format output.Format
	if opts.outputFormat != "" {
		f, err := output.ParseFormat(opts.outputFormat)
		if err != nil {
			return err
		}
		format = f
	}

	p, err := parser.ParseFile(document)
	if err != nil {
		return err
	}

	endpoints, err := p.GetEndpoints()
	if err != nil {
		return fmt.Errorf("failed to get endpoints: %w", err)
	}
	a.logger.Debug("API document loaded", "document", document, "endpoints", len(endpoints), "swagger", p.IsSwagger())

	ops := filterOperations(conductor.Operations(), opts.filter)
	if len(ops) == 0 {
		fmt.Fprintln(a.stdout, "No operations found matching the criteria")
		return nil
	}

	summary := verifyOperations(ops, parser.NewEndpointIndex(endpoints))
	summary.Document = document

	if format != "" {
		if opts.outputFile == "" {
			if err := output.WriteVerifySummary(a.stdout, summary, format); err != nil {
				return err
			}
		} else {
			if err := output.ExportVerifySummary(summary, format, opts.outputFile); err != nil {
				return fmt.Errorf("failed to export results: %w", err)
			}
			fmt.Fprintf(a.stdout, "Results exported to: %s\n", opts.outputFile)
			displayVerifySummary(a.stdout, summary, opts.verbose)
		}
	} else {
		displayVerifySummary(a.stdout, summary, opts.verbose)
	}

	if summary.Missing > 0 {
		for _, r := range summary.MissingResults() {
			a.logger.Debug("endpoint missing", "command", r.Command, "method", r.Method, "path", r.Path)
		}
		return fmt.Errorf("%d of %d endpoints missing from %s", summary.Missing, summary.Total, document)
	}
	return nil
}

func verifyOperations(ops []*conductor.Operation, idx parser.EndpointIndex) models.VerifySummary {
	var summary models.VerifySummary
	for _, op := range ops {
		result := models.VerifyResult{
			Command: op.Name,
			Method:  op.Method,
			Path:    op.Path,
		}
		if ep, ok := idx.Lookup(op.Method, op.Path); ok {
			result.Found = true
			result.OperationID = ep.OperationID
		}
		summary.AddResult(result)
	}
	return summary
}

func filterOperations(ops []*conductor.Operation, filter string) []*conductor.Operation {
	if filter == "" {
		return ops
	}

	var filtered []*conductor.Operation
	for _, op := range ops {
		if strings.Contains(op.Name, filter) || strings.Contains(op.Path, filter) {
			filtered = append(filtered, op)
		}
	}
	return filtered
}

func displayVerifySummary(w io.Writer, summary models.VerifySummary, verbose bool) {
	fmt.Fprintf(w, "\n%s\n", white("=== Endpoint Verification ==="))
	fmt.Fprintf(w, "Document: %s\n", summary.Document)
	fmt.Fprintf(w, "Commands: %d\n", summary.Total)
	fmt.Fprintf(w, "Found:    %d\n", summary.Found)
	fmt.Fprintf(w, "Missing:  %d\n", summary.Missing)
	fmt.Fprintln(w)

	for _, r := range summary.Results {
		status := green("FOUND  ")
		if !r.Found {
			status = red("MISSING")
		}
		fmt.Fprintf(w, "%s %-38s %-6s %s", status, r.Command, r.Method, r.Path)
		if verbose && r.OperationID != "" {
			fmt.Fprintf(w, " (%s)", r.OperationID)
		}
		fmt.Fprintln(w)
	}
}
