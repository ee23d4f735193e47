/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/moamenhredeen/conductor/internal/conductor"
	"github.com/spf13/cobra"
)

// newOperationCmd generates the command for one table operation. Help text,
// positional arguments and flags all come from the operation declaration.
func newOperationCmd(a *app, op *conductor.Operation) *cobra.Command {
	cmd := &cobra.Command{
		Use:     op.Use(),
		Short:   op.Short,
		Long:    operationLong(op),
		GroupID: op.Group,
		Args:    exactArgs(op.Positional()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperation(cmd, op, args)
		},
	}

	for _, f := range op.Flags {
		switch f.Kind {
		case conductor.KindPositiveInt:
			cmd.Flags().Var(&positiveIntValue{}, f.Name, f.Usage)
		case conductor.KindChoice:
			cmd.Flags().Var(newChoiceValue(f.Choices), f.Name, f.Usage)
		default:
			cmd.Flags().String(f.Name, "", f.Usage)
		}
	}
	if op.Body == conductor.BodyOptional {
		cmd.Flags().String("body", "", op.BodyUsage+" (default == {}, @file reads a file)")
	}

	return cmd
}

func operationLong(op *conductor.Operation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nSends %s %s", op.Short, op.Method, op.Path)
	if op.ReturnsID {
		b.WriteString("\nThe response body is the workflow instance id.")
	}

	if op.Positional() > 0 {
		b.WriteString("\n\nArguments:\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, arg := range op.Args {
			fmt.Fprintf(tw, "  %s\t%s\n", arg.Name, arg.Usage)
		}
		if op.Body == conductor.BodyRequired {
			fmt.Fprintf(tw, "  %s\t%s (@file reads a file, @- reads stdin)\n", op.BodyName, op.BodyUsage)
		}
		tw.Flush()
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a *app) runOperation(cmd *cobra.Command, op *conductor.Operation, args []string) error {
	p := conductor.Params{
		Args:  make(map[string]string, len(op.Args)),
		Flags: make(map[string]string, len(op.Flags)),
	}
	for i, arg := range op.Args {
		p.Args[arg.Name] = args[i]
	}

	switch op.Body {
	case conductor.BodyRequired:
		body, err := readBody(args[len(op.Args)], cmd.InOrStdin())
		if err != nil {
			return err
		}
		p.Body = &body
	case conductor.BodyOptional:
		if cmd.Flags().Changed("body") {
			raw, _ := cmd.Flags().GetString("body")
			body, err := readBody(raw, cmd.InOrStdin())
			if err != nil {
				return err
			}
			p.Body = &body
		}
	}

	for _, f := range op.Flags {
		if cmd.Flags().Changed(f.Name) {
			p.Flags[f.Name] = cmd.Flags().Lookup(f.Name).Value.String()
		}
	}

	req, err := op.Request(p)
	if err != nil {
		return err
	}

	resp, err := a.client.Send(cmd.Context(), req)
	if err != nil {
		return err
	}

	if result, ok := resp.Result(); ok && op.ReturnsID {
		a.logger.Info("workflow instance", "command", op.Name, "id", strings.TrimSpace(result))
	}
	if !resp.OK() && a.v.GetBool("strict") {
		return fmt.Errorf("server responded with status %d", resp.Status)
	}
	return nil
}
