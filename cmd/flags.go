/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*positiveIntValue)(nil)
	_ pflag.Value = (*choiceValue)(nil)
)

// positiveIntValue is a pflag.Value accepting integers greater than zero
type positiveIntValue struct {
	value string
}

func (v *positiveIntValue) String() string { return v.value }

func (v *positiveIntValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s is not a valid positive integer value", s)
	}
	v.value = strconv.Itoa(n)
	return nil
}

func (v *positiveIntValue) Type() string { return "int" }

// choiceValue is a pflag.Value restricted to a fixed set of strings
type choiceValue struct {
	choices []string
	value   string
}

func newChoiceValue(choices []string) *choiceValue {
	return &choiceValue{choices: choices}
}

func (v *choiceValue) String() string { return v.value }

func (v *choiceValue) Set(s string) error {
	if !slices.Contains(v.choices, s) {
		return fmt.Errorf("invalid choice '%s' (choose from %s)", s, strings.Join(v.choices, ", "))
	}
	v.value = s
	return nil
}

func (v *choiceValue) Type() string { return strings.Join(v.choices, "|") }

// usageError marks errors that should be followed by the command usage
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func flagError(cmd *cobra.Command, err error) error {
	return usageError{err: err}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

// readBody returns a JSON body argument. "@path" reads the file at path and
// "@-" reads stdin; anything else is sent as typed.
func readBody(value string, stdin io.Reader) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}

	path := value[1:]
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read body from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read body file: %w", err)
	}
	return string(data), nil
}
