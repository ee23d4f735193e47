/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/moamenhredeen/conductor/internal/conductor"
	"github.com/moamenhredeen/conductor/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by every command of one invocation
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer

	client *conductor.Client
	logger *slog.Logger
}

// NewRootCmd builds the conductor command tree writing to stdout and stderr
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
		logger: slog.Default(),
	}

	rootCmd := &cobra.Command{
		Use:   "conductor",
		Short: "Execute Swagger API calls against a Conductor server",
		Long: `conductor maps each command onto one REST endpoint of a Conductor
workflow server, sends a single request and prints both the request and the
raw response.

Examples:
  conductor getWorkflow 123e4567 --includeTasks false
  conductor --ip 10.0.0.5 --port 8080 startWorkflow my_workflow --body '{"key":"value"}'
  conductor createTaskMetadata @taskdefs.json`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("ip", conductor.DefaultHost, "IP Address of Conductor Server")
	flags.String("port", conductor.DefaultPort, "Port of Conductor Server")
	flags.String("config", "", "Config file (default ./conductor.toml)")
	flags.String("log-level", "warn", "Diagnostics log level: debug, info, warn, error")
	flags.Bool("strict", false, "Exit with status 1 when the server answers with a non-2xx status")

	for _, key := range []string{"ip", "port", "config", "log-level", "strict"} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}
	a.v.SetDefault("timeout", "0s")
	a.v.SetEnvPrefix("CONDUCTOR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.SetFlagErrorFunc(flagError)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	for _, g := range conductor.Groups {
		rootCmd.AddGroup(&cobra.Group{ID: g.ID, Title: g.Title})
	}
	for _, op := range conductor.Operations() {
		rootCmd.AddCommand(newOperationCmd(a, op))
	}
	rootCmd.AddCommand(newVerifyCmd(a))

	return rootCmd
}

// setup resolves the configuration once, before any command runs
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.readConfigFile(); err != nil {
		return err
	}

	level, err := telemetry.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.logger = telemetry.SetupLogger(level, a.stderr)

	cfg := conductor.Config{
		Host:    a.v.GetString("ip"),
		Port:    a.v.GetString("port"),
		Timeout: a.v.GetDuration("timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := []conductor.Option{
		conductor.WithOutput(a.stdout),
		conductor.WithLogger(a.logger),
	}
	if f, ok := a.stderr.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		opts = append(opts, conductor.WithSpinner(f))
	}
	a.client = conductor.NewClient(cfg, opts...)

	a.logger.Debug("configuration resolved",
		"base_url", cfg.BaseURL(),
		"timeout", cfg.Timeout,
		"config_file", a.v.ConfigFileUsed())
	return nil
}

// readConfigFile loads --config when given, else an optional ./conductor.toml
func (a *app) readConfigFile() error {
	path := a.v.GetString("config")
	if path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName("conductor")
		a.v.SetConfigType("toml")
		a.v.AddConfigPath(".")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// commandName returns the first token that is neither a global flag nor a
// global flag's value, "" when there is none.
func commandName(rootCmd *cobra.Command, args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return arg
		}

		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := rootCmd.PersistentFlags().Lookup(name); f != nil && f.NoOptDefVal == "" {
			i++
		}
	}
	return ""
}

// Run executes the command line and returns the process exit code
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd(stdout, stderr)

	if commandName(rootCmd, args) == "" {
		_ = rootCmd.Help()
		return 1
	}

	rootCmd.SetArgs(args)
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
