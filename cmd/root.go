package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-udisks/internal/config"
	"github.com/deploymenttheory/go-udisks/internal/logger"
	"github.com/deploymenttheory/go-udisks/pkg/app"
	"github.com/deploymenttheory/go-udisks/pkg/app/inventory"
	"github.com/deploymenttheory/go-udisks/pkg/udisks2"
)

var (
	// Global output flags
	verbose      bool
	quiet        bool
	outputFormat string

	// Source selection
	configFile   string
	snapshotFile string
	timeout      time.Duration

	// Effective configuration, loaded before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "udisks",
	Short: "Inspect drives and block devices managed by UDisks2",
	Long: `udisks is a read-only command-line tool for inspecting the storage
objects published by the UDisks2 service.

Every invocation fetches the complete object graph in one
GetManagedObjects call and answers from that snapshot. Snapshots can be
saved with dump and inspected later, or on another machine, with
--snapshot.

Commands:
  list        List drives, block devices, partition tables, or disks
  show        Show every view of a single object
  dump        Save the object graph to a YAML snapshot
  config      Print the effective configuration`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(app.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: udisks-config.yaml in ., $HOME/.udisks, /etc/udisks)")
	rootCmd.PersistentFlags().StringVar(&snapshotFile, "snapshot", "", "read objects from a YAML snapshot instead of the bus")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 3*time.Second, "GetManagedObjects timeout")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// setup loads configuration, applies flag overrides and initializes logging.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "failed to load configuration", err)
	}

	if cmd.Flags().Changed("snapshot") {
		loaded.Snapshot = snapshotFile
	}
	if cmd.Flags().Changed("timeout") {
		if timeout <= 0 {
			return app.NewError(app.ErrCodeInvalidInput, "timeout must be positive", nil)
		}
		loaded.Source.Timeout = timeout
	}

	if err := inventory.ValidateFormat(outputFormat); err != nil {
		return err
	}

	if err := logger.Init(loaded.Log); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid log configuration", err)
	}
	switch {
	case verbose:
		logger.SetLevel(zerolog.DebugLevel)
	case quiet:
		logger.SetLevel(zerolog.ErrorLevel)
	}

	cfg = loaded
	return nil
}

// newAppContext builds the application context for cmd.
func newAppContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	ctx.Context = cmd.Context()
	ctx.OutputFormat = outputFormat
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.Out = cmd.OutOrStdout()
	ctx.ErrOut = cmd.ErrOrStderr()
	ctx.Logger = logger.WithComponent("cli")
	return ctx
}

// newClient fetches the object graph from the configured source.
func newClient(ctx *app.Context) (*udisks2.Client, error) {
	client, err := udisks2.New(ctx, udisks2.WithConfig(*cfg), udisks2.WithLogger(logger.WithComponent("udisks2")))
	if err != nil {
		return nil, app.SourceFailure(err)
	}
	ctx.Log(fmt.Sprintf("Read %d objects from %s", client.Len(), client.Source()))
	return client, nil
}
