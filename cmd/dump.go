package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-udisks/internal/source/snapshot"
	"github.com/deploymenttheory/go-udisks/pkg/app/inventory"
)

var dumpOut string

var dumpCmd = &cobra.Command{
	Use:   "dump --out <file>",
	Short: "Save the object graph to a YAML snapshot",
	Long: `Fetch the complete object graph and write it to a YAML snapshot.

The snapshot keeps every property with its D-Bus type, so reading it back
with --snapshot answers exactly like the live service did.

Examples:
  udisks dump --out laptop.yaml
  udisks list disks --snapshot laptop.yaml`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVar(&dumpOut, "out", "", "snapshot file to write (.yaml)")
	_ = dumpCmd.MarkFlagRequired("out")
}

func runDump(cmd *cobra.Command) error {
	ctx := newAppContext(cmd)

	request := &inventory.DumpRequest{OutputPath: dumpOut}
	if err := request.Validate(); err != nil {
		return err
	}

	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := inventory.Dump(ctx, client, snapshot.NewWriter(dumpOut), request)
	if err != nil {
		return err
	}

	if ctx.Quiet {
		return nil
	}
	return inventory.FormatDump(ctx.Out, response, ctx.OutputFormat)
}
