package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-udisks/pkg/app/inventory"
)

var showCmd = &cobra.Command{
	Use:   "show <object-path>",
	Short: "Show every typed view of one object",
	Long: `Show the interfaces of one managed object and every record it parses as.

An object can be a drive, a block device and a partition table at once.
Objects that exist but match none of these still list their interfaces.

Examples:
  udisks show /org/freedesktop/UDisks2/block_devices/sda1
  udisks show /org/freedesktop/UDisks2/drives/WDC_WD10EZEX -o yaml`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, path string) error {
	ctx := newAppContext(cmd)

	request := &inventory.Request{Kind: inventory.KindObject, Path: path}
	if err := request.Validate(); err != nil {
		return err
	}

	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := inventory.Handle(ctx, client, request)
	if err != nil {
		return err
	}

	return inventory.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
