package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-udisks/pkg/app/inventory"
)

var (
	// Filters (list command only)
	listRemovable  bool
	listFilesystem string
)

var listCmd = &cobra.Command{
	Use:   "list {drives|blocks|tables|disks}",
	Short: "List drives, block devices, partition tables, or disks",
	Long: `List storage objects from the UDisks2 object graph.

Examples:
  # List all drives
  udisks list drives

  # List ext4 block devices as JSON
  udisks list blocks --fs ext4 -o json

  # Show removable disks with their partitions
  udisks list disks --removable

  # List partition tables from a saved snapshot
  udisks list tables --snapshot laptop.yaml`,

	ValidArgs: []string{
		string(inventory.KindDrives),
		string(inventory.KindBlocks),
		string(inventory.KindTables),
		string(inventory.KindDisks),
	},
	Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, inventory.Kind(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listRemovable, "removable", false, "only removable drives (drives, disks)")
	listCmd.Flags().StringVar(&listFilesystem, "fs", "", "only blocks with this filesystem type (blocks)")
}

func runList(cmd *cobra.Command, kind inventory.Kind) error {
	ctx := newAppContext(cmd)

	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	request := &inventory.Request{
		Kind:       kind,
		Removable:  listRemovable,
		Filesystem: listFilesystem,
	}

	response, err := inventory.Handle(ctx, client, request)
	if err != nil {
		return err
	}

	return inventory.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
