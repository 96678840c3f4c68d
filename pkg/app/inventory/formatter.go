package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-udisks/internal/types"
)

// FormatOutput formats inventory results according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatDump formats a dump summary according to output format
func FormatDump(w io.Writer, response *DumpResponse, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		_, err := fmt.Fprintf(w, "Wrote %d objects from %s to %s\n", response.Objects, response.Source, response.OutputPath)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table
func formatTable(out io.Writer, response *Response) error {
	if response.Kind == KindObject {
		return formatObject(out, response.Object)
	}

	if response.Count() == 0 {
		_, err := fmt.Fprintf(out, "No %s found.\n", response.Kind)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	switch response.Kind {
	case KindDrives:
		fmt.Fprintf(w, "NAME\tMODEL\tSERIAL\tSIZE\tBUS\tREMOVABLE\n")
		for _, d := range response.Drives {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
				d.Path.Base(), d.DisplayName(), dash(d.Serial), FormatSize(d.Size), dash(d.ConnectionBus), d.Removable || d.MediaRemovable)
		}

	case KindBlocks:
		fmt.Fprintf(w, "DEVICE\tSIZE\tTYPE\tLABEL\tMOUNTPOINTS\tDRIVE\n")
		for _, b := range response.Blocks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				b.Device, FormatSize(b.Size), dash(b.IDType), dash(b.IDLabel), mountPoints(b), driveName(b))
		}

	case KindTables:
		fmt.Fprintf(w, "OBJECT\tTYPE\tPARTITIONS\n")
		for _, t := range response.Tables {
			fmt.Fprintf(w, "%s\t%s\t%d\n", t.Path.Base(), t.Type, len(t.Partitions))
		}

	case KindDisks:
		fmt.Fprintf(w, "DEVICE\tSIZE\tTYPE\tMOUNTPOINTS\tMODEL\n")
		for _, dev := range response.Disks {
			tableType := "-"
			if dev.Parent.Table != nil {
				tableType = dev.Parent.Table.Type
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				dev.Parent.Device, FormatSize(dev.Parent.Size), tableType, mountPoints(dev.Parent), dev.Drive.DisplayName())
			for _, p := range dev.Partitions {
				fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t\n",
					p.Device, FormatSize(p.Size), dash(p.IDType), mountPoints(p))
			}
			if free := dev.Unallocated(); free > 0 && dev.IsPartitioned() {
				fmt.Fprintf(w, "  (free)\t%s\t\t\t\n", FormatSize(free))
			}
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%s from %s\n", FormatSummary(response), response.Source)
	return err
}

func formatObject(out io.Writer, detail *ObjectDetail) error {
	if detail == nil {
		_, err := fmt.Fprintln(out, "No object.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Path:\t%s\n", detail.Path)
	fmt.Fprintf(w, "Interfaces:\t%s\n", strings.Join(detail.Interfaces, ", "))

	if d := detail.Drive; d != nil {
		fmt.Fprintf(w, "Drive:\t%s\n", d.DisplayName())
		fmt.Fprintf(w, "  ID:\t%s\n", dash(d.ID))
		fmt.Fprintf(w, "  Serial:\t%s\n", dash(d.Serial))
		fmt.Fprintf(w, "  Size:\t%s\n", FormatSize(d.Size))
		fmt.Fprintf(w, "  Bus:\t%s\n", dash(d.ConnectionBus))
		if t := d.TimeDetected(); !t.IsZero() {
			fmt.Fprintf(w, "  Detected:\t%s\n", t.UTC().Format("2006-01-02 15:04:05"))
		}
	}

	if b := detail.Block; b != nil {
		fmt.Fprintf(w, "Block:\t%s\n", b.DisplayName())
		fmt.Fprintf(w, "  Size:\t%s\n", FormatSize(b.Size))
		fmt.Fprintf(w, "  Usage:\t%s %s\n", dash(b.IDUsage), b.IDType)
		if b.IDLabel != "" {
			fmt.Fprintf(w, "  Label:\t%s\n", b.IDLabel)
		}
		if b.IDUUID != "" {
			fmt.Fprintf(w, "  UUID:\t%s\n", b.IDUUID)
		}
		fmt.Fprintf(w, "  Drive:\t%s\n", driveName(*b))
		if p := b.Partition; p != nil {
			fmt.Fprintf(w, "  Partition:\t%d of %s\n", p.Number, p.Table.Base())
		}
		if b.Filesystem != nil {
			fmt.Fprintf(w, "  Mounted at:\t%s\n", mountPoints(*b))
		}
		if e := b.Encrypted; e != nil {
			fmt.Fprintf(w, "  Encrypted:\t%s unlocked=%t\n", dash(e.HintEncryptionType), e.IsUnlocked())
		}
		if l := b.Loop; l != nil {
			fmt.Fprintf(w, "  Backing file:\t%s\n", l.BackingFile)
		}
		for _, c := range b.Configuration {
			fmt.Fprintf(w, "  Configured:\t%s\n", c.Kind)
		}
	}

	if t := detail.Table; t != nil {
		fmt.Fprintf(w, "Partition table:\t%s, %d partitions\n", t.Type, len(t.Partitions))
	}

	return w.Flush()
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(v)
}

// FormatSummary provides a brief summary for verbose output
func FormatSummary(response *Response) string {
	n := response.Count()
	if n == 0 {
		return fmt.Sprintf("No %s", response.Kind)
	}

	noun := string(response.Kind)
	if n == 1 {
		noun = strings.TrimSuffix(noun, "s")
	}
	summary := fmt.Sprintf("%d %s", n, noun)

	var total uint64
	switch response.Kind {
	case KindDrives:
		for _, d := range response.Drives {
			total += d.Size
		}
	case KindDisks:
		for _, d := range response.Disks {
			total += d.Parent.Size
		}
	}
	if total > 0 {
		summary += fmt.Sprintf(" totaling %s", FormatSize(total))
	}

	return summary
}

func mountPoints(b types.Block) string {
	if b.Filesystem == nil || len(b.Filesystem.MountPoints) == 0 {
		return "-"
	}
	return strings.Join(b.Filesystem.MountPoints, ",")
}

func driveName(b types.Block) string {
	if !b.HasDrive() {
		return "-"
	}
	return b.Drive.Base()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
