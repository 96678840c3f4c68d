package inventory

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/deploymenttheory/go-udisks/internal/types"
	"github.com/deploymenttheory/go-udisks/pkg/app"
)

// Formats are the output formats accepted by FormatOutput.
var Formats = []string{"table", "json", "yaml"}

// Validate validates an inventory request
func (r *Request) Validate() error {
	switch r.Kind {
	case KindDrives, KindBlocks, KindTables, KindDisks:
	case KindObject:
		if r.Path == "" {
			return app.NewError(app.ErrCodeInvalidInput, "object path is required", nil)
		}
		if !types.ObjectPath(r.Path).IsValid() {
			return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("invalid object path %q", r.Path), nil)
		}
	case "":
		return app.NewError(app.ErrCodeInvalidInput, "nothing to list", nil)
	default:
		return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("unknown kind %q (valid: %v)", r.Kind, ListKinds), nil)
	}

	if r.Removable && r.Kind != KindDrives && r.Kind != KindDisks {
		return app.NewError(app.ErrCodeInvalidInput, "removable filter only applies to drives and disks", nil)
	}
	if r.Filesystem != "" && r.Kind != KindBlocks {
		return app.NewError(app.ErrCodeInvalidInput, "filesystem filter only applies to blocks", nil)
	}

	return nil
}

// Validate validates a dump request
func (r *DumpRequest) Validate() error {
	if r.OutputPath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "output path is required", nil)
	}
	if ext := filepath.Ext(r.OutputPath); ext != ".yaml" && ext != ".yml" {
		return app.NewError(app.ErrCodeInvalidInput, "snapshot file must end in .yaml or .yml", nil)
	}
	return nil
}

// ValidateFormat checks an output format name.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("unsupported output format %q (valid: %v)", format, Formats), nil)
	}
	return nil
}
