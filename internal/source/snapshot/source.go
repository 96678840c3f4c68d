package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-udisks/internal/interfaces"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

// Source is an ObjectSource that re-reads a snapshot file on every fetch.
type Source struct {
	path string
}

var (
	_ interfaces.ObjectSource = (*Source)(nil)
	_ interfaces.GraphWriter  = (*Writer)(nil)
)

// NewSource returns a source backed by the YAML file at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Describe implements interfaces.ObjectSource.
func (s *Source) Describe() string {
	return "snapshot:" + s.path
}

// FetchAll reads and decodes the snapshot file.
func (s *Source) FetchAll(ctx context.Context) (types.ManagedObjectGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, s.fail(err)
	}

	graph, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, s.fail(err)
	}
	return graph, nil
}

func (s *Source) fail(err error) error {
	return &types.SourceError{Op: "read snapshot", Path: types.ObjectPath(s.path), Err: err}
}

// Read decodes a snapshot document from r.
func Read(r io.Reader) (types.ManagedObjectGraph, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return types.ManagedObjectGraph{}, nil
		}
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return Decode(doc)
}

// Write encodes graph as a snapshot document to w.
func Write(w io.Writer, graph types.ManagedObjectGraph) error {
	doc, err := Encode(graph)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return encoder.Close()
}

// Writer writes graphs to a file, replacing any previous content.
type Writer struct {
	path string
}

// NewWriter returns a writer targeting path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteGraph implements interfaces.GraphWriter.
func (w *Writer) WriteGraph(ctx context.Context, graph types.ManagedObjectGraph) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Write(&buf, graph); err != nil {
		return err
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
