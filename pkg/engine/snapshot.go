package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/minisql/pkg/core"
)

// Snapshot encodings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export returns a copy of the whole store, tables sorted by name.
func (e *Engine) Export() core.Snapshot {
	snap := core.Snapshot{Tables: make([]core.TableSnapshot, 0, e.store.Len())}
	for _, name := range e.store.Names() {
		schema, _ := e.store.Schema(name)
		rows, _ := e.store.Rows(name)

		data := make([]core.Row, len(rows))
		for i, r := range rows {
			data[i] = r.Clone()
		}
		snap.Tables = append(snap.Tables, core.TableSnapshot{
			Name:   schema.Name,
			Schema: schema,
			Data:   data,
		})
	}
	return snap
}

// ExportJSON encodes the store as indented JSON.
func (e *Engine) ExportJSON() ([]byte, error) {
	return MarshalSnapshot(e.Export(), FormatJSON)
}

// Import replaces the store with the snapshot. The snapshot is checked in
// full first; on error the current store is left untouched.
func (e *Engine) Import(snap core.Snapshot) error {
	store, err := buildStore(snap)
	if err != nil {
		e.logger.Warn("snapshot import rejected", "error", err)
		return err
	}
	e.store = store
	e.logger.Info("snapshot imported", "tables", store.Len())
	return nil
}

// ImportJSON decodes and imports a JSON snapshot. It reports whether the
// import succeeded; on failure the current store is left untouched.
func (e *Engine) ImportJSON(data []byte) bool {
	snap, err := UnmarshalSnapshot(data, FormatJSON)
	if err != nil {
		e.logger.Warn("snapshot decode failed", "error", err)
		return false
	}
	return e.Import(snap) == nil
}

func buildStore(snap core.Snapshot) (*Store, error) {
	store := NewStore()
	for i, t := range snap.Tables {
		name := t.Name
		if name == "" {
			name = t.Schema.Name
		}
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("table %d: missing name", i)
		}

		schema := t.Schema
		schema.Name = name
		if schema.Columns == nil {
			schema.Columns = []core.Column{}
		}
		for j := range schema.Columns {
			if schema.Columns[j].Constraints == nil {
				schema.Columns[j].Constraints = []string{}
			}
		}
		if err := store.Create(schema); err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}

		for r, row := range t.Data {
			out := make(core.Row, len(row))
			for col, v := range row {
				nv, ok := core.NormalizeValue(v)
				if !ok {
					return nil, fmt.Errorf("table %q row %d column %q: unsupported value %T", name, r, col, v)
				}
				out[col] = nv
			}
			if err := store.Append(name, out); err != nil {
				return nil, fmt.Errorf("table %q: %w", name, err)
			}
		}
	}
	return store, nil
}

// MarshalSnapshot encodes a snapshot as JSON or YAML.
func MarshalSnapshot(snap core.Snapshot, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unknown snapshot format %q", format)
}

// UnmarshalSnapshot decodes a JSON or YAML snapshot. JSON numbers are kept
// exact so integers survive the round trip.
func UnmarshalSnapshot(data []byte, format string) (core.Snapshot, error) {
	var snap core.Snapshot
	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&snap); err != nil {
			return core.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
		}
		if dec.More() {
			return core.Snapshot{}, errors.New("failed to decode snapshot: trailing data")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return core.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
		}
	default:
		return core.Snapshot{}, fmt.Errorf("unknown snapshot format %q", format)
	}
	return snap, nil
}
