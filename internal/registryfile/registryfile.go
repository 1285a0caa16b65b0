// Package registryfile reads and writes type registries stored as YAML.
//
// A registry document holds both registry shapes:
//
//	by_type:            # type name -> associated value
//	  Node: res://icons/node.svg
//	by_key:             # key -> type name
//	  player_script: Player
//
// Values under by_type are arbitrary YAML and are preserved as-is.
package registryfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sharpglue/internal/fsutil"
	"github.com/roach88/sharpglue/internal/origin"
)

// Document is a registry file.
type Document struct {
	// ByType has the type name in key position.
	ByType map[string]any `yaml:"by_type,omitempty"`
	// ByKey has the type name in value position.
	ByKey map[string]string `yaml:"by_key,omitempty"`
}

// Report lists the entries removed by Prune, sorted.
type Report struct {
	RemovedByType []string `json:"removed_by_type"`
	RemovedByKey  []string `json:"removed_by_key"`
	Kept          int      `json:"kept"`
}

// Removed returns the total number of removed entries.
func (r Report) Removed() int {
	return len(r.RemovedByType) + len(r.RemovedByKey)
}

// Load reads a registry document. Unknown top-level fields are rejected.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a registry document. An empty input is an empty document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

// Marshal encodes the document as YAML with sorted keys.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document to path atomically.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Prune removes every entry whose type is not owned by a trusted module.
func (d *Document) Prune(c *origin.Classifier[string]) Report {
	var r Report

	before := keys(d.ByType)
	origin.PruneByKeyType(d.ByType, c)
	r.RemovedByType = missing(before, d.ByType)

	beforeKeys := keys(d.ByKey)
	origin.PruneByValueType(d.ByKey, c)
	r.RemovedByKey = missing(beforeKeys, d.ByKey)

	r.Kept = len(d.ByType) + len(d.ByKey)
	return r
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func missing[V any](before []string, after map[string]V) []string {
	var out []string
	for _, k := range before {
		if _, ok := after[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}
