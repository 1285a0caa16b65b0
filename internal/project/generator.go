package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/sharpglue/internal/fsutil"
)

var (
	// ErrInvalidName is returned for project names that cannot be used as a
	// descriptor file name.
	ErrInvalidName = errors.New("invalid project name")
	// ErrNotDirectory is returned when the target directory is missing or
	// is not a directory.
	ErrNotDirectory = errors.New("target is not a directory")
	// ErrDescriptorExists is returned when a descriptor is already present
	// and Overwrite is not set.
	ErrDescriptorExists = errors.New("project descriptor already exists")
)

// TemplateWriter fills the project template and persists it under dir,
// returning the path of the written descriptor.
type TemplateWriter interface {
	WriteProject(dir, name string, withExtension bool) (string, error)
}

// Generator is the default TemplateWriter. The zero value is usable.
type Generator struct {
	// SDKVersion of Godot.NET.Sdk. Defaults to DefaultSDKVersion.
	SDKVersion string
	// TargetFramework moniker. Defaults to DefaultTargetFramework.
	TargetFramework string
	// Overwrite allows replacing an existing descriptor.
	Overwrite bool
}

// WriteProject implements TemplateWriter.
func (g *Generator) WriteProject(dir, name string, withExtension bool) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotDirectory, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	path := filepath.Join(dir, DescriptorName(name))
	if !g.Overwrite {
		if _, err := os.Lstat(path); err == nil {
			return "", fmt.Errorf("%w: %s", ErrDescriptorExists, path)
		}
	}

	data, err := g.descriptor(name, withExtension).Render()
	if err != nil {
		return "", err
	}

	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (g *Generator) descriptor(name string, withExtension bool) Descriptor {
	d := Descriptor{
		SDKVersion:      g.SDKVersion,
		TargetFramework: g.TargetFramework,
		RootNamespace:   RootNamespace(name),
		Extension:       withExtension,
	}
	if d.SDKVersion == "" {
		d.SDKVersion = DefaultSDKVersion
	}
	if d.TargetFramework == "" {
		d.TargetFramework = DefaultTargetFramework
	}
	return d
}

// ValidateName checks that name can be used verbatim as a descriptor file
// name on every supported platform.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !norm.NFC.IsNormalString(name) {
		return fmt.Errorf("%w: %q is not NFC normalized", ErrInvalidName, name)
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return fmt.Errorf("%w: %q has a trailing dot or space", ErrInvalidName, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, r)
		}
	}
	return nil
}
