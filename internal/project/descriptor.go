package project

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

// DescriptorExt is the file extension of generated project descriptors.
const DescriptorExt = ".csproj"

// ExtensionMarker is the capability declaration emitted when extension
// support is requested.
const ExtensionMarker = "<EnableGDExtension>true</EnableGDExtension>"

// Defaults for the generated descriptor.
const (
	DefaultSDKVersion      = "4.3.0"
	DefaultTargetFramework = "net8.0"
)

var descriptorTmpl = template.Must(template.New("csproj").Funcs(template.FuncMap{
	"xml": xmlEscape,
}).Parse(`<Project Sdk="Godot.NET.Sdk/{{xml .SDKVersion}}">
  <PropertyGroup>
    <TargetFramework>{{xml .TargetFramework}}</TargetFramework>
    <EnableDynamicLoading>true</EnableDynamicLoading>
    <RootNamespace>{{xml .RootNamespace}}</RootNamespace>
{{- if .Extension}}
    ` + ExtensionMarker + `
    <AllowUnsafeBlocks>true</AllowUnsafeBlocks>
{{- end}}
  </PropertyGroup>
</Project>
`))

// Descriptor holds the values filled into the project template.
type Descriptor struct {
	SDKVersion      string
	TargetFramework string
	RootNamespace   string
	Extension       bool
}

// Render fills the project template.
func (d Descriptor) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := descriptorTmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("render descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

// DescriptorName returns the file name of the descriptor for a project.
func DescriptorName(name string) string {
	return name + DescriptorExt
}

// RootNamespace turns a project name into an identifier usable as the root
// namespace: disallowed runes become '_' and a leading digit gets a '_' prefix.
func RootNamespace(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case r == '.' && i > 0:
			// Dotted names map to nested namespaces.
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	ns := strings.Trim(b.String(), ".")
	if ns == "" {
		return "_"
	}
	return ns
}

func xmlEscape(s string) (string, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
