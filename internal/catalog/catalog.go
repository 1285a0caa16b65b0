// Package catalog provides type metadata loaded from CUE files: which owning
// module declares which type.
//
// A catalog file looks like:
//
//	modules: GodotSharp: types: ["GodotObject", "Node"]
//	modules: GodotSharpEditor: types: ["EditorPlugin"]
//	modules: MyGame: types: ["Player"]
//
// Several files may contribute to the same catalog; CUE unifies them. A type
// name may be declared by at most one module.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/sharpglue/internal/origin"
)

const schemaSrc = `
#Catalog: {
	modules: [string]: {
		types: [...string]
		...
	}
	...
}
`

// Error is a catalog load or validation error.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Catalog maps type names to their owning module.
type Catalog struct {
	owners  map[string]string
	modules map[string][]string
}

// Load reads every .cue file under dir into one catalog.
func Load(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("catalog directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &Error{Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := findCUEFiles(dir)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("scanning %s: %v", dir, err)}
	}
	if len(files) == 0 {
		return nil, &Error{Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances(files, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &Error{Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &Error{Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	return build(ctx, ctx.BuildInstance(inst))
}

// Parse builds a catalog from CUE source. filename is used in positions.
func Parse(filename string, src []byte) (*Catalog, error) {
	ctx := cuecontext.New()
	return build(ctx, ctx.CompileBytes(src, cue.Filename(filename)))
}

func build(ctx *cue.Context, value cue.Value) (*Catalog, error) {
	if err := value.Err(); err != nil {
		return nil, &Error{Message: fmt.Sprintf("building CUE value: %v", err), Pos: value.Pos()}
	}

	schema := ctx.CompileString(schemaSrc).LookupPath(cue.ParsePath("#Catalog"))
	value = schema.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid catalog: %v", err)}
	}

	c := &Catalog{
		owners:  make(map[string]string),
		modules: make(map[string][]string),
	}

	modulesVal := value.LookupPath(cue.ParsePath("modules"))
	if !modulesVal.Exists() {
		return c, nil
	}

	iter, err := modulesVal.Fields()
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("iterating modules: %v", err), Pos: modulesVal.Pos()}
	}
	for iter.Next() {
		module := iter.Label()
		typesVal := iter.Value().LookupPath(cue.ParsePath("types"))

		var types []string
		if typesVal.Exists() {
			if err := typesVal.Decode(&types); err != nil {
				return nil, &Error{Message: fmt.Sprintf("module %s: %v", module, err), Pos: typesVal.Pos()}
			}
		}

		for _, ty := range types {
			if prev, dup := c.owners[ty]; dup {
				return nil, &Error{
					Message: fmt.Sprintf("type %q declared by both %s and %s", ty, prev, module),
					Pos:     typesVal.Pos(),
				}
			}
			c.owners[ty] = module
		}
		c.modules[module] = types
	}

	return c, nil
}

// ModuleOf returns the owning module of a type name.
func (c *Catalog) ModuleOf(typeName string) (string, bool) {
	if c == nil {
		return "", false
	}
	m, ok := c.owners[typeName]
	return m, ok
}

// Resolver adapts the catalog to origin.ResolveFunc for type names.
func (c *Catalog) Resolver() origin.ResolveFunc[string] {
	return c.ModuleOf
}

// Modules returns the declared module names, sorted.
func (c *Catalog) Modules() []string {
	out := make([]string, 0, len(c.modules))
	for m := range c.modules {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Types returns the types declared by module in declaration order.
func (c *Catalog) Types(module string) []string {
	return append([]string(nil), c.modules[module]...)
}

// Len returns the number of known types.
func (c *Catalog) Len() int {
	return len(c.owners)
}

func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
