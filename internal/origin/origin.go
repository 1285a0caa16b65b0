package origin

import "fmt"

// Owning module names of the two trusted binding assemblies.
const (
	CoreModule   = "GodotSharp"
	EditorModule = "GodotSharpEditor"
)

// Origin is the trust class of a type's owning module.
type Origin int

const (
	// Foreign covers every untrusted or unresolvable module.
	Foreign Origin = iota
	Core
	Editor
)

func (o Origin) String() string {
	switch o {
	case Core:
		return "core"
	case Editor:
		return "editor"
	default:
		return "foreign"
	}
}

// ResolveFunc returns the owning module name of a type handle.
// ok is false when the module cannot be determined.
type ResolveFunc[T any] func(t T) (module string, ok bool)

// TypeRef is an immutable type handle carrying its owning module.
type TypeRef struct {
	Module string
	Name   string
}

func (r TypeRef) String() string {
	if r.Module == "" {
		return r.Name
	}
	return fmt.Sprintf("%s:%s", r.Module, r.Name)
}

// ResolveTypeRef resolves a TypeRef to its own Module field.
// An empty module is unresolvable.
func ResolveTypeRef(r TypeRef) (string, bool) {
	return r.Module, r.Module != ""
}

// Option configures a Classifier.
type Option func(*options)

type options struct {
	core   string
	editor string
}

// WithTrustedModules overrides the two trusted module names.
// Empty arguments keep the corresponding default.
func WithTrustedModules(core, editor string) Option {
	return func(o *options) {
		if core != "" {
			o.core = core
		}
		if editor != "" {
			o.editor = editor
		}
	}
}

// Classifier maps type handles to an Origin using an injected resolver.
// It holds no mutable state and is safe for concurrent use if the resolver is.
type Classifier[T any] struct {
	resolve ResolveFunc[T]
	core    string
	editor  string
}

// NewClassifier creates a classifier. A nil resolve classifies everything as
// Foreign.
func NewClassifier[T any](resolve ResolveFunc[T], opts ...Option) *Classifier[T] {
	o := options{core: CoreModule, editor: EditorModule}
	for _, opt := range opts {
		opt(&o)
	}
	return &Classifier[T]{resolve: resolve, core: o.core, editor: o.editor}
}

// TrustedModules returns the core and editor module names in effect.
func (c *Classifier[T]) TrustedModules() (core, editor string) {
	return c.core, c.editor
}

// Classify resolves t's owning module and compares it, case-sensitively,
// against the trusted names.
func (c *Classifier[T]) Classify(t T) Origin {
	module, ok := c.moduleOf(t)
	if !ok {
		return Foreign
	}
	switch module {
	case c.core:
		return Core
	case c.editor:
		return Editor
	default:
		return Foreign
	}
}

// Trusted reports whether t belongs to the core or editor module.
func (c *Classifier[T]) Trusted(t T) bool {
	return c.Classify(t) != Foreign
}

// moduleOf calls the resolver, treating a panic as unresolvable.
func (c *Classifier[T]) moduleOf(t T) (module string, ok bool) {
	if c == nil || c.resolve == nil {
		return "", false
	}
	defer func() {
		if r := recover(); r != nil {
			module, ok = "", false
		}
	}()
	return c.resolve(t)
}
