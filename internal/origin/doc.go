// Package origin classifies type handles by their owning module and prunes
// type registries down to the trusted binding modules.
//
// Exactly two owning modules are trusted: the core binding module
// (GodotSharp) and the editor binding module (GodotSharpEditor). Every other
// module, and every type whose module cannot be resolved, is Foreign.
//
// # Resolution
//
// Classification never inspects live types. The caller injects a ResolveFunc
// that answers "which module owns this handle?". A resolver that reports
// ok=false, or that panics, makes the handle Foreign (fail-closed).
//
// # Pruning
//
// Registries are plain Go maps owned by the caller:
//
//	icons := map[origin.TypeRef]string{...}
//	c := origin.NewClassifier(origin.ResolveTypeRef)
//	removed := origin.PruneByKeyType(icons, c)
//
// PruneByKeyType handles maps keyed by a type handle; PruneByValueType handles
// maps whose values are type handles. Both collect the keys to delete before
// deleting anything and perform no locking: concurrent mutation of the same
// map during a prune is the caller's bug.
package origin
