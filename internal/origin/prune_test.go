package origin

import (
	"fmt"
	"maps"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	node   = TypeRef{Module: CoreModule, Name: "Node"}
	sprite = TypeRef{Module: CoreModule, Name: "Sprite2D"}
	plugin = TypeRef{Module: EditorModule, Name: "EditorPlugin"}
	player = TypeRef{Module: "MyGame", Name: "Player"}
	orphan = TypeRef{Name: "Orphan"}
)

func TestPruneByKeyType(t *testing.T) {
	registry := map[TypeRef]string{
		node:   "node.svg",
		plugin: "plugin.svg",
		player: "player.svg",
		orphan: "orphan.svg",
	}

	removed := PruneByKeyType(registry, NewClassifier(ResolveTypeRef))

	assert.Equal(t, 2, removed)
	assert.Equal(t, map[TypeRef]string{
		node:   "node.svg",
		plugin: "plugin.svg",
	}, registry)
}

func TestPruneByValueType(t *testing.T) {
	registry := map[string]TypeRef{
		"root":   node,
		"tool":   plugin,
		"hero":   player,
		"ghost":  orphan,
		"sprite": sprite,
	}

	removed := PruneByValueType(registry, NewClassifier(ResolveTypeRef))

	assert.Equal(t, 2, removed)
	assert.Equal(t, map[string]TypeRef{
		"root":   node,
		"tool":   plugin,
		"sprite": sprite,
	}, registry)
}

func TestPrune_EmptyAndNil(t *testing.T) {
	c := NewClassifier(ResolveTypeRef)

	empty := map[TypeRef]int{}
	assert.Equal(t, 0, PruneByKeyType(empty, c))
	assert.Empty(t, empty)

	var nilMap map[string]TypeRef
	assert.Equal(t, 0, PruneByValueType(nilMap, c))
	assert.Nil(t, nilMap)
}

func TestPrune_AllTrustedIsNoop(t *testing.T) {
	c := NewClassifier(ResolveTypeRef)

	byKey := map[TypeRef]int{node: 1, sprite: 2, plugin: 3}
	before := maps.Clone(byKey)
	assert.Equal(t, 0, PruneByKeyType(byKey, c))
	assert.Equal(t, before, byKey)

	byValue := map[int]TypeRef{1: node, 2: sprite, 3: plugin}
	beforeValues := maps.Clone(byValue)
	assert.Equal(t, 0, PruneByValueType(byValue, c))
	assert.Equal(t, beforeValues, byValue)
}

func TestPrune_FailClosedOnPanickingResolver(t *testing.T) {
	c := NewClassifier(func(r TypeRef) (string, bool) {
		if r.Name == "Cursed" {
			panic("cannot load metadata")
		}
		return ResolveTypeRef(r)
	})
	cursed := TypeRef{Module: CoreModule, Name: "Cursed"}

	registry := map[TypeRef]bool{node: true, cursed: true}
	require.NotPanics(t, func() { PruneByKeyType(registry, c) })

	assert.Equal(t, map[TypeRef]bool{node: true}, registry)
}

// randomRegistry builds a registry mixing trusted, foreign and unresolvable
// types.
func randomRegistry(rng *rand.Rand, n int) map[TypeRef]int {
	modules := []string{CoreModule, EditorModule, "MyGame", "Addons", "", "godotsharp"}
	out := make(map[TypeRef]int, n)
	for i := 0; i < n; i++ {
		ref := TypeRef{
			Module: modules[rng.Intn(len(modules))],
			Name:   fmt.Sprintf("T%d", i),
		}
		out[ref] = i
	}
	return out
}

func TestPrune_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewClassifier(ResolveTypeRef)

	for round := 0; round < 50; round++ {
		original := randomRegistry(rng, rng.Intn(40))
		registry := maps.Clone(original)

		removed := PruneByKeyType(registry, c)

		// An entry survives iff its module is trusted.
		for ref, v := range original {
			trusted := ref.Module == CoreModule || ref.Module == EditorModule
			got, ok := registry[ref]
			assert.Equal(t, trusted, ok, "round %d: %v", round, ref)
			if ok {
				assert.Equal(t, v, got)
			}
		}
		assert.Equal(t, len(original)-len(registry), removed)

		// Idempotent.
		again := maps.Clone(registry)
		assert.Equal(t, 0, PruneByKeyType(again, c))
		assert.Equal(t, registry, again)
	}
}

func TestPruneByValueType_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c := NewClassifier(ResolveTypeRef)

	for round := 0; round < 50; round++ {
		byValue := make(map[int]TypeRef)
		for ref, i := range randomRegistry(rng, rng.Intn(40)) {
			byValue[i] = ref
		}
		original := maps.Clone(byValue)

		PruneByValueType(byValue, c)

		for key, ref := range original {
			trusted := ref.Module == CoreModule || ref.Module == EditorModule
			_, ok := byValue[key]
			assert.Equal(t, trusted, ok, "round %d: %v", round, ref)
		}

		again := maps.Clone(byValue)
		PruneByValueType(again, c)
		assert.Equal(t, byValue, again)
	}
}
