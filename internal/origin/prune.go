package origin

// PruneByKeyType removes every entry of registry whose key is not owned by a
// trusted module. It returns the number of removed entries.
func PruneByKeyType[T comparable, V any](registry map[T]V, c *Classifier[T]) int {
	if len(registry) == 0 {
		return 0
	}

	var doomed []T
	for ty := range registry {
		if !c.Trusted(ty) {
			doomed = append(doomed, ty)
		}
	}

	for _, ty := range doomed {
		delete(registry, ty)
	}
	return len(doomed)
}

// PruneByValueType removes every entry of registry whose value is not owned
// by a trusted module. It returns the number of removed entries.
func PruneByValueType[K comparable, T any](registry map[K]T, c *Classifier[T]) int {
	if len(registry) == 0 {
		return 0
	}

	var doomed []K
	for key, ty := range registry {
		if !c.Trusted(ty) {
			doomed = append(doomed, key)
		}
	}

	for _, key := range doomed {
		delete(registry, key)
	}
	return len(doomed)
}
