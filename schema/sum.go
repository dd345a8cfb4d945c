package schema

// TryUnmarshal attempts Unmarshal against each factory in order, returning
// the first one that decodes without error. This is the schema layer's
// answer to sum-shaped data, such as a "blocks" compound whose fields vary
// across Minecraft versions: the caller supplies one zero-value constructor
// per known shape and gets back whichever one actually matched.
func TryUnmarshal[T any](data []byte, factories []func() T, opts ...Option) (T, error) {
	var lastErr error

	for _, factory := range factories {
		target := factory()
		if err := Unmarshal(data, &target, opts...); err != nil {
			lastErr = err

			continue
		}

		return target, nil
	}

	var zero T

	return zero, lastErr
}
