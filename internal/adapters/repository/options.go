package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithChangeListener registers a callback invoked after every successful
// mutation, with the new store version. The app layer uses it to invalidate
// the result cache and poke the refresh loop.
func WithChangeListener(fn func(version uint64)) Option {
	return func(s *MemStore) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}
