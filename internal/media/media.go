package media

import "io"

// Store holds binary assets referenced by question statements, keyed by
// a relative path like "questions/<uuid>.png".
type Store interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}
