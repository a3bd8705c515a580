package blob

import "context"

// Client is the versioned byte-storage abstraction the record store is built
// on. A blob is an opaque payload stored at a path and versioned as a whole;
// the version token is an opaque marker used for conditional writes.
type Client interface {
	// Get fetches the current content and version token for a path.
	// A path that has never been written fails with ErrNotFound.
	Get(ctx context.Context, path string) (content []byte, version string, err error)

	// Put writes content at a path. An empty expectedVersion means
	// create-only: the write fails with a conflict if the path already
	// exists. A non-empty expectedVersion must match the store's current
	// version or the write fails with a conflict. On success Put returns
	// the new version token. The message describes the write for stores
	// that keep history.
	Put(ctx context.Context, path string, content []byte, expectedVersion, message string) (newVersion string, err error)
}
