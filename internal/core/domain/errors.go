package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID indicates a document with the same identifier
	// already exists in the metadata store.
	ErrDuplicateID = errors.New("duplicate document identifier")

	// ErrStorageUnavailable indicates the metadata store cannot be
	// reached (closed connection, unreachable file, corrupt database).
	ErrStorageUnavailable = errors.New("metadata store unavailable")

	// ErrDocumentPersist indicates a document could not be durably
	// persisted. The in-memory buffer is left untouched when this
	// is returned.
	ErrDocumentPersist = errors.New("document persist failed")

	// ErrInvalidChunkConfig indicates an invalid chunk size/overlap
	// combination. Overlap must satisfy 0 <= overlap < size.
	ErrInvalidChunkConfig = errors.New("invalid chunk configuration")

	// ErrIndexBuild indicates the vector index could not be built.
	// The previous index, if any, remains in effect.
	ErrIndexBuild = errors.New("index build failed")

	// ErrIndexNotBuilt indicates a search ran before any successful
	// index build. Only returned under UnindexedReturnError policy.
	ErrIndexNotBuilt = errors.New("index not built")

	// ErrInvalidQuery indicates a malformed search request,
	// e.g. a non-positive top-k.
	ErrInvalidQuery = errors.New("invalid query")
)
