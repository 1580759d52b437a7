package weburl

import (
	"sync"

	"github.com/google/uuid"

	"github.com/netic-go/weburl/urlparser"
)

// BlobHandle is an opaque handle identifying one blob URL store entry,
// backed by a UUID the way the teacher's request-id middleware
// (muxhandlers/requestid.go) mints opaque per-request identifiers.
type BlobHandle struct {
	id uuid.UUID
}

// String returns the handle's UUID form.
func (h BlobHandle) String() string {
	return h.id.String()
}

// BlobResolver is the pluggable hook spec.md §9 calls for in place of full
// Blob URL resolution: given a blob: URL record, it returns the URL it was
// created from (the entry's origin-bearing URL), and whether an entry was
// found.
type BlobResolver func(u *urlparser.URL) (*urlparser.URL, bool)

// BlobStore is a minimal in-memory blob URL entry table: a map from
// BlobHandle to the URL the entry was created from, guarded by a mutex
// since callers may register and resolve from multiple goroutines.
type BlobStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*urlparser.URL
}

// NewBlobStore returns an empty BlobStore.
func NewBlobStore() *BlobStore {
	return &BlobStore{entries: make(map[uuid.UUID]*urlparser.URL)}
}

// Register creates a new entry for creatorURL and returns its handle. The
// handle's string form is what a real "createObjectURL" would embed in the
// blob: URL's path; this module does not mint the blob: URL string itself,
// since that is outside spec.md's scope.
func (s *BlobStore) Register(creatorURL *URL) BlobHandle {
	h := BlobHandle{id: uuid.New()}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[h.id] = creatorURL.record
	return h
}

// Revoke removes h's entry, matching "revokeObjectURL".
func (s *BlobStore) Revoke(h BlobHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, h.id)
}

// Resolver returns a BlobResolver backed by this store, suitable for
// URL.SetBlobResolver. The blob: URL's path is interpreted as a UUID and
// looked up directly.
func (s *BlobStore) Resolver() BlobResolver {
	return func(u *urlparser.URL) (*urlparser.URL, bool) {
		if len(u.Path) == 0 {
			return nil, false
		}
		id, err := uuid.Parse(u.Path[0])
		if err != nil {
			return nil, false
		}
		s.mu.RLock()
		defer s.mu.RUnlock()
		entry, ok := s.entries[id]
		return entry, ok
	}
}
