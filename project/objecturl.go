package project

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

const objectURLPrefix = "blob:folio/"

// ObjectURLs hands out temporary references to in-memory uploads so a
// preview can address them by URL. References live until revoked.
type ObjectURLs struct {
	mu   sync.RWMutex
	refs map[string]*Upload
}

func NewObjectURLs() *ObjectURLs {
	return &ObjectURLs{refs: make(map[string]*Upload)}
}

// Create mints a fresh reference for u. Every call returns a new reference,
// even for an upload seen before.
func (o *ObjectURLs) Create(u *Upload) string {
	ref := objectURLPrefix + uuid.NewString()
	o.mu.Lock()
	o.refs[ref] = u
	o.mu.Unlock()
	return ref
}

// Resolve returns the upload behind ref, if it is still live.
func (o *ObjectURLs) Resolve(ref string) (*Upload, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	u, ok := o.refs[ref]
	return u, ok
}

// Revoke releases ref. It reports whether ref was live.
func (o *ObjectURLs) Revoke(ref string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.refs[ref]; !ok {
		return false
	}
	delete(o.refs, ref)
	return true
}

// RevokeAll releases every live reference and returns how many there were.
func (o *ObjectURLs) RevokeAll() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := len(o.refs)
	o.refs = make(map[string]*Upload)
	return n
}

func (o *ObjectURLs) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.refs)
}

// IsObjectURL reports whether s looks like a reference minted by Create.
func IsObjectURL(s string) bool {
	return strings.HasPrefix(s, objectURLPrefix)
}

// ObjectKey strips the reference prefix, leaving a path-safe token.
func ObjectKey(ref string) string {
	return strings.TrimPrefix(ref, objectURLPrefix)
}

// ObjectRef is the inverse of ObjectKey.
func ObjectRef(key string) string {
	return objectURLPrefix + key
}
