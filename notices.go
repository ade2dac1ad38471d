package folio

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message shown to the author.
type Notice struct {
	ID        string     `json:"id"`
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Notices holds a workspace's pending notices. Expired entries are dropped
// lazily on every read or write.
type Notices struct {
	mu    sync.Mutex
	items map[string]Notice
	ttl   time.Duration
	now   func() time.Time
}

func NewNotices(ttl time.Duration) *Notices {
	return &Notices{items: make(map[string]Notice), ttl: ttl, now: time.Now}
}

// Add queues a notice and returns it.
func (n *Notices) Add(kind NoticeKind, msg string) Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	n.prune(now)
	nt := Notice{ID: uuid.NewString(), Kind: kind, Message: msg, ExpiresAt: now.Add(n.ttl)}
	n.items[nt.ID] = nt
	return nt
}

func (n *Notices) Success(msg string) Notice { return n.Add(NoticeSuccess, msg) }

func (n *Notices) Error(msg string) Notice { return n.Add(NoticeError, msg) }

// List returns the live notices, oldest expiry first.
func (n *Notices) List() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prune(n.now())
	out := make([]Notice, 0, len(n.items))
	for _, nt := range n.items {
		out = append(out, nt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExpiresAt.Equal(out[j].ExpiresAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ExpiresAt.Before(out[j].ExpiresAt)
	})
	return out
}

// Dismiss removes a notice. It reports false if the notice is gone.
func (n *Notices) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prune(n.now())
	_, ok := n.items[id]
	delete(n.items, id)
	return ok
}

func (n *Notices) prune(now time.Time) {
	for id, nt := range n.items {
		if !now.Before(nt.ExpiresAt) {
			delete(n.items, id)
		}
	}
}
