package folio

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/folio/preview"
	"github.com/eringen/folio/project"
	"github.com/eringen/folio/render"
)

// ErrNotFound is returned when a workspace id is unknown or has expired.
var ErrNotFound = errors.New("folio: workspace not found")

// Workspace is one session's editable project. mu guards every field below
// it; the preview driver and notices carry their own locks and are always
// taken after mu.
type Workspace struct {
	ID string

	mu       sync.Mutex
	editor   *project.Editor
	apiKey   string
	artifact *render.Artifact
	genError string
	lastUsed time.Time
	notices  *Notices
	preview  *preview.Driver
}

// With runs fn holding the workspace lock.
func (ws *Workspace) With(fn func(e *project.Editor)) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	fn(ws.editor)
}

// Edit runs fn holding the workspace lock and, when it succeeds, reports the
// edit to the preview driver.
func (ws *Workspace) Edit(fn func(e *project.Editor) error) error {
	ws.mu.Lock()
	err := fn(ws.editor)
	ws.mu.Unlock()
	if err == nil {
		ws.preview.Touch()
	}
	return err
}

func (ws *Workspace) Snapshot() project.State {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.editor.Snapshot()
}

func (ws *Workspace) APIKey() string {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.apiKey
}

func (ws *Workspace) setAPIKey(key string) {
	ws.mu.Lock()
	ws.apiKey = key
	ws.mu.Unlock()
}

// Artifact returns the last assembled page, if any.
func (ws *Workspace) Artifact() (render.Artifact, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.artifact == nil {
		return render.Artifact{}, false
	}
	return *ws.artifact, true
}

func (ws *Workspace) setArtifact(a render.Artifact) {
	ws.mu.Lock()
	ws.artifact = &a
	ws.mu.Unlock()
}

// GenerationError is the inline message left by the last failed
// whole-project generation.
func (ws *Workspace) GenerationError() string {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.genError
}

func (ws *Workspace) setGenerationError(msg string) {
	ws.mu.Lock()
	ws.genError = msg
	ws.mu.Unlock()
}

// Upload resolves a temporary object reference key.
func (ws *Workspace) Upload(key string) (*project.Upload, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.editor.Objects().Resolve(project.ObjectRef(key))
}

// UploadNamed finds an attached upload of the given kind by file name, the
// way a rendered page addresses it.
func (ws *Workspace) UploadNamed(k project.Kind, name string) (*project.Upload, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for i := 0; i < ws.editor.Len(); i++ {
		b, _ := ws.editor.Block(i)
		if b.Kind() != k {
			continue
		}
		if m, ok := project.MediaOf(b); ok && m.Upload != nil && m.Upload.Name == name {
			return m.Upload, true
		}
	}
	return nil, false
}

func (ws *Workspace) Notices() *Notices { return ws.notices }

func (ws *Workspace) Preview() *preview.Driver { return ws.preview }

func (ws *Workspace) touch(now time.Time) {
	ws.mu.Lock()
	ws.lastUsed = now
	ws.mu.Unlock()
}

func (ws *Workspace) idleSince(now time.Time) time.Duration {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return now.Sub(ws.lastUsed)
}

func (ws *Workspace) close() {
	ws.preview.Close()
	ws.mu.Lock()
	ws.editor.Close()
	ws.mu.Unlock()
}

// Workspaces is the in-memory registry of live workspaces with an idle TTL.
type Workspaces struct {
	mu    sync.RWMutex
	items map[string]*Workspace
	ttl   time.Duration
	build func(id string) *Workspace
	now   func() time.Time
}

// NewWorkspaces creates a registry. build constructs a fresh workspace for a
// newly minted id.
func NewWorkspaces(ttl time.Duration, build func(id string) *Workspace) *Workspaces {
	return &Workspaces{
		items: make(map[string]*Workspace),
		ttl:   ttl,
		build: build,
		now:   time.Now,
	}
}

// Create mints a new workspace.
func (w *Workspaces) Create() *Workspace {
	ws := w.build(uuid.NewString())
	ws.touch(w.now())
	w.mu.Lock()
	w.items[ws.ID] = ws
	w.mu.Unlock()
	return ws
}

// Get returns the workspace with id and marks it used. Expired workspaces
// are closed and reported as missing.
func (w *Workspaces) Get(id string) (*Workspace, error) {
	ws, err := w.Peek(id)
	if err != nil {
		return nil, err
	}
	ws.touch(w.now())
	return ws, nil
}

// Peek is Get without refreshing the idle timer.
func (w *Workspaces) Peek(id string) (*Workspace, error) {
	w.mu.RLock()
	ws, ok := w.items[id]
	w.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if w.ttl > 0 && ws.idleSince(w.now()) >= w.ttl {
		w.remove(id)
		return nil, ErrNotFound
	}
	return ws, nil
}

func (w *Workspaces) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}

// Sweep closes every workspace idle for longer than the TTL and returns how
// many were removed.
func (w *Workspaces) Sweep() int {
	if w.ttl <= 0 {
		return 0
	}
	now := w.now()
	w.mu.RLock()
	var stale []string
	for id, ws := range w.items {
		if ws.idleSince(now) >= w.ttl {
			stale = append(stale, id)
		}
	}
	w.mu.RUnlock()

	n := 0
	for _, id := range stale {
		if w.remove(id) {
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep every interval until the returned func is called.
func (w *Workspaces) StartSweeper(interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = time.Minute
	}
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.Sweep()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Close tears down every workspace.
func (w *Workspaces) Close() {
	w.mu.Lock()
	items := w.items
	w.items = make(map[string]*Workspace)
	w.mu.Unlock()
	for _, ws := range items {
		ws.close()
	}
}

func (w *Workspaces) remove(id string) bool {
	w.mu.Lock()
	ws, ok := w.items[id]
	delete(w.items, id)
	w.mu.Unlock()
	if ok {
		ws.close()
	}
	return ok
}
