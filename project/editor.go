package project

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Direction is a one-step move within the block list.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Editor owns a State and performs every block mutation on it. It is not
// safe for concurrent use; callers serialize access.
type Editor struct {
	state  State
	urls   *ObjectURLs
	scroll string
}

// NewEditor takes ownership of s. Attached uploads get fresh references.
func NewEditor(s State) *Editor {
	e := &Editor{urls: NewObjectURLs()}
	e.install(s)
	return e
}

func (e *Editor) install(s State) {
	for _, b := range s.Blocks {
		if m, ok := MediaOf(b); ok && m.Source == SourceUpload && m.Upload != nil {
			m.URL = e.urls.Create(m.Upload)
		}
	}
	e.state = s
	e.scroll = ""
}

// Replace swaps in a new state, releasing every reference held by the old.
func (e *Editor) Replace(s State) {
	e.urls.RevokeAll()
	e.install(s)
}

// Snapshot returns a copy of the current state.
func (e *Editor) Snapshot() State { return e.state.Clone() }

// Objects exposes the reference registry for resolving preview media.
func (e *Editor) Objects() *ObjectURLs { return e.urls }

func (e *Editor) Len() int { return len(e.state.Blocks) }

// Block returns a copy of the block at index.
func (e *Editor) Block(index int) (Block, error) {
	if err := e.check(index); err != nil {
		return nil, err
	}
	return e.state.Blocks[index].clone(), nil
}

// IndexOf returns the current position of the block with id, or -1.
func (e *Editor) IndexOf(id string) int {
	for i, b := range e.state.Blocks {
		if b.BlockID() == id {
			return i
		}
	}
	return -1
}

func (e *Editor) SetField(key, value string) error {
	return e.state.SetField(key, value)
}

func (e *Editor) SetAutoFill(on bool) { e.state.AutoFillCode = on }

// UpdateForm applies fn to the form in place.
func (e *Editor) UpdateForm(fn func(*Form)) { fn(&e.state.Form) }

// UpdateCode applies fn to the code block with id. It reports false when the
// block no longer exists.
func (e *Editor) UpdateCode(id string, fn func(*CodeBlock)) bool {
	i := e.IndexOf(id)
	if i < 0 {
		return false
	}
	cb, ok := e.state.Blocks[i].(*CodeBlock)
	if !ok {
		return false
	}
	fn(cb)
	return true
}

// Append adds an empty block of kind k at the end and marks it as the
// scroll target.
func (e *Editor) Append(k Kind) (Block, error) {
	b, err := NewBlock(k, uuid.NewString())
	if err != nil {
		return nil, err
	}
	e.state.Blocks = append(e.state.Blocks, b)
	e.scroll = b.BlockID()
	return b.clone(), nil
}

// Update sets one field of the block at index. Field names are the
// interchange keys.
func (e *Editor) Update(index int, field, value string) error {
	if err := e.check(index); err != nil {
		return err
	}
	if field == "sourceType" {
		return e.SetSource(index, Source(value))
	}
	switch b := e.state.Blocks[index].(type) {
	case *TextBlock:
		if field == "content" {
			b.Content = value
			return nil
		}
	case *ImageBlock:
		switch field {
		case "url":
			return setURL(&b.Media, value)
		case "alt":
			b.Alt = value
			return nil
		case "caption":
			b.Caption = value
			return nil
		}
	case *VideoBlock:
		switch field {
		case "url":
			return setURL(&b.Media, value)
		case "caption":
			b.Caption = value
			return nil
		}
	case *CodeBlock:
		switch field {
		case "language":
			b.Language = value
			return nil
		case "code":
			b.Code = value
			return nil
		case "description":
			b.Description = value
			return nil
		}
	}
	return fmt.Errorf("%w: %q for %s block", ErrUnknownField, field, e.state.Blocks[index].Kind())
}

// In upload mode the URL is owned by Attach.
func setURL(m *Media, value string) error {
	if m.Source == SourceUpload {
		return fmt.Errorf("%w: url is set by upload", ErrInvalidSource)
	}
	m.URL = value
	return nil
}

// SetSource switches a media block's source mode. Any URL or upload is
// cleared and its reference released.
func (e *Editor) SetSource(index int, src Source) error {
	if err := e.check(index); err != nil {
		return err
	}
	b := e.state.Blocks[index]
	m, ok := MediaOf(b)
	if !ok {
		return ErrNotMedia
	}
	if !ValidSource(b.Kind(), src) {
		return fmt.Errorf("%w: %q for %s block", ErrInvalidSource, src, b.Kind())
	}
	e.release(m)
	m.reset(src)
	return nil
}

// Attach stores u on an upload-mode media block and returns the new
// reference. The previous reference is released first.
func (e *Editor) Attach(index int, u *Upload) (string, error) {
	if err := e.check(index); err != nil {
		return "", err
	}
	m, ok := MediaOf(e.state.Blocks[index])
	if !ok {
		return "", ErrNotMedia
	}
	if m.Source != SourceUpload {
		return "", ErrNotUploadMode
	}
	e.release(m)
	ref := e.urls.Create(u)
	m.URL = ref
	m.Upload = u
	m.FileName = u.Name
	return ref, nil
}

// Remove deletes the block at index after releasing its reference.
func (e *Editor) Remove(index int) error {
	if err := e.check(index); err != nil {
		return err
	}
	if m, ok := MediaOf(e.state.Blocks[index]); ok {
		e.release(m)
	}
	// The vacated tail slot must not keep the removed upload reachable.
	e.state.Blocks = slices.Delete(e.state.Blocks, index, index+1)
	return nil
}

// Move swaps the block at index with its neighbour. Moving past either end
// is a no-op and reports false.
func (e *Editor) Move(index int, dir Direction) (bool, error) {
	if err := e.check(index); err != nil {
		return false, err
	}
	var target int
	switch dir {
	case Up:
		target = index - 1
	case Down:
		target = index + 1
	default:
		return false, ErrDirection
	}
	if target < 0 || target >= len(e.state.Blocks) {
		return false, nil
	}
	bs := e.state.Blocks
	bs[index], bs[target] = bs[target], bs[index]
	e.scroll = bs[target].BlockID()
	return true, nil
}

// TakeScrollTarget returns the block to bring into view after the last
// append or move. The signal is consumed.
func (e *Editor) TakeScrollTarget() (string, bool) {
	id := e.scroll
	e.scroll = ""
	return id, id != ""
}

// Close releases every reference. The editor stays usable.
func (e *Editor) Close() {
	e.urls.RevokeAll()
}

func (e *Editor) release(m *Media) {
	if IsObjectURL(m.URL) {
		e.urls.Revoke(m.URL)
	}
}

func (e *Editor) check(index int) error {
	if index < 0 || index >= len(e.state.Blocks) {
		return fmt.Errorf("%w: %d (have %d)", ErrBlockIndex, index, len(e.state.Blocks))
	}
	return nil
}
