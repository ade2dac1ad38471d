package project

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(e *Editor) []string {
	var out []string
	for _, b := range e.Snapshot().Blocks {
		out = append(out, b.BlockID())
	}
	return out
}

func TestAppendDefaults(t *testing.T) {
	e := NewEditor(NewState())
	img, err := e.Append(KindImage)
	require.NoError(t, err)
	vid, err := e.Append(KindVideo)
	require.NoError(t, err)

	assert.Equal(t, SourceURL, img.(*ImageBlock).Source)
	assert.Equal(t, SourceYouTube, vid.(*VideoBlock).Source)
	assert.NotEqual(t, img.BlockID(), vid.BlockID())

	_, err = e.Append("gallery")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, 2, e.Len())
}

func TestScrollTargetConsumedOnce(t *testing.T) {
	e := NewEditor(NewState())
	b, _ := e.Append(KindText)

	id, ok := e.TakeScrollTarget()
	require.True(t, ok)
	assert.Equal(t, b.BlockID(), id)

	_, ok = e.TakeScrollTarget()
	assert.False(t, ok)

	// Unrelated edits do not raise the signal.
	require.NoError(t, e.Update(0, "content", "hi"))
	_, ok = e.TakeScrollTarget()
	assert.False(t, ok)
}

func TestUpdate(t *testing.T) {
	e := NewEditor(NewState())
	_, _ = e.Append(KindCode)

	require.NoError(t, e.Update(0, "language", "go"))
	require.NoError(t, e.Update(0, "code", "package main"))
	b, _ := e.Block(0)
	assert.Equal(t, "go", b.(*CodeBlock).Language)

	assert.ErrorIs(t, e.Update(0, "caption", "x"), ErrUnknownField)
	assert.ErrorIs(t, e.Update(3, "code", "x"), ErrBlockIndex)
	assert.ErrorIs(t, e.Update(-1, "code", "x"), ErrBlockIndex)
}

func TestSourceSwitchReleasesReference(t *testing.T) {
	e := NewEditor(NewState())
	_, _ = e.Append(KindImage)
	require.NoError(t, e.Update(0, "sourceType", "upload"))

	ref, err := e.Attach(0, &Upload{Name: "a.png", Data: []byte{1}})
	require.NoError(t, err)
	_, live := e.Objects().Resolve(ref)
	require.True(t, live)

	require.NoError(t, e.SetSource(0, SourceURL))
	_, live = e.Objects().Resolve(ref)
	assert.False(t, live)

	b, _ := e.Block(0)
	img := b.(*ImageBlock)
	assert.Empty(t, img.URL)
	assert.Nil(t, img.Upload)

	assert.ErrorIs(t, e.SetSource(0, SourceYouTube), ErrInvalidSource)
}

func TestAttachReplacesReference(t *testing.T) {
	e := NewEditor(NewState())
	_, _ = e.Append(KindVideo)

	_, err := e.Attach(0, &Upload{Name: "a.mp4"})
	require.ErrorIs(t, err, ErrNotUploadMode)

	require.NoError(t, e.SetSource(0, SourceUpload))
	first, err := e.Attach(0, &Upload{Name: "a.mp4"})
	require.NoError(t, err)
	second, err := e.Attach(0, &Upload{Name: "b.mp4"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, e.Objects().Len())
	_, live := e.Objects().Resolve(first)
	assert.False(t, live)
}

func TestRemoveReleasesAndReaddDoesNotCollide(t *testing.T) {
	e := NewEditor(NewState())
	_, _ = e.Append(KindText)
	_, _ = e.Append(KindImage)
	_, _ = e.Append(KindCode)
	require.NoError(t, e.SetSource(1, SourceUpload))

	up := &Upload{Name: "same.png", Data: []byte("x")}
	ref, err := e.Attach(1, up)
	require.NoError(t, err)

	before := ids(e)
	require.NoError(t, e.Remove(1))
	assert.Equal(t, []string{before[0], before[2]}, ids(e))
	assert.Zero(t, e.Objects().Len())

	_, _ = e.Append(KindImage)
	require.NoError(t, e.SetSource(2, SourceUpload))
	again, err := e.Attach(2, up)
	require.NoError(t, err)
	assert.NotEqual(t, ref, again)
	_, live := e.Objects().Resolve(again)
	assert.True(t, live)

	assert.ErrorIs(t, e.Remove(5), ErrBlockIndex)
}

func TestRemoveDropsBlockFromBackingArray(t *testing.T) {
	e := NewEditor(NewState())
	_, _ = e.Append(KindImage)
	_, _ = e.Append(KindText)
	require.NoError(t, e.SetSource(0, SourceUpload))
	_, err := e.Attach(0, &Upload{Name: "big.png", Data: make([]byte, 1024)})
	require.NoError(t, err)

	full := e.state.Blocks[:len(e.state.Blocks)]
	require.NoError(t, e.Remove(0))
	require.Len(t, e.state.Blocks, 1)
	assert.Equal(t, KindText, e.state.Blocks[0].Kind())
	assert.Nil(t, full[1], "vacated slot still references a removed block")
}

func TestMove(t *testing.T) {
	e := NewEditor(NewState())
	for i := 0; i < 4; i++ {
		_, _ = e.Append(KindText)
	}
	_, _ = e.TakeScrollTarget()
	orig := ids(e)

	moved, err := e.Move(0, Up)
	require.NoError(t, err)
	assert.False(t, moved)
	moved, err = e.Move(3, Down)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, orig, ids(e))
	_, ok := e.TakeScrollTarget()
	assert.False(t, ok)

	moved, err = e.Move(1, Down)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{orig[0], orig[2], orig[1], orig[3]}, ids(e))

	id, ok := e.TakeScrollTarget()
	assert.True(t, ok)
	assert.Equal(t, orig[1], id)

	_, err = e.Move(1, "sideways")
	assert.True(t, errors.Is(err, ErrDirection))
}

func TestCloseRevokesAll(t *testing.T) {
	e := NewEditor(NewState())
	for i := 0; i < 3; i++ {
		_, _ = e.Append(KindImage)
		require.NoError(t, e.SetSource(i, SourceUpload))
		_, err := e.Attach(i, &Upload{Name: "f.png"})
		require.NoError(t, err)
	}
	require.Equal(t, 3, e.Objects().Len())
	e.Close()
	assert.Zero(t, e.Objects().Len())
}

func TestSnapshotIsolated(t *testing.T) {
	e := NewEditor(NewState())
	_, _ = e.Append(KindText)
	snap := e.Snapshot()
	snap.Blocks[0].(*TextBlock).Content = "changed"
	snap.Form.Name = "changed"

	b, _ := e.Block(0)
	assert.Empty(t, b.(*TextBlock).Content)
	assert.Equal(t, "My Awesome Project", e.Snapshot().Form.Name)
}

func TestSetField(t *testing.T) {
	e := NewEditor(NewState())
	require.NoError(t, e.SetField("projectName", "Folio"))
	require.NoError(t, e.SetField("primaryColor", "#000000"))
	assert.ErrorIs(t, e.SetField("nope", "x"), ErrUnknownField)

	s := e.Snapshot()
	assert.Equal(t, "Folio", s.Form.Name)
	assert.Equal(t, "#000000", s.Theme.Primary)
}
