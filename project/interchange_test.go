package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	e := NewEditor(validState())
	e.SetAutoFill(true)
	_, _ = e.Append(KindText)
	_, _ = e.Append(KindImage)
	_, _ = e.Append(KindVideo)
	_, _ = e.Append(KindCode)
	_, _ = e.Append(KindVideo)
	require.NoError(t, e.Update(0, "content", "Intro."))
	require.NoError(t, e.Update(1, "url", "https://example.com/a.png"))
	require.NoError(t, e.Update(1, "alt", "A"))
	require.NoError(t, e.Update(2, "url", "https://youtu.be/dQw4w9WgXcQ"))
	require.NoError(t, e.Update(3, "code", "fmt.Println()"))
	require.NoError(t, e.SetSource(4, SourceUpload))
	_, err := e.Attach(4, &Upload{Name: "clip.mp4", Data: []byte("v")})
	require.NoError(t, err)

	orig := e.Snapshot()
	data, err := Export(orig)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"uploadedFile": "clip.mp4"`)
	assert.NotContains(t, string(data), "blob:")

	got, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, orig.Form, got.Form)
	assert.Equal(t, orig.Theme, got.Theme)
	assert.True(t, got.AutoFillCode)
	require.Len(t, got.Blocks, len(orig.Blocks))
	for i := range orig.Blocks[:4] {
		assert.Equal(t, orig.Blocks[i], got.Blocks[i])
	}

	vid := got.Blocks[4].(*VideoBlock)
	assert.Equal(t, orig.Blocks[4].BlockID(), vid.ID)
	assert.Equal(t, SourceUpload, vid.Source)
	assert.Nil(t, vid.Upload)
	assert.Empty(t, vid.URL)
	assert.Equal(t, "clip.mp4", vid.FileName)
}

func TestImportDefaultsMissingKeys(t *testing.T) {
	s, err := Import([]byte(`{"projectName":"Only Name"}`))
	require.NoError(t, err)
	want := DefaultForm()
	want.Name = "Only Name"
	assert.Equal(t, want, s.Form)
	assert.Equal(t, DefaultTheme(), s.Theme)
	assert.Empty(t, s.Blocks)
}

func TestImportNumericAndDuplicateIDs(t *testing.T) {
	s, err := Import([]byte(`{"contentBlocks":[
		{"id":1717000000000,"type":"text","content":"a"},
		{"id":1717000000000,"type":"image","sourceType":"upload","url":"blob:http://x/y","uploadedFile":null},
		{"type":"code","language":"go"}
	]}`))
	require.NoError(t, err)
	require.Len(t, s.Blocks, 3)
	assert.Equal(t, "1717000000000", s.Blocks[0].BlockID())
	assert.NotEqual(t, s.Blocks[0].BlockID(), s.Blocks[1].BlockID())
	assert.NotEmpty(t, s.Blocks[2].BlockID())

	img := s.Blocks[1].(*ImageBlock)
	assert.Empty(t, img.URL)
	assert.Nil(t, img.Upload)
}

func TestImportRejectsBrokenDocuments(t *testing.T) {
	for _, doc := range []string{
		`{"projectName": "x"`,
		`{"contentBlocks":[{"type":"carousel"}]}`,
		`{"contentBlocks":[{"type":"image","sourceType":"youtube"}]}`,
	} {
		_, err := Import([]byte(doc))
		assert.ErrorIs(t, err, ErrInterchange, doc)
	}
}
