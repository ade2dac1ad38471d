package main

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio"
	"github.com/eringen/folio/project"
)

func TestMain(m *testing.M) {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg = folio.Config{MaxUploadSize: 1 << 20}
	os.Exit(m.Run())
}

func TestToTitle(t *testing.T) {
	tests := map[string]string{
		"my-app":       "My App",
		"myapp":        "Myapp",
		"my_cool-site": "My Cool Site",
		"--x--":        "X",
	}
	for in, want := range tests {
		assert.Equal(t, want, toTitle(in), in)
	}
}

func TestRunNew(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, runNew("my-site"))
	for _, f := range []string{".env.example", "folio.yaml", "README.md", "media/.gitkeep", "project.json"} {
		assert.FileExists(t, filepath.Join("my-site", f))
	}

	readme, err := os.ReadFile(filepath.Join("my-site", "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# My Site")

	data, err := os.ReadFile(filepath.Join("my-site", "project.json"))
	require.NoError(t, err)
	s, err := project.Import(data)
	require.NoError(t, err)
	assert.Equal(t, "My Site", s.Form.Name)
	assert.Empty(t, project.Validate(s))

	assert.Error(t, runNew("my-site"), "existing directory must not be overwritten")
}

func pngFile(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// writeDoc saves a project with one text block, an uploaded image and an
// uploaded video whose file is never provided.
func writeDoc(t *testing.T, dir string) string {
	t.Helper()
	e := project.NewEditor(project.NewState())
	defer e.Close()
	_, _ = e.Append(project.KindText)
	require.NoError(t, e.Update(0, "content", "Intro."))
	_, _ = e.Append(project.KindImage)
	require.NoError(t, e.SetSource(1, project.SourceUpload))
	_, err := e.Attach(1, &project.Upload{Name: "shot.png", Data: []byte("x")})
	require.NoError(t, err)
	_, _ = e.Append(project.KindVideo)
	require.NoError(t, e.SetSource(2, project.SourceUpload))
	_, err = e.Attach(2, &project.Upload{Name: "missing.mp4", Data: []byte("x")})
	require.NoError(t, err)

	data, err := project.Export(e.Snapshot())
	require.NoError(t, err)
	path := filepath.Join(dir, "project.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadProjectReattachesUploads(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "media")
	require.NoError(t, os.Mkdir(media, 0o755))
	pngFile(t, filepath.Join(media, "shot.png"))
	path := writeDoc(t, dir)

	s, err := loadProject(path, media)
	require.NoError(t, err)
	require.Len(t, s.Blocks, 2, "video without a file is dropped")

	img, ok := s.Blocks[1].(*project.ImageBlock)
	require.True(t, ok)
	require.NotNil(t, img.Upload)
	assert.Equal(t, "image/png", img.Upload.ContentType)
	assert.Equal(t, 3, img.Upload.Width)
	assert.Equal(t, 2, img.Upload.Height)

	b, err := build(s)
	require.NoError(t, err)
	require.Len(t, b.Images, 1)
	assert.Empty(t, b.Videos)
	assert.Contains(t, b.HTML, "assets/images/shot.png")
	assert.Contains(t, b.HTML, "Intro.")
}

func TestLoadProjectWithoutMediaDir(t *testing.T) {
	path := writeDoc(t, t.TempDir())
	s, err := loadProject(path, "")
	require.NoError(t, err)
	require.Len(t, s.Blocks, 1)
	assert.Equal(t, project.KindText, s.Blocks[0].Kind())
}

func TestBuildRejectsInvalidProject(t *testing.T) {
	s := project.NewState()
	s.Form.Name = ""
	_, err := build(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projectName")
}

func TestRenderCommandWritesLayout(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir)
	out := filepath.Join(dir, "site")

	rootCmd.SetArgs([]string{"render", path, "-o", out})
	require.NoError(t, rootCmd.Execute())

	for _, f := range []string{"index.html", "assets/css/style.css", "assets/css/code-snippets.css", "assets/js/script.js"} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(f)))
	}
}
