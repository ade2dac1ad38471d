package export

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/project"
	"github.com/eringen/folio/render"
)

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = string(b)
	}
	return out
}

func keys(m map[string]string) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestWriteLayout(t *testing.T) {
	blocks := []project.Block{
		&project.TextBlock{ID: "t"},
		&project.ImageBlock{ID: "i", Media: project.Media{Source: project.SourceUpload, Upload: &project.Upload{Name: "shot.png", Data: []byte("png")}}},
		&project.ImageBlock{ID: "u", Media: project.Media{Source: project.SourceURL, URL: "https://e.com/a.png"}},
		&project.VideoBlock{ID: "v", Media: project.Media{Source: project.SourceUpload, Upload: &project.Upload{Name: "clip.mp4", Data: []byte("mp4")}}},
		&project.VideoBlock{ID: "w", Media: project.Media{Source: project.SourceUpload}},
	}
	b := NewBundle(render.Artifact{HTML: "<html></html>", CSS: "body{}"}, blocks)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, b))
	files := readZip(t, buf.Bytes())

	assert.Equal(t, []string{
		"assets/css/code-snippets.css",
		"assets/css/style.css",
		"assets/images/shot.png",
		"assets/js/script.js",
		"assets/videos/clip.mp4",
		"index.html",
	}, keys(files))
	assert.Equal(t, "<html></html>", files["index.html"])
	assert.Equal(t, "body{}", files["assets/css/style.css"])
	assert.Equal(t, render.Script(), files["assets/js/script.js"])
	assert.Equal(t, "png", files["assets/images/shot.png"])
}

func TestWriteSanitizesNames(t *testing.T) {
	b := Bundle{Images: []File{{Name: "../../etc/passwd", Data: []byte("x")}, {Name: `C:\pics\a.png`, Data: []byte("y")}}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, b))
	files := readZip(t, buf.Bytes())
	assert.Contains(t, files, "assets/images/passwd")
	assert.Contains(t, files, "assets/images/a.png")
}

func TestWriteFileLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, ArchiveName("My Site"))
	require.NoError(t, WriteFile(dst, Bundle{HTML: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "my-site-export.zip", entries[0].Name())

	err = WriteFile(filepath.Join(dir, "missing", "out.zip"), Bundle{})
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "my-awesome-project-export.zip", ArchiveName("My Awesome Project"))
	assert.Equal(t, "c-app-export.zip", ArchiveName("  C++ App! "))
	assert.Equal(t, "project-export.zip", ArchiveName(""))
	assert.Equal(t, "project-project-data.json", DataName("!!!"))
	assert.Equal(t, "folio-project-data.json", DataName("Folio"))
}

func TestWriteDirMirrorsArchive(t *testing.T) {
	dir := t.TempDir()
	b := Bundle{HTML: "<p>hi</p>", CSS: "p{}", Images: []File{{Name: "a.png", Data: []byte("png")}}}
	require.NoError(t, WriteDir(dir, b))

	got, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "assets", "images", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(got))
	assert.FileExists(t, filepath.Join(dir, "assets", "css", "style.css"))
}
