// Package export packages an assembled page and its uploads as a zip
// archive.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/eringen/folio/project"
	"github.com/eringen/folio/render"
)

// File is one uploaded asset.
type File struct {
	Name string
	Data []byte
}

// Bundle is everything written into an archive.
type Bundle struct {
	HTML            string
	CSS             string
	Script          string
	CodeSnippetsCSS string
	Images          []File
	Videos          []File
}

// NewBundle pairs an artifact with the static assets and the uploads held
// by upload-mode media blocks.
func NewBundle(a render.Artifact, blocks []project.Block) Bundle {
	b := Bundle{
		HTML:            a.HTML,
		CSS:             a.CSS,
		Script:          render.Script(),
		CodeSnippetsCSS: render.CodeSnippetsCSS(),
	}
	for _, blk := range blocks {
		m, ok := project.MediaOf(blk)
		if !ok || m.Source != project.SourceUpload || m.Upload == nil {
			continue
		}
		f := File{Name: m.Upload.Name, Data: m.Upload.Data}
		switch blk.Kind() {
		case project.KindImage:
			b.Images = append(b.Images, f)
		case project.KindVideo:
			b.Videos = append(b.Videos, f)
		}
	}
	return b
}

type entry struct {
	name string
	data []byte
}

// entries lists every file in archive order. Uploads sharing a name are
// written once.
func (b Bundle) entries() []entry {
	out := []entry{
		{"index.html", []byte(b.HTML)},
		{"assets/js/script.js", []byte(b.Script)},
		{"assets/css/style.css", []byte(b.CSS)},
		{"assets/css/code-snippets.css", []byte(b.CodeSnippetsCSS)},
	}
	seen := map[string]bool{}
	for _, group := range []struct {
		dir   string
		files []File
	}{{render.ImageDir, b.Images}, {render.VideoDir, b.Videos}} {
		for _, f := range group.files {
			name := path.Join(group.dir, SafeName(f.Name))
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, entry{name, f.Data})
		}
	}
	return out
}

// Write streams the archive to w.
func Write(w io.Writer, b Bundle) error {
	zw := zip.NewWriter(w)
	for _, e := range b.entries() {
		fw, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("export: create %s: %w", e.name, err)
		}
		if _, err := fw.Write(e.data); err != nil {
			return fmt.Errorf("export: write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("export: finish archive: %w", err)
	}
	return nil
}

// WriteDir lays the bundle out under dir with the same paths as the archive.
func WriteDir(dir string, b Bundle) error {
	for _, e := range b.entries() {
		dst := filepath.Join(dir, filepath.FromSlash(e.name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := os.WriteFile(dst, e.data, 0o644); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

// WriteFile writes the archive to dst through a temp file in the same
// directory, so a failed export never leaves a partial archive behind.
func WriteFile(dst string, b Bundle) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".folio-export-*.zip")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = Write(tmp, b); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// ArchiveName is the download name for a project's archive.
func ArchiveName(projectName string) string {
	return slugOr(projectName) + "-export.zip"
}

// DataName is the download name for a project's interchange document.
func DataName(projectName string) string {
	return slugOr(projectName) + "-project-data.json"
}

func slugOr(name string) string {
	if s := Slugify(name); s != "" {
		return s
	}
	return "project"
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SafeName reduces an uploaded filename to its base name.
func SafeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." {
		return "file"
	}
	return name
}
