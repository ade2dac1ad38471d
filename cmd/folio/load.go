package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eringen/folio"
	"github.com/eringen/folio/export"
	"github.com/eringen/folio/project"
	"github.com/eringen/folio/render"
)

// loadProject reads an interchange document. Upload-mode media blocks get
// their file back from mediaDir by name; blocks whose file cannot be found
// are dropped with a warning.
func loadProject(path, mediaDir string) (project.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return project.State{}, err
	}
	s, err := project.Import(data)
	if err != nil {
		return project.State{}, fmt.Errorf("%s: %w", path, err)
	}

	ed := project.NewEditor(s)
	defer ed.Close()
	for i, pos := 0, 1; i < ed.Len(); pos++ {
		b, _ := ed.Block(i)
		m, ok := project.MediaOf(b)
		if !ok || m.Source != project.SourceUpload {
			i++
			continue
		}
		u, err := reattach(mediaDir, m.FileName, b.Kind())
		if err == nil {
			if _, err := ed.Attach(i, u); err != nil {
				return project.State{}, err
			}
			i++
			continue
		}
		logger.Warn("skipping upload block", "block", pos, "type", b.Kind(), "file", m.FileName, "reason", err)
		if err := ed.Remove(i); err != nil {
			return project.State{}, err
		}
	}
	return ed.Snapshot(), nil
}

func reattach(dir, name string, kind project.Kind) (*project.Upload, error) {
	if dir == "" {
		return nil, fmt.Errorf("no --media directory")
	}
	if name == "" {
		return nil, fmt.Errorf("no file name recorded")
	}
	f, err := os.Open(filepath.Join(dir, export.SafeName(name)))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return folio.Intake(f, name, kind, cfg.MaxUploadSize)
}

// build validates s and assembles it into a bundle.
func build(s project.State) (export.Bundle, error) {
	if errs := project.Validate(s); errs != nil {
		for _, k := range errs.Keys() {
			logger.Error("invalid project", "field", k, "message", errs[k])
		}
		return export.Bundle{}, fmt.Errorf("project has %d validation error(s): %s", len(errs), strings.Join(errs.Keys(), ", "))
	}
	art, err := render.Page(s, render.Options{})
	if err != nil {
		return export.Bundle{}, err
	}
	return export.NewBundle(art, s.Blocks), nil
}
