package folio

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/export"
	"github.com/eringen/folio/project"
	"github.com/eringen/folio/render"
)

const maxImportSize = 4 << 20

func (a *App) handleProjectExport(c echo.Context) error {
	ws := CurrentWorkspace(c)
	data, err := project.Export(ws.Snapshot())
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

func (a *App) handleProjectDownload(c echo.Context) error {
	ws := CurrentWorkspace(c)
	s := ws.Snapshot()
	data, err := project.Export(s)
	if err != nil {
		return a.fail(c, http.StatusInternalServerError, "Failed to export project data.", err)
	}
	ws.Notices().Success("Project data exported successfully!")
	return attachment(c, export.DataName(s.Form.Name), echo.MIMEApplicationJSON, data)
}

// handleProjectImport accepts the interchange document either as the raw
// body or as a multipart "file". A document that fails to load leaves the
// workspace untouched.
func (a *App) handleProjectImport(c echo.Context) error {
	ws := CurrentWorkspace(c)
	data, err := importBody(c)
	if err != nil {
		return a.fail(c, http.StatusBadRequest, "Failed to import data: Invalid JSON file.", err)
	}
	s, err := project.Import(data)
	if err != nil {
		return a.fail(c, http.StatusBadRequest, "Failed to import data: Invalid JSON file.", err)
	}
	_ = ws.Edit(func(e *project.Editor) error {
		e.Replace(s)
		ws.artifact = nil
		return nil
	})
	ws.Notices().Success("Project data imported successfully!")
	return c.JSON(http.StatusOK, a.view(ws))
}

func importBody(c echo.Context) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > maxImportSize {
			return nil, fmt.Errorf("import of %d bytes exceeds limit", fh.Size)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImportSize {
		return nil, fmt.Errorf("import exceeds %d bytes", maxImportSize)
	}
	return data, nil
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (a *App) handleSetField(c echo.Context) error {
	ws := CurrentWorkspace(c)
	var req fieldRequest
	if err := c.Bind(&req); err != nil {
		return a.fail(c, http.StatusBadRequest, "Invalid request.", err)
	}
	err := ws.Edit(func(e *project.Editor) error {
		return e.SetField(req.Field, req.Value)
	})
	if err != nil {
		return a.blockFailure(c, err)
	}
	return c.JSON(http.StatusOK, a.view(ws))
}

type settingsRequest struct {
	APIKey       *string `json:"apiKey"`
	AutoFillCode *bool   `json:"autoFillCode"`
}

func (a *App) handleSettings(c echo.Context) error {
	ws := CurrentWorkspace(c)
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return a.fail(c, http.StatusBadRequest, "Invalid request.", err)
	}
	if req.APIKey != nil {
		ws.setAPIKey(*req.APIKey)
	}
	if req.AutoFillCode != nil {
		ws.With(func(e *project.Editor) { e.SetAutoFill(*req.AutoFillCode) })
	}
	return c.JSON(http.StatusOK, a.view(ws))
}

func (a *App) handleValidate(c echo.Context) error {
	errs := project.Validate(CurrentWorkspace(c).Snapshot())
	if errs == nil {
		errs = project.Errors{}
	}
	return c.JSON(http.StatusOK, errs)
}

// assemble validates the workspace and renders it, storing the artifact.
func (a *App) assemble(c echo.Context) (render.Artifact, project.State, error) {
	ws := CurrentWorkspace(c)
	s := ws.Snapshot()
	if errs := project.Validate(s); errs != nil {
		return render.Artifact{}, s, errs
	}
	art, err := render.Page(s, render.Options{})
	if err != nil {
		return render.Artifact{}, s, err
	}
	ws.setArtifact(art)
	return art, s, nil
}

func (a *App) assembleFailure(c echo.Context, err error) error {
	if errs, ok := err.(project.Errors); ok {
		ws := CurrentWorkspace(c)
		ws.Notices().Error("Please fix the validation errors before generating HTML.")
		return c.JSON(http.StatusUnprocessableEntity, failure{
			Error:  "Please fix the validation errors before generating HTML.",
			Errors: errs,
		})
	}
	return a.fail(c, http.StatusInternalServerError, "Failed to generate HTML.", err)
}

func (a *App) handleGenerateHTML(c echo.Context) error {
	art, _, err := a.assemble(c)
	if err != nil {
		return a.assembleFailure(c, err)
	}
	CurrentWorkspace(c).Notices().Success("HTML generated successfully!")
	return c.JSON(http.StatusOK, art)
}

// handleGetHTML serves the last artifact as plain text for the clipboard.
func (a *App) handleGetHTML(c echo.Context) error {
	art, ok := CurrentWorkspace(c).Artifact()
	if !ok {
		return a.fail(c, http.StatusNotFound, "Please generate HTML first.", nil)
	}
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(art.HTML))
}

func (a *App) handleExport(c echo.Context) error {
	art, s, err := a.assemble(c)
	if err != nil {
		return a.assembleFailure(c, err)
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, export.NewBundle(art, s.Blocks)); err != nil {
		return a.fail(c, http.StatusInternalServerError, "Failed to export ZIP file.", err)
	}
	CurrentWorkspace(c).Notices().Success("ZIP file exported successfully!")
	return attachment(c, export.ArchiveName(s.Form.Name), "application/zip", buf.Bytes())
}
