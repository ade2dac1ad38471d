package folio

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/folio/project"
)

type appendRequest struct {
	Type string `json:"type"`
}

func (a *App) handleAppendBlock(c echo.Context) error {
	ws := CurrentWorkspace(c)
	var req appendRequest
	if err := c.Bind(&req); err != nil {
		return a.fail(c, http.StatusBadRequest, "Invalid request.", err)
	}
	err := ws.Edit(func(e *project.Editor) error {
		_, err := e.Append(project.Kind(req.Type))
		return err
	})
	if err != nil {
		return a.blockFailure(c, err)
	}
	return c.JSON(http.StatusCreated, a.view(ws))
}

func (a *App) handleUpdateBlock(c echo.Context) error {
	ws := CurrentWorkspace(c)
	i, err := blockIndex(c)
	if err != nil {
		return a.blockFailure(c, err)
	}
	var req fieldRequest
	if err := c.Bind(&req); err != nil {
		return a.fail(c, http.StatusBadRequest, "Invalid request.", err)
	}
	err = ws.Edit(func(e *project.Editor) error {
		return e.Update(i, req.Field, req.Value)
	})
	if err != nil {
		return a.blockFailure(c, err)
	}
	return c.JSON(http.StatusOK, a.view(ws))
}

func (a *App) handleRemoveBlock(c echo.Context) error {
	ws := CurrentWorkspace(c)
	i, err := blockIndex(c)
	if err != nil {
		return a.blockFailure(c, err)
	}
	if err := ws.Edit(func(e *project.Editor) error { return e.Remove(i) }); err != nil {
		return a.blockFailure(c, err)
	}
	return c.JSON(http.StatusOK, a.view(ws))
}

type moveRequest struct {
	Direction string `json:"direction"`
}

func (a *App) handleMoveBlock(c echo.Context) error {
	ws := CurrentWorkspace(c)
	i, err := blockIndex(c)
	if err != nil {
		return a.blockFailure(c, err)
	}
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return a.fail(c, http.StatusBadRequest, "Invalid request.", err)
	}
	err = ws.Edit(func(e *project.Editor) error {
		_, err := e.Move(i, project.Direction(req.Direction))
		return err
	})
	if err != nil {
		return a.blockFailure(c, err)
	}
	return c.JSON(http.StatusOK, a.view(ws))
}

// handleUpload attaches a multipart "file" to an upload-mode media block.
func (a *App) handleUpload(c echo.Context) error {
	ws := CurrentWorkspace(c)
	i, err := blockIndex(c)
	if err != nil {
		return a.blockFailure(c, err)
	}

	var kind project.Kind
	ws.With(func(e *project.Editor) {
		if b, err := e.Block(i); err == nil {
			kind = b.Kind()
		}
	})
	if kind == "" {
		return a.blockFailure(c, fmt.Errorf("%w: %d", project.ErrBlockIndex, i))
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return a.fail(c, http.StatusBadRequest, "No file provided.", err)
	}
	u, err := readUpload(fh, kind, a.Config.MaxUploadSize)
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		return a.uploadTooLarge(c, err)
	case errors.Is(err, ErrUploadFormat) && kind == project.KindImage:
		return a.fail(c, http.StatusBadRequest, "Please upload a supported image format (JPEG, PNG, GIF, WebP).", err)
	case errors.Is(err, ErrUploadFormat):
		return a.fail(c, http.StatusBadRequest, "Please upload a valid video file.", err)
	case err != nil:
		return a.blockFailure(c, err)
	}

	err = ws.Edit(func(e *project.Editor) error {
		_, err := e.Attach(i, u)
		return err
	})
	if err != nil {
		return a.blockFailure(c, err)
	}
	a.logger.Info("upload attached", "workspace", ws.ID, "name", u.Name, "bytes", u.Size(), "type", u.ContentType)
	return c.JSON(http.StatusOK, a.view(ws))
}

// uploadSlack covers the multipart framing around the file itself.
const uploadSlack = 1 << 20

// uploadLimit refuses upload bodies well past MaxUploadSize before the
// multipart parser reads them.
func (a *App) uploadLimit(next echo.HandlerFunc) echo.HandlerFunc {
	limit := fmt.Sprintf("%dK", (a.Config.MaxUploadSize+uploadSlack)>>10)
	limited := middleware.BodyLimit(limit)(next)
	return func(c echo.Context) error {
		err := limited(c)
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return a.uploadTooLarge(c, err)
		}
		return err
	}
}

func (a *App) uploadTooLarge(c echo.Context, err error) error {
	return a.fail(c, http.StatusBadRequest, fmt.Sprintf("File size exceeds %dMB limit.", a.Config.MaxUploadSize>>20), err)
}
