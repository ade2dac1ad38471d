package folio

import (
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/export"
	"github.com/eringen/folio/preview"
	"github.com/eringen/folio/project"
	"github.com/eringen/folio/render"
)

type previewView struct {
	preview.Status
	Error string `json:"error,omitempty"`
	URL   string `json:"url"`
}

func previewStatus(ws *Workspace) previewView {
	st := ws.Preview().Snapshot()
	v := previewView{Status: st, URL: "/preview/" + ws.ID + "/"}
	if st.Err != nil {
		v.Error = st.Err.Error()
	}
	return v
}

func (a *App) handlePreviewShow(c echo.Context) error {
	ws := CurrentWorkspace(c)
	ws.Preview().Show()
	return c.JSON(http.StatusOK, previewStatus(ws))
}

func (a *App) handlePreviewHide(c echo.Context) error {
	ws := CurrentWorkspace(c)
	ws.Preview().Hide()
	return c.JSON(http.StatusOK, previewStatus(ws))
}

func (a *App) handlePreviewStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, previewStatus(CurrentWorkspace(c)))
}

// previewWorkspace resolves the :ws path parameter. Preview requests do not
// refresh the idle timer.
func (a *App) previewWorkspace(c echo.Context) (*Workspace, error) {
	ws, err := a.Workspaces.Peek(c.Param("ws"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Preview not found")
	}
	return ws, nil
}

// handlePreviewDocument serves the last settled render inside a sandbox so
// the page script cannot reach the editor's origin.
func (a *App) handlePreviewDocument(c echo.Context) error {
	ws, err := a.previewWorkspace(c)
	if err != nil {
		return err
	}
	st := ws.Preview().Snapshot()
	if st.Content == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Preview not ready")
	}
	c.Response().Header().Set("Content-Security-Policy", "sandbox allow-scripts")
	return Render(c, rawHTML(st.Content))
}

// handlePreviewAsset serves the paths a rendered page refers to relative to
// itself: the static stylesheets and script, and uploads by file name.
func (a *App) handlePreviewAsset(c echo.Context) error {
	ws, err := a.previewWorkspace(c)
	if err != nil {
		return err
	}
	p := path.Clean("/" + c.Param("*"))[1:]
	switch p {
	case "css/code-snippets.css":
		return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(render.CodeSnippetsCSS()))
	case "css/style.css":
		return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(render.Stylesheet(ws.Snapshot().Theme)))
	case "js/script.js":
		return c.Blob(http.StatusOK, "text/javascript; charset=utf-8", []byte(render.Script()))
	}

	dir, name := path.Split(p)
	var kind project.Kind
	switch strings.TrimSuffix("assets/"+dir, "/") {
	case render.ImageDir:
		kind = project.KindImage
	case render.VideoDir:
		kind = project.KindVideo
	default:
		return echo.ErrNotFound
	}
	u, ok := ws.UploadNamed(kind, export.SafeName(name))
	if !ok {
		return echo.ErrNotFound
	}
	return c.Blob(http.StatusOK, u.ContentType, u.Data)
}

// handlePreviewMedia serves an upload by its temporary object reference.
func (a *App) handlePreviewMedia(c echo.Context) error {
	ws, err := a.previewWorkspace(c)
	if err != nil {
		return err
	}
	u, ok := ws.Upload(c.Param("key"))
	if !ok {
		return echo.ErrNotFound
	}
	return c.Blob(http.StatusOK, u.ContentType, u.Data)
}
