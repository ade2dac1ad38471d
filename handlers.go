package folio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/preview"
	"github.com/eringen/folio/project"
)

func (a *App) handleEditor(c echo.Context) error {
	page, err := EmbeddedAssets.ReadFile("embedded/editor.html")
	if err != nil {
		return err
	}
	doc := strings.Replace(string(page), "{{csrf}}", CsrfToken(c), 1)
	return Render(c, rawHTML(doc))
}

func (a *App) handleEditorScript(c echo.Context) error {
	js, err := EmbeddedAssets.ReadFile("embedded/editor.js")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/javascript; charset=utf-8", js)
}

// blockView is a block as the editor UI sees it.
type blockView struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Content     string `json:"content,omitempty"`
	SourceType  string `json:"sourceType,omitempty"`
	URL         string `json:"url,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Caption     string `json:"caption,omitempty"`
	Language    string `json:"language,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	// Where the editor can show an attached upload.
	MediaURL string `json:"mediaUrl,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

type stateView struct {
	Form            project.Form   `json:"form"`
	Theme           project.Theme  `json:"theme"`
	Blocks          []blockView    `json:"blocks"`
	AutoFillCode    bool           `json:"autoFillCode"`
	Errors          project.Errors `json:"errors"`
	GenerationError string         `json:"generationError,omitempty"`
	ScrollTo        string         `json:"scrollTo,omitempty"`
	HasAPIKey       bool           `json:"hasApiKey"`
	HasHTML         bool           `json:"hasHtml"`
	Preview         preview.Status `json:"preview"`
	PreviewURL      string         `json:"previewUrl"`
}

func (a *App) view(ws *Workspace) stateView {
	var v stateView
	ws.mu.Lock()
	s := ws.editor.Snapshot()
	v.ScrollTo, _ = ws.editor.TakeScrollTarget()
	v.HasAPIKey = ws.apiKey != "" || a.Config.GeminiAPIKey != ""
	v.HasHTML = ws.artifact != nil
	v.GenerationError = ws.genError
	ws.mu.Unlock()

	v.Form, v.Theme, v.AutoFillCode = s.Form, s.Theme, s.AutoFillCode
	v.Errors = project.Validate(s)
	if v.Errors == nil {
		v.Errors = project.Errors{}
	}
	v.Blocks = make([]blockView, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		v.Blocks = append(v.Blocks, viewBlock(ws.ID, b))
	}
	v.Preview = ws.preview.Snapshot()
	v.PreviewURL = "/preview/" + ws.ID + "/"
	return v
}

func viewBlock(wsID string, b project.Block) blockView {
	v := blockView{ID: b.BlockID(), Type: string(b.Kind())}
	switch b := b.(type) {
	case *project.TextBlock:
		v.Content = b.Content
	case *project.ImageBlock:
		v.Alt = b.Alt
		v.Caption = b.Caption
	case *project.VideoBlock:
		v.Caption = b.Caption
	case *project.CodeBlock:
		v.Language = b.Language
		v.Code = b.Code
		v.Description = b.Description
	}
	if m, ok := project.MediaOf(b); ok {
		v.SourceType = string(m.Source)
		v.URL = m.URL
		v.FileName = m.FileName
		if m.Upload != nil && project.IsObjectURL(m.URL) {
			v.MediaURL = "/preview/" + wsID + "/media/" + project.ObjectKey(m.URL)
			v.Width, v.Height = m.Upload.Width, m.Upload.Height
		}
	}
	return v
}

func (a *App) handleState(c echo.Context) error {
	return c.JSON(http.StatusOK, a.view(CurrentWorkspace(c)))
}

func (a *App) handleNotices(c echo.Context) error {
	return c.JSON(http.StatusOK, CurrentWorkspace(c).Notices().List())
}

func (a *App) handleDismissNotice(c echo.Context) error {
	if !CurrentWorkspace(c).Notices().Dismiss(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "Notice not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// failure is the JSON body of every error response.
type failure struct {
	Error  string         `json:"error"`
	Errors project.Errors `json:"errors,omitempty"`
}

// fail queues msg as an error notice and writes it with code.
func (a *App) fail(c echo.Context, code int, msg string, err error) error {
	ws := CurrentWorkspace(c)
	if ws != nil {
		ws.Notices().Error(msg)
	}
	if err != nil {
		a.logger.Warn(msg, "err", err, "status", code, "uri", c.Request().RequestURI)
	}
	return c.JSON(code, failure{Error: msg})
}

// blockFailure maps editor errors to responses.
func (a *App) blockFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, project.ErrBlockIndex):
		return a.fail(c, http.StatusNotFound, "Block not found.", err)
	case errors.Is(err, project.ErrUnknownField),
		errors.Is(err, project.ErrUnknownKind),
		errors.Is(err, project.ErrInvalidSource),
		errors.Is(err, project.ErrNotUploadMode),
		errors.Is(err, project.ErrNotMedia),
		errors.Is(err, project.ErrDirection):
		return a.fail(c, http.StatusBadRequest, err.Error(), err)
	}
	return err
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.logger.Error("server error", "err", err, "uri", c.Request().RequestURI)
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		msg := http.StatusText(code)
		if ok && code < 500 {
			if m, isStr := he.Message.(string); isStr {
				msg = m
			}
		}
		_ = c.JSON(code, failure{Error: msg})
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
