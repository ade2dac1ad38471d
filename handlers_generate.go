package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/gemini"
	"github.com/eringen/folio/project"
)

var (
	errGenerationBusy    = errors.New("A generation request is already running.")
	errGenerationLimited = errors.New("Too many generation requests. Please wait a minute.")
)

// generationKey returns the key for a workspace, falling back to the
// server-wide one.
func (a *App) generationKey(ws *Workspace) string {
	if k := ws.APIKey(); k != "" {
		return k
	}
	return a.Config.GeminiAPIKey
}

// admit runs the checks shared by every generation request. On success the
// caller owns release. A nil Generator means the refusal has already been
// written and err is the result of writing it.
func (a *App) admit(c echo.Context, key string) (gemini.Generator, func(), error) {
	ws := CurrentWorkspace(c)
	apiKey := a.generationKey(ws)
	if apiKey == "" {
		return nil, nil, a.fail(c, http.StatusBadRequest, "Please enter your Gemini API Key first.", nil)
	}
	release, ok := a.inflight.acquire(key)
	if !ok {
		return nil, nil, a.fail(c, http.StatusConflict, errGenerationBusy.Error(), nil)
	}
	if !a.limiter.Allow(ws.ID) {
		release()
		return nil, nil, a.fail(c, http.StatusTooManyRequests, errGenerationLimited.Error(), nil)
	}
	return a.newGenerator(apiKey), release, nil
}

func codePrompt(f project.Form) gemini.CodePrompt {
	return gemini.CodePrompt{Name: f.Name, Subtitle: f.Subtitle, RepoURL: f.RepoURL}
}

// handleGenerateProject drafts the narrative fields and, when auto-fill is
// on, every code block after it.
func (a *App) handleGenerateProject(c echo.Context) error {
	ws := CurrentWorkspace(c)
	gen, release, err := a.admit(c, projectKey(ws.ID))
	if gen == nil {
		return err
	}
	defer release()

	ws.setGenerationError("")
	s := ws.Snapshot()
	ctx := c.Request().Context()

	details, err := gen.GenerateProject(ctx, gemini.ProjectPrompt{Name: s.Form.Name, Subtitle: s.Form.Subtitle})
	if err != nil {
		ws.setGenerationError("Failed to generate content. Please try again.")
		return a.fail(c, http.StatusBadGateway, fmt.Sprintf("Error generating content: %v", err), err)
	}
	_ = ws.Edit(func(e *project.Editor) error {
		e.UpdateForm(details.Apply)
		return nil
	})
	ws.Notices().Success("Project details generated successfully!")

	if s.AutoFillCode {
		a.cascade(ctx, ws, gen, s)
	}
	return c.JSON(http.StatusOK, a.view(ws))
}

// cascade fills the code blocks that existed when generation started. Blocks
// removed in the meantime are skipped; one failure never stops the rest.
// Each block is claimed like a single-block request: a block already being
// generated is skipped, and every call counts against the session limit.
func (a *App) cascade(ctx context.Context, ws *Workspace, gen gemini.Generator, s project.State) {
	blocks := s.CodeBlocks()
	prompt := codePrompt(s.Form)
	gemini.Cascade(ctx, gen, blocks, prompt, func(r gemini.CodeResult) {
		var index int
		ws.With(func(e *project.Editor) { index = e.IndexOf(r.BlockID) })
		if index < 0 {
			return
		}
		if r.Err != nil {
			a.logger.Warn("code generation failed", "workspace", ws.ID, "block", r.BlockID, "err", r.Err)
			ws.Notices().Error(fmt.Sprintf("Error generating code for block %d: %v", index+1, r.Err))
			return
		}
		_ = ws.Edit(func(e *project.Editor) error {
			e.UpdateCode(r.BlockID, r.Snippet.Apply)
			return nil
		})
		ws.Notices().Success(fmt.Sprintf("Code snippet for block %d generated successfully!", index+1))
	}, gemini.WithClaim(func(blockID string) (func(), error) {
		return a.claimCode(ws, blockID)
	}))
}

// claimCode reserves one code block for a cascade call.
func (a *App) claimCode(ws *Workspace, blockID string) (func(), error) {
	release, ok := a.inflight.acquire(codeKey(ws.ID, blockID))
	if !ok {
		return nil, errGenerationBusy
	}
	if !a.limiter.Allow(ws.ID) {
		release()
		return nil, errGenerationLimited
	}
	return release, nil
}

func (a *App) handleGenerateCode(c echo.Context) error {
	ws := CurrentWorkspace(c)
	i, err := blockIndex(c)
	if err != nil {
		return a.blockFailure(c, err)
	}

	var (
		blk project.Block
		s   project.State
	)
	ws.With(func(e *project.Editor) {
		blk, err = e.Block(i)
		s = e.Snapshot()
	})
	if err != nil {
		return a.blockFailure(c, err)
	}
	if blk.Kind() != project.KindCode {
		return a.fail(c, http.StatusBadRequest, fmt.Sprintf("Block %d is not a code block.", i+1), nil)
	}

	gen, release, err := a.admit(c, codeKey(ws.ID, blk.BlockID()))
	if gen == nil {
		return err
	}
	defer release()

	snippet, err := gen.GenerateCode(c.Request().Context(), codePrompt(s.Form))
	if err != nil {
		return a.fail(c, http.StatusBadGateway, fmt.Sprintf("Error generating code for block %d: %v", i+1, err), err)
	}
	var applied bool
	_ = ws.Edit(func(e *project.Editor) error {
		applied = e.UpdateCode(blk.BlockID(), snippet.Apply)
		return nil
	})
	if !applied {
		return a.fail(c, http.StatusConflict, fmt.Sprintf("Block %d was removed before its code arrived.", i+1), nil)
	}
	ws.Notices().Success(fmt.Sprintf("Code snippet for block %d generated successfully!", i+1))
	return c.JSON(http.StatusOK, a.view(ws))
}
