package gemini

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/project"
)

// reply wraps text the way generateContent returns a candidate.
func reply(t *testing.T, text string) string {
	t.Helper()
	out, err := sonic.MarshalString(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			}},
		},
	})
	require.NoError(t, err)
	return out
}

func fakeServer(t *testing.T, status int, body string, seen *generateRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		if seen != nil {
			b, _ := io.ReadAll(r.Body)
			assert.NoError(t, sonic.Unmarshal(b, seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const fullProject = `{
	"projectDescription": "Overview",
	"problemSolved": "Problem",
	"myRole": "Role",
	"keyFeatures": ["Fast", "Small"],
	"technologiesUsedDesc": "Go",
	"challengesSolutions": "Hard",
	"learnings": "Lots",
	"futureEnhancements": "More"
}`

func TestGenerateProject(t *testing.T) {
	var seen generateRequest
	srv := fakeServer(t, http.StatusOK, reply(t, fullProject), &seen)
	c := NewClient(ClientOptions{BaseURL: srv.URL, APIKey: "secret"})

	d, err := c.GenerateProject(context.Background(), ProjectPrompt{Name: "Folio", Subtitle: "Pages"})
	require.NoError(t, err)
	assert.Equal(t, "Overview", d.Description)
	assert.Equal(t, []string{"Fast", "Small"}, d.Features)

	require.Len(t, seen.Contents, 1)
	assert.Equal(t, "user", seen.Contents[0].Role)
	assert.Contains(t, seen.Contents[0].Parts[0].Text, `titled "Folio"`)
	assert.Equal(t, "application/json", seen.GenerationConfig.ResponseMimeType)
	assert.ElementsMatch(t, projectKeys, seen.GenerationConfig.ResponseSchema.Required)
	assert.Equal(t, "ARRAY", seen.GenerationConfig.ResponseSchema.Properties["keyFeatures"].Type)

	f := project.DefaultForm()
	d.Apply(&f)
	assert.Equal(t, "Fast, Small", f.Features)
	assert.Equal(t, "More", f.Future)
	assert.Equal(t, "My Awesome Project", f.Name)
}

func TestGenerateProjectRejectsPartial(t *testing.T) {
	srv := fakeServer(t, http.StatusOK, reply(t, `{"projectDescription":"only"}`), nil)
	c := NewClient(ClientOptions{BaseURL: srv.URL, APIKey: "secret"})

	_, err := c.GenerateProject(context.Background(), ProjectPrompt{})
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "keyFeatures")
}

func TestGenerateCode(t *testing.T) {
	srv := fakeServer(t, http.StatusOK, reply(t, `{"language":"go","code":"package main","description":"entry"}`), nil)
	c := NewClient(ClientOptions{BaseURL: srv.URL, APIKey: "secret"})

	s, err := c.GenerateCode(context.Background(), CodePrompt{Name: "Folio"})
	require.NoError(t, err)

	var b project.CodeBlock
	s.Apply(&b)
	assert.Equal(t, project.CodeBlock{Language: "go", Code: "package main", Description: "entry"}, b)
}

func TestGenerateFailures(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		c := NewClient(ClientOptions{BaseURL: "http://127.0.0.1:1"})
		_, err := c.GenerateCode(context.Background(), CodePrompt{})
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("api error body", func(t *testing.T) {
		srv := fakeServer(t, http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`, nil)
		_, err := NewClient(ClientOptions{BaseURL: srv.URL, APIKey: "secret"}).GenerateCode(context.Background(), CodePrompt{})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Contains(t, err.Error(), "API key not valid")
	})

	t.Run("non-json status", func(t *testing.T) {
		srv := fakeServer(t, http.StatusBadGateway, "upstream down", nil)
		_, err := NewClient(ClientOptions{BaseURL: srv.URL, APIKey: "secret"}).GenerateCode(context.Background(), CodePrompt{})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	})

	t.Run("no candidates", func(t *testing.T) {
		srv := fakeServer(t, http.StatusOK, `{"candidates":[]}`, nil)
		_, err := NewClient(ClientOptions{BaseURL: srv.URL, APIKey: "secret"}).GenerateCode(context.Background(), CodePrompt{})
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("candidate not json", func(t *testing.T) {
		srv := fakeServer(t, http.StatusOK, reply(t, "sure, here is some code"), nil)
		_, err := NewClient(ClientOptions{BaseURL: srv.URL, APIKey: "secret"}).GenerateCode(context.Background(), CodePrompt{})
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestWithAPIKeyKeepsOptions(t *testing.T) {
	base := NewClient(ClientOptions{BaseURL: "http://example.test", Model: "m"})
	c := base.WithAPIKey("k")
	assert.Equal(t, "k", c.opts.APIKey)
	assert.Equal(t, "m", c.opts.Model)
	assert.Empty(t, base.opts.APIKey)
}

type scriptedGen struct {
	calls int
	fail  map[int]bool
}

func (g *scriptedGen) GenerateProject(context.Context, ProjectPrompt) (ProjectDetails, error) {
	return ProjectDetails{}, nil
}

func (g *scriptedGen) GenerateCode(context.Context, CodePrompt) (CodeSnippet, error) {
	g.calls++
	if g.fail[g.calls] {
		return CodeSnippet{}, errors.New("boom")
	}
	return CodeSnippet{Language: "go", Code: strings.Repeat("x", g.calls)}, nil
}

func TestCascadeContinuesAfterFailure(t *testing.T) {
	blocks := []*project.CodeBlock{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	gen := &scriptedGen{fail: map[int]bool{2: true}}

	var seen []string
	results := Cascade(context.Background(), gen, blocks, CodePrompt{}, func(r CodeResult) {
		seen = append(seen, r.BlockID)
	})

	require.Len(t, results, 3)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "xxx", results[2].Snippet.Code)
	assert.Equal(t, 3, gen.calls)
}

func TestCascadeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := &scriptedGen{}
	results := Cascade(ctx, gen, []*project.CodeBlock{{ID: "a"}}, CodePrompt{}, nil)
	assert.Empty(t, results)
	assert.Zero(t, gen.calls)
}

func TestCascadeClaimSkipsBusyBlocks(t *testing.T) {
	blocks := []*project.CodeBlock{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	gen := &scriptedGen{}
	busy := errors.New("busy")

	var released []string
	claim := func(id string) (func(), error) {
		if id == "b" {
			return nil, busy
		}
		return func() { released = append(released, id) }, nil
	}
	var seen []string
	results := Cascade(context.Background(), gen, blocks, CodePrompt{}, func(r CodeResult) {
		seen = append(seen, r.BlockID)
		assert.NotContains(t, released, r.BlockID, "released before the result was delivered")
	}, WithClaim(claim))

	require.Len(t, results, 3)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.ErrorIs(t, results[1].Err, busy)
	assert.Equal(t, []string{"a", "c"}, released)
	assert.Equal(t, 2, gen.calls)
}
