package gemini

import (
	"context"

	"github.com/eringen/folio/project"
)

// CodeResult is the outcome for one code block in a cascade.
type CodeResult struct {
	BlockID string
	Snippet CodeSnippet
	Err     error
}

// ClaimFunc reserves a block before its call. A non-nil error skips the
// block and becomes its result; otherwise release runs once the result has
// been delivered.
type ClaimFunc func(blockID string) (release func(), err error)

type CascadeOption func(*cascade)

type cascade struct {
	claim ClaimFunc
}

// WithClaim gates every call in a cascade on fn.
func WithClaim(fn ClaimFunc) CascadeOption {
	return func(c *cascade) { c.claim = fn }
}

// Cascade requests a snippet for every code block, one at a time in list
// order. A failed block is recorded and the next one is still attempted; a
// cancelled ctx stops the run. onResult, when set, sees each result as soon
// as it is available.
func Cascade(ctx context.Context, gen Generator, blocks []*project.CodeBlock, p CodePrompt, onResult func(CodeResult), opts ...CascadeOption) []CodeResult {
	var c cascade
	for _, opt := range opts {
		opt(&c)
	}
	results := make([]CodeResult, 0, len(blocks))
	for _, b := range blocks {
		if ctx.Err() != nil {
			break
		}
		r := c.run(ctx, gen, b.ID, p, onResult)
		results = append(results, r)
	}
	return results
}

func (c *cascade) run(ctx context.Context, gen Generator, id string, p CodePrompt, onResult func(CodeResult)) CodeResult {
	r := CodeResult{BlockID: id}
	if c.claim != nil {
		release, err := c.claim(id)
		if err != nil {
			r.Err = err
			if onResult != nil {
				onResult(r)
			}
			return r
		}
		defer release()
	}
	r.Snippet, r.Err = gen.GenerateCode(ctx, p)
	if onResult != nil {
		onResult(r)
	}
	return r
}
