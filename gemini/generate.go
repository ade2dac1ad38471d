package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/eringen/folio/project"
)

// Generator is what the authoring server needs from a generation backend.
type Generator interface {
	GenerateProject(ctx context.Context, p ProjectPrompt) (ProjectDetails, error)
	GenerateCode(ctx context.Context, p CodePrompt) (CodeSnippet, error)
}

var _ Generator = (*Client)(nil)

type ProjectPrompt struct {
	Name     string
	Subtitle string
}

// ProjectDetails is the narrative returned for a whole project.
type ProjectDetails struct {
	Description      string   `json:"projectDescription"`
	ProblemSolved    string   `json:"problemSolved"`
	Role             string   `json:"myRole"`
	Features         []string `json:"keyFeatures"`
	TechnologiesDesc string   `json:"technologiesUsedDesc"`
	Challenges       string   `json:"challengesSolutions"`
	Learnings        string   `json:"learnings"`
	Future           string   `json:"futureEnhancements"`
}

// Apply copies the narrative into f. Features are joined with ", ".
func (d ProjectDetails) Apply(f *project.Form) {
	f.Description = d.Description
	f.ProblemSolved = d.ProblemSolved
	f.Role = d.Role
	f.Features = strings.Join(d.Features, ", ")
	f.TechnologiesDesc = d.TechnologiesDesc
	f.Challenges = d.Challenges
	f.Learnings = d.Learnings
	f.Future = d.Future
}

type CodePrompt struct {
	Name     string
	Subtitle string
	RepoURL  string
}

type CodeSnippet struct {
	Language    string `json:"language"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (s CodeSnippet) Apply(b *project.CodeBlock) {
	b.Language = s.Language
	b.Code = s.Code
	b.Description = s.Description
}

var projectKeys = []string{
	"projectDescription", "problemSolved", "myRole", "keyFeatures",
	"technologiesUsedDesc", "challengesSolutions", "learnings", "futureEnhancements",
}

var codeKeys = []string{"language", "code", "description"}

// Pointer fields tell a missing key apart from an empty one.
type projectReply struct {
	Description      *string   `json:"projectDescription"`
	ProblemSolved    *string   `json:"problemSolved"`
	Role             *string   `json:"myRole"`
	Features         *[]string `json:"keyFeatures"`
	TechnologiesDesc *string   `json:"technologiesUsedDesc"`
	Challenges       *string   `json:"challengesSolutions"`
	Learnings        *string   `json:"learnings"`
	Future           *string   `json:"futureEnhancements"`
}

type codeReply struct {
	Language    *string `json:"language"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

func (c *Client) GenerateProject(ctx context.Context, p ProjectPrompt) (ProjectDetails, error) {
	schema := objectSchema(projectKeys, map[string]*Schema{
		"keyFeatures": {Type: "ARRAY", Items: stringSchema()},
	})
	var r projectReply
	if err := c.generate(ctx, projectPrompt(p), schema, &r); err != nil {
		return ProjectDetails{}, err
	}

	missing := missingKeys(map[string]bool{
		"projectDescription":   r.Description != nil,
		"problemSolved":        r.ProblemSolved != nil,
		"myRole":               r.Role != nil,
		"keyFeatures":          r.Features != nil,
		"technologiesUsedDesc": r.TechnologiesDesc != nil,
		"challengesSolutions":  r.Challenges != nil,
		"learnings":            r.Learnings != nil,
		"futureEnhancements":   r.Future != nil,
	}, projectKeys)
	if len(missing) > 0 {
		return ProjectDetails{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}
	return ProjectDetails{
		Description:      *r.Description,
		ProblemSolved:    *r.ProblemSolved,
		Role:             *r.Role,
		Features:         *r.Features,
		TechnologiesDesc: *r.TechnologiesDesc,
		Challenges:       *r.Challenges,
		Learnings:        *r.Learnings,
		Future:           *r.Future,
	}, nil
}

func (c *Client) GenerateCode(ctx context.Context, p CodePrompt) (CodeSnippet, error) {
	var r codeReply
	if err := c.generate(ctx, codePrompt(p), objectSchema(codeKeys, nil), &r); err != nil {
		return CodeSnippet{}, err
	}
	missing := missingKeys(map[string]bool{
		"language":    r.Language != nil,
		"code":        r.Code != nil,
		"description": r.Description != nil,
	}, codeKeys)
	if len(missing) > 0 {
		return CodeSnippet{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}
	return CodeSnippet{Language: *r.Language, Code: *r.Code, Description: *r.Description}, nil
}

func missingKeys(present map[string]bool, order []string) []string {
	var out []string
	for _, k := range order {
		if !present[k] {
			out = append(out, k)
		}
	}
	return out
}

func projectPrompt(p ProjectPrompt) string {
	return fmt.Sprintf(`Generate comprehensive project details for a project titled %q with the tagline %q. Provide the output in a JSON object with the following keys:
- projectDescription (a general overview paragraph)
- problemSolved (a paragraph describing the problem the project solves)
- myRole (a paragraph describing the typical role in such a project)
- keyFeatures (an array of 3-5 bullet points for key features)
- technologiesUsedDesc (a paragraph mentioning common technologies used in such a project)
- challengesSolutions (a paragraph describing common challenges and their solutions)
- learnings (a paragraph on typical learnings from such a project)
- futureEnhancements (a paragraph on potential future enhancements)
Ensure all fields are populated and are relevant to the project title and subtitle.`, p.Name, p.Subtitle)
}

func codePrompt(p CodePrompt) string {
	return fmt.Sprintf(`Given the project details:
Project Name: %q
Project Subtitle: %q
GitHub Repository: %q

Generate a relevant code snippet and a brief description for this project.
Provide the output in a JSON object with the following keys:
- language (e.g., 'javascript', 'python', 'html', 'css')
- code (the actual code snippet)
- description (a brief explanation of the code snippet's purpose in the project)
Ensure the code is directly related to the project and is a plausible example.`, p.Name, p.Subtitle, p.RepoURL)
}
