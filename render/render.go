// Package render assembles the static project page from a project state.
// Text fields are interpolated verbatim; the author is trusted.
package render

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/bytedance/sonic"

	"github.com/eringen/folio/project"
)

//go:embed assets
var assets embed.FS

var pageTmpl = template.Must(template.ParseFS(assets, "assets/page.html.tmpl"))

// Artifact is one assembled page and its companion stylesheet.
type Artifact struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}

// Options tune a render. The zero value is usable.
type Options struct {
	// Footer copyright year; zero means the current year.
	Year int
}

type navLink struct{ Href, Label string }

var navLinks = []navLink{
	{"index.html#about", "About"},
	{"index.html#skills", "Skills"},
	{"index.html#projects", "Featured Projects"},
	{"all-projects.html", "All Projects"},
	{"index.html#connect", "Connect"},
	{"index.html#contact", "Contact"},
}

type narrativeItem struct{ Label, Body string }

type pageData struct {
	Form        project.Form
	AuthorFirst string
	AuthorRest  string
	Nav         []navLink
	Narrative   []narrativeItem
	Blocks      string
	Tags        string
	PersonJSON  string
	CSS         string
	Script      string
	Year        int
}

// Page assembles the document for s. It does not validate; callers gate on
// project.Validate first.
func Page(s project.State, opts Options) (Artifact, error) {
	year := opts.Year
	if year == 0 {
		year = time.Now().Year()
	}
	f := s.Form

	person, err := personJSON(f)
	if err != nil {
		return Artifact{}, err
	}

	css := Stylesheet(s.Theme)
	first, rest := splitAuthor(f.Author)
	data := pageData{
		Form:        f,
		AuthorFirst: first,
		AuthorRest:  rest,
		Nav:         navLinks,
		Narrative:   narrative(f),
		Blocks:      Blocks(s.Blocks),
		Tags:        tagPills(SplitList(f.Tags)),
		PersonJSON:  person,
		CSS:         css,
		Script:      Script(),
		Year:        year,
	}

	var b strings.Builder
	if err := pageTmpl.Execute(&b, data); err != nil {
		return Artifact{}, fmt.Errorf("render page: %w", err)
	}
	return Artifact{HTML: b.String(), CSS: css}, nil
}

func narrative(f project.Form) []narrativeItem {
	var features string
	if items := SplitList(f.Features); len(items) > 0 {
		var b strings.Builder
		b.WriteString("<ul>")
		for _, it := range items {
			b.WriteString("<li>" + it + "</li>")
		}
		b.WriteString("</ul>")
		features = b.String()
	}
	all := []narrativeItem{
		{"Problem Solved", f.ProblemSolved},
		{"My Role", f.Role},
		{"Key Features", features},
		{"Technologies Used", f.TechnologiesDesc},
		{"Challenges and Solutions", f.Challenges},
		{"Learnings", f.Learnings},
		{"Future Enhancements", f.Future},
	}
	var out []narrativeItem
	for _, it := range all {
		if strings.TrimSpace(it.Body) != "" {
			out = append(out, it)
		}
	}
	return out
}

func tagPills(tags []string) string {
	var b strings.Builder
	for _, t := range tags {
		fmt.Fprintf(&b, `                <span class="project-tag px-3 py-1 rounded-full">%s</span>`+"\n", t)
	}
	return b.String()
}

// SplitList splits a comma separated field, trimming entries and dropping
// empty ones.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitAuthor(name string) (first, rest string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

type person struct {
	Context  string   `json:"@context"`
	Type     string   `json:"@type"`
	Name     string   `json:"name"`
	URL      string   `json:"url,omitempty"`
	SameAs   []string `json:"sameAs,omitempty"`
	JobTitle string   `json:"jobTitle,omitempty"`
	AlumniOf string   `json:"alumniOf,omitempty"`
}

func personJSON(f project.Form) (string, error) {
	p := person{
		Context:  "https://schema.org",
		Type:     "Person",
		Name:     f.Author,
		URL:      f.CanonicalURL,
		JobTitle: f.JobTitle,
		AlumniOf: f.Institution,
	}
	for _, u := range []string{f.RepoURL, f.LinkedInURL} {
		if strings.TrimSpace(u) != "" {
			p.SameAs = append(p.SameAs, u)
		}
	}
	out, err := sonic.ConfigStd.MarshalIndent(p, "    ", "  ")
	if err != nil {
		return "", fmt.Errorf("encode person data: %w", err)
	}
	return "    " + string(out), nil
}

// Script is the behaviour script inlined into the page and shipped as
// assets/js/script.js.
func Script() string { return mustAsset("assets/script.js") }

// CodeSnippetsCSS is the static assets/css/code-snippets.css.
func CodeSnippetsCSS() string { return mustAsset("assets/code-snippets.css") }

// BaseStylesheet is the fixed stylesheet the theme block is appended to.
func BaseStylesheet() string { return mustAsset("assets/style.css") }

func mustAsset(name string) string {
	b, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}
