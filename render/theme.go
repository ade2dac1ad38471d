package render

import (
	"fmt"
	"strings"

	"github.com/eringen/folio/project"
)

type cssVar struct{ name, value string }

// ThemeCSS renders the custom-property block for t: light values on :root,
// dark overrides on html.dark, plus the classes derived from the brand
// colors.
func ThemeCSS(t project.Theme) string {
	light := []cssVar{
		{"--primary-brand", t.Primary},
		{"--secondary-brand-color", t.Secondary},
		{"--flash-red", t.Flash},
		{"--bg-body", t.BgLight},
		{"--text-default", t.TextLight},
		{"--card-bg", t.CardLight},
		{"--section-bg", t.SectionLight},
		{"--border-color", t.BorderLight},
		{"--tag-bg", t.TagBgLight},
		{"--tag-text", t.TagTextLight},
		{"--code-bg", t.CodeBgLight},
		{"--code-text", t.CodeTextLight},
		{"--moon-icon-color", t.MoonLight},
	}
	dark := []cssVar{
		{"--bg-body", t.BgDark},
		{"--text-default", t.TextDark},
		{"--card-bg", t.CardDark},
		{"--section-bg", t.SectionDark},
		{"--border-color", t.BorderDark},
		{"--secondary-brand-color", t.SecondaryDark},
		{"--tag-bg", t.TagBgDark},
		{"--tag-text", t.TagTextDark},
		{"--code-bg", t.CodeBgDark},
		{"--code-text", t.CodeTextDark},
		{"--moon-icon-color", t.MoonDark},
	}

	var b strings.Builder
	writeRule(&b, ":root", light)
	writeRule(&b, "html.dark", dark)
	b.WriteString(`.text-primary-brand { color: var(--primary-brand); }
.bg-primary-brand { background-color: var(--primary-brand); }
.gradient-bg { background: linear-gradient(135deg, var(--primary-brand), var(--secondary-brand-color)); }
.btn-primary { background: linear-gradient(135deg, var(--primary-brand), var(--secondary-brand-color)); }
.btn-primary:hover { box-shadow: 0 0 15px var(--flash-red); }
.social-icon:hover { filter: drop-shadow(0 0 8px var(--primary-brand)); }
.email-button-glow:hover { box-shadow: 0 0 20px var(--flash-red); }
.btn-back:hover { box-shadow: 0 2px 4px var(--primary-brand); }
.spinner { border-top: 8px solid var(--primary-brand); }
`)
	return b.String()
}

func writeRule(b *strings.Builder, selector string, vars []cssVar) {
	b.WriteString(selector + " {\n")
	for _, v := range vars {
		fmt.Fprintf(b, "  %s: %s;\n", v.name, v.value)
	}
	b.WriteString("}\n")
}

// Stylesheet is the companion CSS: the base stylesheet followed by the theme
// block.
func Stylesheet(t project.Theme) string {
	return BaseStylesheet() + "\n" + ThemeCSS(t)
}
