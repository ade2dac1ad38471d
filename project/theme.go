package project

import "regexp"

// Theme carries the brand colors and the light and dark palettes rendered
// into CSS custom properties.
type Theme struct {
	Primary   string `json:"primaryColor"`
	Secondary string `json:"secondaryColor"`
	Flash     string `json:"flashColor"`

	BgLight       string `json:"bgColorLight"`
	TextLight     string `json:"textColorLight"`
	CardLight     string `json:"cardBgLight"`
	SectionLight  string `json:"sectionBgLight"`
	BorderLight   string `json:"borderColorLight"`
	TagBgLight    string `json:"tagBgLight"`
	TagTextLight  string `json:"tagTextLight"`
	CodeBgLight   string `json:"codeBgLight"`
	CodeTextLight string `json:"codeTextLight"`
	MoonLight     string `json:"moonIconColorLight"`

	BgDark        string `json:"bgColorDark"`
	TextDark      string `json:"textColorDark"`
	CardDark      string `json:"cardBgDark"`
	SectionDark   string `json:"sectionBgDark"`
	BorderDark    string `json:"borderColorDark"`
	SecondaryDark string `json:"secondaryColorDark"`
	TagBgDark     string `json:"tagBgDark"`
	TagTextDark   string `json:"tagTextDark"`
	CodeBgDark    string `json:"codeBgDark"`
	CodeTextDark  string `json:"codeTextDark"`
	MoonDark      string `json:"moonIconColorDark"`
}

// DefaultTheme returns the indigo/teal palette used when nothing is set.
func DefaultTheme() Theme {
	return Theme{
		Primary:   "#4f46e5",
		Secondary: "#14b8a6",
		Flash:     "#dc2626",

		BgLight:       "#f9fafb",
		TextLight:     "#1e293b",
		CardLight:     "#ffffff",
		SectionLight:  "#f1f5f9",
		BorderLight:   "#e2e8f0",
		TagBgLight:    "#e2e8f0",
		TagTextLight:  "#1e293b",
		CodeBgLight:   "#f3f4f6",
		CodeTextLight: "#1f2937",
		MoonLight:     "#1e293b",

		BgDark:        "#0f172a",
		TextDark:      "#e2e8f0",
		CardDark:      "#1e293b",
		SectionDark:   "#1e293b",
		BorderDark:    "#475569",
		SecondaryDark: "#2dd4bf",
		TagBgDark:     "#475569",
		TagTextDark:   "#e2e8f0",
		CodeBgDark:    "#1f2937",
		CodeTextDark:  "#f9fafb",
		MoonDark:      "#e2e8f0",
	}
}

func (t *Theme) fields() map[string]*string {
	return map[string]*string{
		"primaryColor":       &t.Primary,
		"secondaryColor":     &t.Secondary,
		"flashColor":         &t.Flash,
		"bgColorLight":       &t.BgLight,
		"textColorLight":     &t.TextLight,
		"cardBgLight":        &t.CardLight,
		"sectionBgLight":     &t.SectionLight,
		"borderColorLight":   &t.BorderLight,
		"tagBgLight":         &t.TagBgLight,
		"tagTextLight":       &t.TagTextLight,
		"codeBgLight":        &t.CodeBgLight,
		"codeTextLight":      &t.CodeTextLight,
		"moonIconColorLight": &t.MoonLight,
		"bgColorDark":        &t.BgDark,
		"textColorDark":      &t.TextDark,
		"cardBgDark":         &t.CardDark,
		"sectionBgDark":      &t.SectionDark,
		"borderColorDark":    &t.BorderDark,
		"secondaryColorDark": &t.SecondaryDark,
		"tagBgDark":          &t.TagBgDark,
		"tagTextDark":        &t.TagTextDark,
		"codeBgDark":         &t.CodeBgDark,
		"codeTextDark":       &t.CodeTextDark,
		"moonIconColorDark":  &t.MoonDark,
	}
}

var reHexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// IsColor reports whether s is a #rgb, #rrggbb or #rrggbbaa hex color.
func IsColor(s string) bool {
	return reHexColor.MatchString(s)
}
