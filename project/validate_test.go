package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validState() State {
	s := NewState()
	s.Form.Name = "My Site"
	s.Form.Description = "Hello world"
	s.Form.LiveDemoURL = "https://x.com"
	s.Form.RepoURL = "https://github.com/u/r"
	s.Form.Author = "Jane"
	return s
}

func TestValidateDefaultsPass(t *testing.T) {
	assert.Empty(t, Validate(NewState()))
	assert.Empty(t, Validate(validState()))
}

func TestValidateRequired(t *testing.T) {
	cases := map[string]func(*Form){
		"projectName":        func(f *Form) { f.Name = "  " },
		"projectDescription": func(f *Form) { f.Description = "" },
		"liveDemoUrl":        func(f *Form) { f.LiveDemoURL = "" },
		"githubRepoUrl":      func(f *Form) { f.RepoURL = "\t" },
		"authorName":         func(f *Form) { f.Author = "" },
	}
	for key, blank := range cases {
		t.Run(key, func(t *testing.T) {
			s := validState()
			blank(&s.Form)
			errs := Validate(s)
			require.Contains(t, errs, key)
			assert.Contains(t, errs[key], "required")
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidateURLFormat(t *testing.T) {
	s := validState()
	s.Form.LiveDemoURL = "not a url"
	s.Form.LinkedInURL = "linkedin"
	s.Form.OGImageURL = ""
	errs := Validate(s)
	assert.Equal(t, "Invalid URL format.", errs["liveDemoUrl"])
	assert.Equal(t, "Invalid URL format.", errs["linkedinUrl"])
	assert.NotContains(t, errs, "ogImageUrl")
}

func TestIsValidURL(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{" https://example.com/a?b=c ", true},
		{"mailto:me@example.com", true},
		{"https://", false},
		{"example.com", false},
		{"/relative/path", false},
		{"", false},
	} {
		assert.Equal(t, tc.want, IsValidURL(tc.in), tc.in)
	}
}

func TestValidateThemeColors(t *testing.T) {
	s := validState()
	s.Theme.Primary = "indigo"
	s.Theme.BgDark = "#0f172a80"
	errs := Validate(s)
	assert.Contains(t, errs, "theme.primaryColor")
	assert.NotContains(t, errs, "theme.bgColorDark")
}

func TestValidateImageUploadThenURL(t *testing.T) {
	e := NewEditor(validState())
	_, err := e.Append(KindImage)
	require.NoError(t, err)
	require.NoError(t, e.SetSource(0, SourceUpload))

	errs := Validate(e.Snapshot())
	assert.Equal(t, "Image file is required for upload.", errs[BlockKey(0)])

	require.NoError(t, e.SetSource(0, SourceURL))
	require.NoError(t, e.Update(0, "url", "https://example.com/a.png"))
	assert.Empty(t, Validate(e.Snapshot()))
}

func TestValidateVideo(t *testing.T) {
	cases := []struct {
		src  Source
		url  string
		want string
	}{
		{SourceYouTube, "", "Video URL is required."},
		{SourceYouTube, "nope", "Invalid URL format for video."},
		{SourceYouTube, "https://example.com/video", "Invalid YouTube URL."},
		{SourceYouTube, "https://youtu.be/dQw4w9WgXcQ", ""},
		{SourceMP4, "https://cdn.example.com/a.mp4", ""},
	}
	for _, tc := range cases {
		s := validState()
		s.Blocks = []Block{&VideoBlock{ID: "v", Media: Media{Source: tc.src, URL: tc.url}}}
		errs := Validate(s)
		assert.Equal(t, tc.want, errs[BlockKey(0)], tc.url)
	}
}

func TestValidateNoStaleBlockKeys(t *testing.T) {
	e := NewEditor(validState())
	_, _ = e.Append(KindText)
	_, _ = e.Append(KindImage)
	require.Contains(t, Validate(e.Snapshot()), BlockKey(1))

	require.NoError(t, e.Remove(1))
	assert.Empty(t, Validate(e.Snapshot()))
}

func TestYouTubeID(t *testing.T) {
	for _, u := range []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
	} {
		assert.Equal(t, "dQw4w9WgXcQ", YouTubeID(u), u)
	}
	assert.Empty(t, YouTubeID("https://example.com/video"))
}
