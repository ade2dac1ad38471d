package project

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Errors maps a field key to its message. Block keys are
// contentBlockUrl-<index>; theme keys are theme.<key>.
type Errors map[string]string

func (e Errors) Error() string {
	keys := e.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Keys returns the failing keys in sorted order.
func (e Errors) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BlockKey is the error key for the media block at index.
func BlockKey(index int) string {
	return fmt.Sprintf("contentBlockUrl-%d", index)
}

// Validate checks s and returns every failing field. A nil result means the
// state can be assembled.
func Validate(s State) Errors {
	errs := Errors{}
	f := s.Form

	required := []struct{ key, value, msg string }{
		{"projectName", f.Name, "Project Name is required."},
		{"projectDescription", f.Description, "Project Overview Description is required."},
		{"liveDemoUrl", f.LiveDemoURL, "Live Demo URL is required."},
		{"githubRepoUrl", f.RepoURL, "GitHub Repo URL is required."},
		{"authorName", f.Author, "Author Name is required."},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.key] = r.msg
		}
	}
	for _, r := range []struct{ key, value string }{
		{"liveDemoUrl", f.LiveDemoURL},
		{"githubRepoUrl", f.RepoURL},
	} {
		if _, failed := errs[r.key]; !failed && !IsValidURL(r.value) {
			errs[r.key] = "Invalid URL format."
		}
	}
	for _, o := range []struct{ key, value string }{
		{"projectUrl", f.CanonicalURL},
		{"linkedinUrl", f.LinkedInURL},
		{"ogImageUrl", f.OGImageURL},
		{"twitterImageUrl", f.TwitterImageURL},
		{"faviconUrl", f.FaviconURL},
		{"logoUrl", f.LogoURL},
	} {
		if strings.TrimSpace(o.value) != "" && !IsValidURL(o.value) {
			errs[o.key] = "Invalid URL format."
		}
	}

	for key, p := range s.Theme.fields() {
		if !IsColor(*p) {
			errs["theme."+key] = "Invalid color."
		}
	}

	for i, b := range s.Blocks {
		if msg := validateBlock(b); msg != "" {
			errs[BlockKey(i)] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateBlock(b Block) string {
	switch b := b.(type) {
	case *ImageBlock:
		switch b.Source {
		case SourceURL:
			if strings.TrimSpace(b.URL) == "" {
				return "Image URL is required."
			}
			if !IsValidURL(b.URL) {
				return "Invalid URL format for image."
			}
		case SourceUpload:
			if b.Upload == nil {
				return "Image file is required for upload."
			}
		}
	case *VideoBlock:
		switch b.Source {
		case SourceYouTube, SourceMP4:
			if strings.TrimSpace(b.URL) == "" {
				return "Video URL is required."
			}
			if !IsValidURL(b.URL) {
				return "Invalid URL format for video."
			}
			if b.Source == SourceYouTube && YouTubeID(b.URL) == "" {
				return "Invalid YouTube URL."
			}
		case SourceUpload:
			if b.Upload == nil {
				return "Video file is required for upload."
			}
		}
	}
	return ""
}

// IsValidURL reports whether s parses as an absolute URL. http and https
// URLs must also name a host.
func IsValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	}
	return true
}

var reYouTube = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:watch\?v=|embed/|v/))([A-Za-z0-9_-]{11})`)

// YouTubeID extracts the 11 character video id from a youtube.com or
// youtu.be URL, or returns "".
func YouTubeID(s string) string {
	m := reYouTube.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
