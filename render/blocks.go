package render

import (
	"fmt"
	"strings"

	"github.com/eringen/folio/project"
)

// Asset folders uploaded media is packaged under.
const (
	ImageDir = "assets/images"
	VideoDir = "assets/videos"
)

const mediaFallback = `onerror="this.onerror=null; this.replaceWith(Object.assign(document.createElement('div'), {className: 'project-image-placeholder rounded-lg'}));"`

// Blocks renders the content blocks in list order.
func Blocks(blocks []project.Block) string {
	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(Block(blk))
	}
	return b.String()
}

// Block renders one content block. Media that cannot be shown renders as
// nothing.
func Block(blk project.Block) string {
	switch blk := blk.(type) {
	case *project.TextBlock:
		return "<p>" + blk.Content + "</p>\n"
	case *project.ImageBlock:
		src := mediaSrc(&blk.Media, ImageDir)
		if src == "" {
			return ""
		}
		alt := blk.Alt
		if alt == "" {
			alt = "Project image"
		}
		return fmt.Sprintf(`<div class="mb-6">
    <img src="%s" alt="%s" class="w-full h-auto rounded-lg shadow-lg" %s>
%s</div>
`, src, alt, mediaFallback, caption(blk.Caption))
	case *project.VideoBlock:
		if blk.Source == project.SourceYouTube {
			id := project.YouTubeID(blk.URL)
			if id == "" {
				return ""
			}
			return fmt.Sprintf(`<div class="mb-6 aspect-w-16 aspect-h-9">
    <iframe class="w-full h-auto rounded-lg shadow-lg" src="https://www.youtube.com/embed/%s" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe>
%s</div>
`, id, caption(blk.Caption))
		}
		src := mediaSrc(&blk.Media, VideoDir)
		if src == "" {
			return ""
		}
		return fmt.Sprintf(`<div class="mb-6">
    <video controls class="w-full h-auto rounded-lg shadow-lg" src="%s" %s></video>
%s</div>
`, src, mediaFallback, caption(blk.Caption))
	case *project.CodeBlock:
		heading := blk.Description
		if heading == "" {
			heading = "Example Code"
		}
		lang := blk.Language
		if lang == "" {
			lang = "plaintext"
		}
		var desc string
		if blk.Description != "" {
			desc = fmt.Sprintf(`<p class="text-gray-600 text-sm italic mt-2 dark:text-gray-400">%s</p>`+"\n", blk.Description)
		}
		return fmt.Sprintf(`<h4 class="text-xl font-semibold border-b border-gray-200 pb-2 mt-6 mb-4 dark:border-gray-700">Code Snippet: %s</h4>
<div class="code-snippet-container">
    <pre><code class="language-%s">%s</code></pre>
</div>
%s`, heading, lang, blk.Code, desc)
	}
	return ""
}

// mediaSrc resolves what an img or video element points at. Uploads are
// addressed by filename inside dir.
func mediaSrc(m *project.Media, dir string) string {
	switch m.Source {
	case project.SourceUpload:
		if m.Upload == nil || m.Upload.Name == "" {
			return ""
		}
		return dir + "/" + m.Upload.Name
	case project.SourceURL:
		if !project.IsValidURL(m.URL) {
			return ""
		}
		return strings.TrimSpace(m.URL)
	default:
		if strings.TrimSpace(m.URL) == "" {
			return ""
		}
		return strings.TrimSpace(m.URL)
	}
}

func caption(text string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf(`    <p class="text-center text-gray-500 text-sm mt-3 dark:text-gray-400">%s</p>`+"\n", text)
}
