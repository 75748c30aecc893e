// Package render turns stored window content into display-ready HTML
// fragments. Constructed markup embeds trusted hosts in iframes; user
// supplied markup is sanitized before it leaves the server.
package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

var pinIDPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:pinterest\.com/pin/|pin\.it/)(\d+)`)

// Renderer produces HTML fragments for window content
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer with a UGC sanitization policy. The
// class attribute survives so embed markers (twitter-tweet,
// reddit-embed-bq) keep working after sanitization.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowStyling()
	return &Renderer{policy: policy}
}

// Render builds the HTML fragment for one window's content. Decision
// order mirrors classification: pinterest, video, generic URL, image,
// pdf, then sanitized markup.
func (r *Renderer) Render(content string, contentType types.ContentType) string {
	switch {
	case strings.Contains(content, "pinterest.com/pin/") || strings.Contains(content, "pin.it/"):
		return r.pinterest(content)

	case strings.Contains(content, "youtube.com") || strings.Contains(content, "youtu.be"):
		return videoFrame(youtubeEmbedURL(content))

	case strings.HasPrefix(content, "http://") || strings.HasPrefix(content, "https://"):
		if strings.HasSuffix(content, ".pdf") || contentType == types.ContentPDF {
			return pdfFrame(content)
		}
		return urlFrame(content)

	case contentType == types.ContentImage || strings.HasPrefix(content, "data:image"):
		return imageTag(content)

	case contentType == types.ContentPDF || strings.HasPrefix(content, "data:application/pdf"):
		return pdfFrame(content)

	default:
		return fmt.Sprintf(`<div class="window-body">%s</div>`, r.policy.Sanitize(content))
	}
}

func (r *Renderer) pinterest(content string) string {
	matches := pinIDPattern.FindStringSubmatch(content)
	if matches == nil {
		link := html.EscapeString(content)
		return fmt.Sprintf(
			`<div><p>Unable to embed Pinterest content. Please visit the link directly:</p><a href="%s" target="_blank" rel="noopener noreferrer">%s</a></div>`,
			link, link)
	}
	return fmt.Sprintf(
		`<iframe src="https://assets.pinterest.com/ext/embed.html?id=%s" height="550" width="100%%" frameborder="0" scrolling="no" title="Pinterest Embed"></iframe>`,
		matches[1])
}

// youtubeEmbedURL derives the embed form of a watch or short URL
func youtubeEmbedURL(raw string) string {
	var videoID string
	if strings.Contains(raw, "youtube.com") {
		_, after, found := strings.Cut(raw, "v=")
		if !found {
			return raw
		}
		videoID, _, _ = strings.Cut(after, "&")
	} else {
		parts := strings.Split(strings.TrimRight(raw, "/"), "/")
		videoID = parts[len(parts)-1]
	}
	return "https://www.youtube.com/embed/" + videoID
}

func videoFrame(src string) string {
	return fmt.Sprintf(
		`<iframe width="100%%" height="100%%" src="%s" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen title="Video"></iframe>`,
		html.EscapeString(src))
}

func pdfFrame(src string) string {
	return fmt.Sprintf(
		`<iframe src="%s" width="100%%" height="100%%" frameborder="0" title="PDF Viewer"></iframe>`,
		html.EscapeString(src))
}

func urlFrame(src string) string {
	return fmt.Sprintf(
		`<iframe src="%s" width="100%%" height="100%%" frameborder="0" title="External content"></iframe>`,
		html.EscapeString(src))
}

func imageTag(src string) string {
	return fmt.Sprintf(
		`<div class="image-container"><img src="%s" alt="Imported"/></div>`,
		html.EscapeString(src))
}
