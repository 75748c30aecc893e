// Package classify maps raw pasted or imported data to a typed, normalized
// window payload.
//
// Classification is a prioritized rule chain; the first matching rule wins.
// It is total over strings: any input produces a (content, contentType)
// pair. Only file imports can fail, and only with a typed error for
// unsupported MIME types, in which case the caller creates no window.
package classify

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"

	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

// ErrUnsupported indicates a file whose MIME type has no window mapping
var ErrUnsupported = errors.New("unsupported file type")

// Result is a classified, normalized window payload
type Result struct {
	Content string
	Type    types.ContentType
}

// BlobStore holds transient binary payloads (imported PDFs) and returns
// a handle the renderer can reference
type BlobStore interface {
	Put(contentType string, data []byte) (string, error)
}

// videoHosts whose URLs the renderer can turn into player embeds
var videoHosts = map[string]bool{
	"youtube.com":      true,
	"youtu.be":         true,
	"vimeo.com":        true,
	"player.vimeo.com": true,
}

var pinIDPattern = regexp.MustCompile(`id=(\d+)`)

// Classifier inspects raw content and produces typed payloads
type Classifier struct {
	blobs BlobStore
}

// New creates a classifier. blobs may be nil if file import is not used.
func New(blobs BlobStore) *Classifier {
	return &Classifier{blobs: blobs}
}

// Text classifies pasted text. Total: never fails.
func (c *Classifier) Text(raw string) Result {
	content := strings.TrimSpace(raw)

	switch {
	case isAbsoluteURL(content):
		return Result{Content: content, Type: types.ContentURL}

	case strings.HasPrefix(content, "<iframe") && strings.Contains(content, "pinterest.com"):
		if pin := extractPinID(content); pin != "" {
			return Result{
				Content: fmt.Sprintf("https://www.pinterest.com/pin/%s/", pin),
				Type:    types.ContentURL,
			}
		}
		return Result{Content: "<div>" + content + "</div>", Type: types.ContentEmbed}

	case hasEmbedMarker(content):
		return Result{Content: content, Type: types.ContentEmbed}

	case strings.HasPrefix(content, "<"):
		return Result{Content: "<div>" + content + "</div>", Type: types.ContentEmbed}

	default:
		return Result{Content: "<p>" + content + "</p>", Type: types.ContentText}
	}
}

// Bytes decodes raw clipboard bytes to text and classifies the result.
// Non-UTF-8 input is charset-detected before decoding.
func (c *Classifier) Bytes(raw []byte) Result {
	return c.Text(decodeText(raw))
}

// File classifies an imported file by sniffing its actual content.
// Images inline as data URIs; PDFs are parked in the blob store and
// referenced by handle. Anything else returns ErrUnsupported.
func (c *Classifier) File(data []byte) (Result, error) {
	mtype := mimetype.Detect(data)

	switch {
	case strings.HasPrefix(mtype.String(), "image/"):
		uri := fmt.Sprintf("data:%s;base64,%s", mtype.String(), base64.StdEncoding.EncodeToString(data))
		return Result{Content: uri, Type: types.ContentImage}, nil

	case mtype.Is("application/pdf"):
		if c.blobs == nil {
			return Result{}, fmt.Errorf("pdf import: %w: no blob store configured", ErrUnsupported)
		}
		handle, err := c.blobs.Put(mtype.String(), data)
		if err != nil {
			return Result{}, fmt.Errorf("pdf import: %w", err)
		}
		return Result{Content: handle, Type: types.ContentPDF}, nil

	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, mtype.String())
	}
}

// IsVideoURL reports whether a URL points at a recognized video provider
func IsVideoURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return videoHosts[host]
}

func isAbsoluteURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Host != "" && !strings.ContainsAny(s, " \n\t")
}

// extractPinID pulls the numeric pin id out of a Pinterest embed iframe.
// Prefers the parsed src attribute; falls back to a raw scan when the
// fragment does not parse.
func extractPinID(fragment string) string {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment)); err == nil {
		if src, ok := doc.Find("iframe").Attr("src"); ok {
			if m := pinIDPattern.FindStringSubmatch(src); m != nil {
				return m[1]
			}
		}
	}
	if m := pinIDPattern.FindStringSubmatch(fragment); m != nil {
		return m[1]
	}
	return ""
}

// hasEmbedMarker detects social embeds that must pass through verbatim
// so the provider's widget script can hydrate them
func hasEmbedMarker(fragment string) bool {
	if !strings.Contains(fragment, "twitter-tweet") && !strings.Contains(fragment, "reddit-embed-bq") {
		return false
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment)); err == nil {
		return doc.Find(".twitter-tweet, .reddit-embed-bq").Length() > 0
	}
	return strings.Contains(fragment, `class="twitter-tweet"`) ||
		strings.Contains(fragment, `class="reddit-embed-bq"`)
}

// decodeText converts clipboard bytes to a UTF-8 string. Valid UTF-8
// passes through; otherwise the charset is detected and single-byte
// encodings are decoded directly, with lossy replacement as the last
// resort.
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	detector := chardet.NewTextDetector()
	if res, err := detector.DetectBest(raw); err == nil {
		switch res.Charset {
		case "ISO-8859-1", "windows-1252":
			runes := make([]rune, len(raw))
			for i, b := range raw {
				runes[i] = rune(b)
			}
			return string(runes)
		}
	}
	return strings.ToValidUTF8(string(raw), "�")
}
