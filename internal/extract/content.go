package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// extractContent locates the primary text container and reconstructs its
// text. The second return is false only when no container strategy matched
// at all; a matched but empty container is a legitimate empty post body
// (media-only posts).
func (e *Extractor) extractContent(post *goquery.Selection) (string, bool) {
	container := e.cascade.Query(post, contentContainer)
	if container == nil {
		return "", false
	}
	var b strings.Builder
	renderNodes(&b, container)
	return strings.TrimSpace(b.String()), true
}

// renderNodes walks the container's children reconstructing visible text.
// Hyperlinks become [text](href) except internal/auto-shortened ones, and
// inline images contribute their alt text, which is how emoji render.
func renderNodes(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		switch {
		case node.Type == html.TextNode:
			b.WriteString(node.Data)
		case node.Data == "a":
			renderAnchor(b, child)
		case node.Data == "img":
			if alt, ok := child.Attr("alt"); ok {
				b.WriteString(alt)
			}
		case node.Data == "br":
			b.WriteString("\n")
		default:
			renderNodes(b, child)
		}
	})
}

func renderAnchor(b *strings.Builder, a *goquery.Selection) {
	var inner strings.Builder
	renderNodes(&inner, a)
	text := strings.TrimSpace(inner.String())
	href, _ := a.Attr("href")

	switch {
	case text == "":
		// Nothing visible, nothing to emit.
	case isShortenedLinkText(text):
		// Auto-shortened t.co text adds noise; drop it.
	case strings.HasPrefix(text, "@") || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "$"):
		// Mentions, hashtags, cashtags read better as plain text.
		b.WriteString(text)
	case href == "" || strings.HasPrefix(href, "/"):
		b.WriteString(text)
	default:
		fmt.Fprintf(b, "[%s](%s)", text, href)
	}
}

func isShortenedLinkText(text string) bool {
	return strings.HasPrefix(text, "https://t.co/") ||
		strings.HasPrefix(text, "http://t.co/") ||
		strings.HasPrefix(text, "t.co/")
}
