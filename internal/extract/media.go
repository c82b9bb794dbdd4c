package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/unspool/unspool/internal/types"
)

// extractMedia collects embedded images, videos, and animated images using
// kind-specific cascades. Profile imagery is excluded by URL substring, and
// the same kind+URL pair appears at most once. Nodes under exclude (the
// quoted-post container, when present) belong to the quote, not the post,
// and are skipped; pass nil to scan the whole subtree.
func (e *Extractor) extractMedia(post, exclude *goquery.Selection) []types.MediaRef {
	var refs []types.MediaRef
	seen := make(map[string]bool)

	var excludeRoot *html.Node
	if exclude != nil && exclude.Length() > 0 {
		excludeRoot = exclude.Get(0)
	}

	add := func(ref types.MediaRef) {
		if ref.URL == "" || isAvatarURL(ref.URL) {
			return
		}
		key := string(ref.Kind) + "|" + ref.URL
		if seen[key] {
			return
		}
		seen[key] = true
		refs = append(refs, ref)
	}

	// Animated images first: their <video> nodes would otherwise be
	// claimed by the generic video cascade.
	animated := make(map[string]bool)
	for _, node := range e.cascade.QueryAll(post, animatedNode) {
		if underNode(node, excludeRoot) {
			continue
		}
		src, _ := node.Attr("src")
		poster, _ := node.Attr("poster")
		animated[src] = true
		add(types.MediaRef{Kind: types.MediaAnimatedImage, URL: src, PreviewURL: poster})
	}

	for _, node := range e.cascade.QueryAll(post, videoNode) {
		if underNode(node, excludeRoot) {
			continue
		}
		src, _ := node.Attr("src")
		poster, _ := node.Attr("poster")
		if animated[src] {
			continue
		}
		if src == "" {
			// Streaming players expose only a poster.
			src = poster
		}
		add(types.MediaRef{Kind: types.MediaVideo, URL: src, PreviewURL: poster})
	}

	for _, node := range e.cascade.QueryAll(post, imageNode) {
		if underNode(node, excludeRoot) {
			continue
		}
		src, _ := node.Attr("src")
		alt, _ := node.Attr("alt")
		add(types.MediaRef{
			Kind:       types.MediaImage,
			URL:        UpgradeImageURL(src),
			PreviewURL: src,
			AltText:    alt,
		})
	}

	return refs
}

// underNode reports whether sel's node sits inside root's subtree.
func underNode(sel *goquery.Selection, root *html.Node) bool {
	if root == nil || sel.Length() == 0 {
		return false
	}
	for n := sel.Get(0); n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

func isAvatarURL(u string) bool {
	for _, deny := range avatarURLDenylist {
		if strings.Contains(u, deny) {
			return true
		}
	}
	return false
}

// UpgradeImageURL rewrites a Twitter media URL to request the original
// quality variant: size and format query parameters are dropped in favor
// of the canonical format=jpg&name=orig pair. Non-media URLs pass through
// untouched.
func UpgradeImageURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.Host != "pbs.twimg.com" || !strings.Contains(u.Path, "/media/") {
		return raw
	}

	format := "jpg"
	if f := u.Query().Get("format"); f != "" {
		format = f
	}
	u.RawQuery = url.Values{
		"format": {format},
		"name":   {"orig"},
	}.Encode()
	return u.String()
}
