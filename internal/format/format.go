// Package format renders extracted records and threads into presentation
// text. It consumes finished values only; nothing here touches the page.
package format

import (
	"fmt"

	"github.com/unspool/unspool/internal/types"
)

// Format names a supported output rendering.
type Format string

const (
	Markdown Format = "markdown"
	Text     Format = "text"
	HTML     Format = "html"
)

// RenderThread renders a thread in the requested format.
func RenderThread(td *types.ThreadData, f Format) (string, error) {
	switch f {
	case Markdown:
		return ThreadMarkdown(td), nil
	case Text:
		return ThreadText(td), nil
	case HTML:
		return ThreadHTML(td)
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}

// RenderRecords renders a flat list of records in the requested format.
func RenderRecords(records []types.Record, f Format) (string, error) {
	switch f {
	case Markdown:
		return RecordsMarkdown(records), nil
	case Text:
		return RecordsText(records), nil
	case HTML:
		return RecordsHTML(records)
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}
