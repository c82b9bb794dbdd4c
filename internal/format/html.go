package format

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/unspool/unspool/internal/types"
)

var htmlTemplate = template.Must(template.New("thread").Funcs(template.FuncMap{
	"formatTime": func(t time.Time) string { return formatTime(t) },
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
{{if .Header}}<h1>{{.Header}}</h1>
{{if .Incomplete}}<p><em>This thread appears incomplete; some posts could not be found.</em></p>{{end}}
{{end}}
{{range .Records}}<article>
  <header>
    <strong>{{.Author.DisplayName}}</strong>
    <a href="https://x.com/{{.Author.Handle}}">@{{.Author.Handle}}</a>
    <a href="{{.SourceURL}}">{{formatTime .Timestamp}}</a>
  </header>
  {{if .Content}}<p>{{.Content}}</p>{{end}}
  {{range .Media}}{{if eq (printf "%s" .Kind) "image"}}<img src="{{.URL}}" alt="{{.AltText}}">{{else}}<a href="{{.URL}}">{{.Kind}}</a>{{end}}
  {{end}}
  {{with .Quoted}}<blockquote><strong>{{.Author.DisplayName}}</strong> @{{.Author.Handle}}<br>{{.Content}}</blockquote>{{end}}
  <footer>{{.Metrics.Replies}} replies &middot; {{.Metrics.Reposts}} reposts &middot; {{.Metrics.Likes}} likes</footer>
</article>
{{end}}</body>
</html>
`))

type htmlData struct {
	Title      string
	Header     string
	Incomplete bool
	Records    []types.Record
}

// ThreadHTML renders a thread as a standalone HTML document.
func ThreadHTML(td *types.ThreadData) (string, error) {
	title := fmt.Sprintf("Thread by @%s", td.Author.Handle)
	return renderHTML(htmlData{
		Title:      title,
		Header:     title,
		Incomplete: !td.IsComplete,
		Records:    td.Records,
	})
}

// RecordsHTML renders records as a standalone HTML document.
func RecordsHTML(records []types.Record) (string, error) {
	return renderHTML(htmlData{
		Title:   "Extracted posts",
		Records: records,
	})
}

func renderHTML(data htmlData) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}
