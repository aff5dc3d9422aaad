package export

import (
	htmltemplate "html/template"
	"text/template"

	"src.lessondeck.sh/pkg/render"
)

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
`

var pageTemplate = htmltemplate.Must(htmltemplate.New("page").Parse(htmlHead +
	`<title>{{ .Unit.Title }} - {{ .DeckTitle }}</title>
</head>
<body>
<nav>
<a href="{{ .Index }}">{{ .DeckTitle }}</a>
{{- with .Prev }} | <a href="{{ .File }}" rel="prev">{{ .Title }}</a>{{ end }}
{{- with .Next }} | <a href="{{ .File }}" rel="next">{{ .Title }}</a>{{ end }}
</nav>
{{ .Body }}</body>
</html>
`))

var indexTemplates = map[render.Format]executor{
	render.HTML: htmltemplate.Must(htmltemplate.New("index").Parse(htmlHead +
		`<title>{{ .Title }}</title>
</head>
<body>
<h1>{{ .Title }}</h1>
<ol>
{{- range .Units }}
<li><a href="{{ .File }}">{{ .Title }}</a></li>
{{- end }}
</ol>
</body>
</html>
`)),

	render.Markdown: template.Must(template.New("index").Parse(
		`# {{ .Title }}
{{ range .Units }}
{{ .Number }}. [{{ .Title }}]({{ .File }})
{{- end }}
`)),

	render.Plain: template.Must(template.New("index").Parse(
		`{{ .Title }}
{{ range .Units }}
{{ .Number }}. {{ .Title }} ({{ .File }})
{{- end }}
`)),
}
