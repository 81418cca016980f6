package report

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<article class="report report-{{.Mode}}" data-id="{{.ID}}">
<h1>{{.Title}}</h1>
{{range .Sections}}<section>
{{if .Heading}}<h2>{{.Heading}}</h2>
{{end}}<ul>
{{range .Lines}}<li>{{.}}</li>
{{end}}</ul>
</section>
{{end}}</article>
</body>
</html>
`))

// HTML renders the report as a standalone HTML page.
func (r *Report) HTML(w io.Writer) error {
	return pageTemplate.Execute(w, r)
}
