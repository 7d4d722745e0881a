package notes

import (
	"html/template"
	"io"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

var noteTemplate = template.Must(template.New("notesheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Note Sheet — {{.Title.AgreementNo}}</title>
<style>
body { font-family: Georgia, serif; margin: 2em auto; max-width: 50em; }
h1 { text-align: center; font-size: 1.3em; letter-spacing: 0.1em; }
p.meta { text-align: center; margin-bottom: 2em; }
ol li { margin-bottom: 0.8em; text-align: justify; }
p.sign { margin-top: 3em; font-style: italic; }
</style>
</head>
<body>
<h1>NOTE SHEET</h1>
<p class="meta">{{.Title.BillType}} — {{.Title.NameOfWork}}<br>
Agreement No. {{.Title.AgreementNo}} — Contractor: {{.Title.Contractor}}</p>
<ol>
{{range .Notes}}<li>{{.Text}}</li>
{{end}}</ol>
<p class="sign">Submitted for orders please.</p>
</body>
</html>
`))

// renderData is the template context for the note sheet page.
type renderData struct {
	Title models.TitleInfo
	Notes []Note
}

// RenderHTML writes the note sheet as a standalone HTML page.
func RenderHTML(w io.Writer, title models.TitleInfo, notes []Note) error {
	return noteTemplate.Execute(w, renderData{Title: title, Notes: notes})
}
