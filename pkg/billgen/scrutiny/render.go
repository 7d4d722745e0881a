package scrutiny

import (
	"html/template"
	"io"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

var reportTemplate = template.Must(template.New("scrutiny").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Scrutiny Report — {{.Title.AgreementNo}}</title>
<style>
body { font-family: Georgia, serif; margin: 2em auto; max-width: 55em; }
h1 { text-align: center; font-size: 1.3em; letter-spacing: 0.1em; }
p.meta { text-align: center; margin-bottom: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #444; padding: 0.4em 0.6em; text-align: left; }
tr.error td:first-child { color: #a00; font-weight: bold; }
tr.warning td:first-child { color: #850; }
tr.info td:first-child { color: #060; }
</style>
</head>
<body>
<h1>SCRUTINY REPORT</h1>
<p class="meta">{{.Title.BillType}} — {{.Title.NameOfWork}}<br>
Agreement No. {{.Title.AgreementNo}}</p>
<table>
<tr><th>Severity</th><th>Check</th><th>Observation</th></tr>
{{range .Findings}}<tr class="{{.Severity}}"><td>{{.Severity}}</td><td>{{.Code}}</td><td>{{.Message}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type reportData struct {
	Title    models.TitleInfo
	Findings []Finding
}

// RenderHTML writes the scrutiny findings as a standalone HTML report.
func RenderHTML(w io.Writer, title models.TitleInfo, findings []Finding) error {
	return reportTemplate.Execute(w, reportData{Title: title, Findings: findings})
}
