package web

import "html/template"

type dashboardData struct {
	GeneratedAt string
	Error       string
	Models      []modelPayload
	Sessions    []sessionPayload
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>modelwatch</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f0f0f0; }
.error { color: #b00020; font-weight: bold; }
.empty { color: #777; }
footer { color: #777; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Running models</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Models}}
<table>
<tr><th>Model</th><th>Families</th><th>Parameters</th><th>Size</th><th>CPU/GPU</th><th>Expires</th></tr>
{{range .Models}}
<tr>
<td>{{.Name}}</td>
<td>{{.Families}}</td>
<td>{{.ParameterSize}}</td>
<td>{{.Size}}</td>
<td>{{.CPUGPUSplit}}</td>
<td>{{if .ExpiresLocal}}{{.ExpiresLocal}} ({{.ExpiresIn}}){{end}}</td>
</tr>
{{end}}
</table>
{{else if not .Error}}<p class="empty">No models are currently running.</p>{{end}}
<h1>Session history</h1>
{{if .Sessions}}
<table>
<tr><th>Model</th><th>Started</th><th>Ended</th><th>Duration</th><th>Size</th><th>CPU/GPU</th></tr>
{{range .Sessions}}
<tr>
<td>{{.ModelName}}</td>
<td>{{.StartedAt}}</td>
<td>{{if .EndedAt}}{{.EndedAt}}{{else}}still running{{end}}</td>
<td>{{.Duration}}</td>
<td>{{.Size}}</td>
<td>{{.CPUGPUSplit}}</td>
</tr>
{{end}}
</table>
{{else}}<p class="empty">No sessions recorded yet.</p>{{end}}
<footer>Generated at {{.GeneratedAt}}</footer>
</body>
</html>
`))
