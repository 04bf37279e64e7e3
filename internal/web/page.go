package web

import (
	"html/template"

	"sleepcalc/internal/render"
)

var funcs = template.FuncMap{
	"label": render.Label,
}

const pageHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>sleepcalc</title>
  {{if .Refresh}}<meta http-equiv="refresh" content="{{.Refresh}}">{{end}}
  {{if .ShareDescription}}
  <meta name="description" content="{{.ShareDescription}}">
  <meta property="og:description" content="{{.ShareDescription}}">
  {{end}}
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; padding: 24px; max-width: 640px; box-sizing: border-box; background: #f4f1ea; color: #222; }
    * { box-sizing: border-box; }
    h2 { margin-top: 0; font-weight: 600; }
    .err { color: #b00020; margin: 12px 0; padding: 10px; background: #ffebee; border-radius: 6px; }
    .card { border: 1px solid #ddd6c8; border-radius: 10px; padding: 16px; margin: 16px 0; background: #fff; }
    .mono { font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace; }
    .modes { display: flex; gap: 16px; margin-bottom: 14px; }
    .field { margin-bottom: 14px; }
    .field label { display: block; font-weight: 500; margin-bottom: 4px; }
    .field input[type="text"] { padding: 8px 10px; font-size: 1em; border: 1px solid #ccc; border-radius: 6px; max-width: 100px; }
    .hint { color: #666; font-size: 0.9em; margin-top: 4px; }
    table { border-collapse: collapse; width: 100%; }
    td { padding: 8px 10px; border-top: 1px solid #eee; }
    td.recommended { color: #e0571b; font-weight: 700; }
    button[type="submit"] { padding: 10px 20px; font-size: 1em; background: #222; color: #fff; border: none; border-radius: 6px; cursor: pointer; }
    footer { margin-top: 40px; color: #666; font-size: 0.9em; text-align: center; }
  </style>
</head>
<body>
  <form method="POST" action="/calc" class="card">
    <div class="modes">
      <label><input type="radio" name="mode" value="wake" {{if eq .Mode "wake"}}checked{{end}}> I want to wake up at</label>
      <label><input type="radio" name="mode" value="sleep" {{if eq .Mode "sleep"}}checked{{end}}> I'm going to bed now</label>
    </div>
    <div class="field">
      <label for="wake">Wake time</label>
      <input id="wake" name="wake" type="text" class="mono" value="{{.Wake}}" placeholder="07:00" pattern="[0-9]{1,2}:[0-9]{2}" autocomplete="off">
      <div class="hint">24-hour HH:MM, used in wake mode</div>
    </div>
    {{if .DemoTime}}<input type="hidden" name="demoTime" value="{{.DemoTime}}">{{end}}
    <button type="submit">Calculate</button>
  </form>

  {{if .Error}}<div class="err">{{.Error}}</div>{{end}}

  {{if .Entries}}
  <div class="card">
    <h2>{{.Heading}}</h2>
    {{if eq .Mode "sleep"}}<div class="hint">It is now <span class="mono">{{.Now}}</span>. Falling asleep takes about 14 minutes.</div>{{end}}
    <table>
      {{range .Entries}}
      <tr>
        <td>{{label .}}</td>
        <td class="mono{{if .Recommended}} recommended{{end}}">{{.Display}}</td>
      </tr>
      {{end}}
    </table>
  </div>
  {{end}}

  <footer>sleepcalc v{{.Version}}</footer>
</body>
</html>`
