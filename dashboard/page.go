package dashboard

import (
	"fmt"
	"html/template"

	"github.com/spektr-org/popstat/engine"
)

type pageData struct {
	Title    string
	Caption  string
	ShowLogo bool
	TabBar   string
	TabPie   string
	TabShare string
	Error    string
	Result   *engine.Result
}

func newPageData(cfg Config) pageData {
	return pageData{
		Title:    engine.DefaultTitle,
		Caption:  Caption,
		ShowLogo: cfg.LogoPath != "",
		TabBar:   fmt.Sprintf("Bar Chart (%d)", cfg.YearA),
		TabPie:   fmt.Sprintf("Pie Chart (%d)", cfg.YearB),
		TabShare: fmt.Sprintf("Percentage Change (%d to %d)", cfg.YearA, cfg.YearB),
	}
}

// table returns the i-th result table or nil.
func table(r *engine.Result, i int) *engine.TableData {
	if r == nil || i < 0 || i >= len(r.Tables) {
		return nil
	}
	return r.Tables[i]
}

// align returns the alignment of column i, "left" when out of range.
func align(cols []engine.Column, i int) string {
	if i < 0 || i >= len(cols) || cols[i].Align == "" {
		return "left"
	}
	return cols[i].Align
}

var pageFuncs = template.FuncMap{
	"table": table,
	"align": align,
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; color: #1f2937; }
  header { display: flex; align-items: center; gap: 1.5rem; padding: 1.25rem 2rem; border-bottom: 1px solid #e5e7eb; }
  header img { height: 64px; }
  header h1 { margin: 0; font-size: 1.6rem; }
  header p { margin: .25rem 0 0; color: #6b7280; font-size: .9rem; }
  main { padding: 1.5rem 2rem; }
  .error { background: #fef2f2; border: 1px solid #fecaca; color: #991b1b; padding: 1rem; border-radius: 6px; }
  .tabs input { display: none; }
  .tabs label { display: inline-block; padding: .6rem 1rem; cursor: pointer; border-bottom: 3px solid transparent; }
  .tabs input:checked + label { border-bottom-color: #ef4444; font-weight: 600; }
  .panel { display: none; padding-top: 1rem; }
  #tab-bar:checked ~ #panel-bar, #tab-pie:checked ~ #panel-pie, #tab-share:checked ~ #panel-share { display: block; }
  .panel img { max-width: 100%; }
  .notice { color: #6b7280; font-style: italic; }
  table { border-collapse: collapse; margin-top: 1rem; font-size: .9rem; }
  th, td { padding: .35rem .75rem; border-bottom: 1px solid #e5e7eb; }
  td.right, th.right { text-align: right; }
  td.center, th.center { text-align: center; }
  tfoot td { font-weight: 600; }
</style>
</head>
<body>
<header>
  {{if .ShowLogo}}<img src="/logo" alt="Logo">{{end}}
  <div>
    <h1>{{.Title}}</h1>
    <p>{{.Caption}}</p>
  </div>
</header>
<main>
{{if .Error}}
  <div class="error">{{.Error}}</div>
{{else}}
  {{range .Result.Errors}}<p class="notice">{{.}}</p>{{end}}
  <div class="tabs">
    <input type="radio" name="tab" id="tab-bar" checked><label for="tab-bar">{{.TabBar}}</label>
    <input type="radio" name="tab" id="tab-pie"><label for="tab-pie">{{.TabPie}}</label>
    <input type="radio" name="tab" id="tab-share"><label for="tab-share">{{.TabShare}}</label>

    <section class="panel" id="panel-bar">
      <img src="/charts/bar.png" alt="{{.Result.Bar.Title}}">
      {{template "table" (table .Result 0)}}
    </section>

    <section class="panel" id="panel-pie">
      {{if .Result.Pie}}<img src="/charts/pie.png" alt="{{.Result.Pie.Title}}">{{end}}
      {{template "table" (table .Result 1)}}
    </section>

    <section class="panel" id="panel-share">
      {{if .Result.ShareChange}}
        <img src="/charts/share-change.png" alt="{{.Result.ShareChange.Title}}">
        {{with .Result.Summary}}<p>{{.Value}}</p>{{end}}
        {{template "table" (table .Result 2)}}
      {{else}}
        <p class="notice">Percentage change is unavailable for these years.</p>
      {{end}}
    </section>
  </div>
  <p><a href="/export.xlsx">Download data (.xlsx)</a></p>
{{end}}
</main>
</body>
</html>
{{define "table"}}{{if .}}
<table>
  <caption>{{.Title}}</caption>
  <thead><tr>{{range $i, $col := .Columns}}<th{{if ne (align $.Columns $i) "left"}} class="{{align $.Columns $i}}"{{end}}>{{$col.Label}}</th>{{end}}</tr></thead>
  <tbody>{{range .Rows}}<tr>{{range $i, $cell := .}}<td{{if ne (align $.Columns $i) "left"}} class="{{align $.Columns $i}}"{{end}}>{{$cell}}</td>{{end}}</tr>{{end}}</tbody>
  {{with .Summary}}<tfoot><tr>{{range $i, $col := $.Columns}}{{if eq $i 0}}<td>{{$.Summary.Label}}</td>{{else}}<td{{if ne (align $.Columns $i) "left"}} class="{{align $.Columns $i}}"{{end}}>{{index $.Summary.Values $col.Key}}</td>{{end}}{{end}}</tr></tfoot>{{end}}
</table>
{{end}}{{end}}
`))
