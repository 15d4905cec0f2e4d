package document

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"sort"
	"strings"
)

// baseCSS 重置浏览器默认样式，保证无头浏览器与预览的盒模型一致。
const baseCSS = `*{box-sizing:border-box}` +
	`html,body{margin:0;padding:0;background:#fff}` +
	`h1,h2,h3,h4,p,ul,li{margin:0;padding:0}` +
	`ul{list-style:none}` +
	`img{display:block}` +
	`a{text-decoration:none}`

const shellTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
{{- range .Stylesheets}}
<link rel="stylesheet" href="{{.}}">
{{- end}}
<style>{{.CSS}}</style>
</head>
<body>
{{- if .FrameStyle}}<div id="resume-frame" style="{{css .FrameStyle}}">{{end}}
<div id="resume-root" style="{{css .RootStyle}}">
{{- range .Children}}{{template "node" .}}{{end -}}
</div>
{{- if .FrameStyle}}</div>{{end}}
</body>
</html>
`

const nodeTemplate = `
{{- define "attrs"}}{{with .Role}} data-role="{{.}}"{{end}}{{with .Style}} style="{{css .}}"{{end}}{{end}}
{{- define "node"}}
{{- if eq .Kind "text"}}<span{{template "attrs" .}}>{{.Text}}</span>
{{- else if eq .Kind "para"}}<p{{template "attrs" .}}>{{.Text}}{{range .Children}}{{template "node" .}}{{end}}</p>
{{- else if eq .Kind "heading"}}
{{- if eq .Level 1}}<h1{{template "attrs" .}}>{{.Text}}</h1>
{{- else if eq .Level 2}}<h2{{template "attrs" .}}>{{.Text}}</h2>
{{- else if eq .Level 3}}<h3{{template "attrs" .}}>{{.Text}}</h3>
{{- else}}<h4{{template "attrs" .}}>{{.Text}}</h4>{{end}}
{{- else if eq .Kind "image"}}<img{{template "attrs" .}} src="{{src .Src}}" alt="">
{{- else if eq .Kind "link"}}<a{{template "attrs" .}} href="{{.Src}}">{{.Text}}</a>
{{- else if eq .Kind "list"}}<ul{{template "attrs" .}}>{{range .Children}}{{template "node" .}}{{end}}</ul>
{{- else if eq .Kind "item"}}<li{{template "attrs" .}}>{{.Text}}{{range .Children}}{{template "node" .}}{{end}}</li>
{{- else}}<div{{template "attrs" .}}>{{.Text}}{{range .Children}}{{template "node" .}}{{end}}</div>
{{- end}}
{{- end}}`

var funcs = template.FuncMap{
	"css": inlineCSS,
	"src": safeSrc,
}

var shell = template.Must(template.Must(template.New("shell").Funcs(funcs).Parse(shellTemplate)).Parse(nodeTemplate))

// ShellOptions 控制文档外壳：同一棵文档树既可以作为缩放预览输出，也可以作为离屏导出页面输出。
type ShellOptions struct {
	Title string
	// RootStyle 覆盖在根节点自身样式之上。
	RootStyle map[string]string
	// FrameStyle 非空时在根节点外再包一层容器。
	FrameStyle  map[string]string
	ExtraCSS    string
	Stylesheets []string
}

type shellData struct {
	Title       string
	Stylesheets []string
	CSS         template.CSS
	FrameStyle  map[string]string
	RootStyle   map[string]string
	Children    []*Node
}

// WriteHTML serializes doc as a standalone HTML page.
func WriteHTML(w io.Writer, doc *Document, opts ShellOptions) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("write html: empty document")
	}

	root := make(map[string]string, len(doc.Root.Style)+len(opts.RootStyle))
	for k, v := range doc.Root.Style {
		root[k] = v
	}
	for k, v := range opts.RootStyle {
		root[k] = v
	}

	title := opts.Title
	if title == "" {
		title = "Resume"
	}

	data := shellData{
		Title:       title,
		Stylesheets: opts.Stylesheets,
		CSS:         template.CSS(baseCSS + opts.ExtraCSS),
		FrameStyle:  opts.FrameStyle,
		RootStyle:   root,
		Children:    doc.Root.Children,
	}
	if err := shell.ExecuteTemplate(w, "shell", data); err != nil {
		return fmt.Errorf("execute document template: %w", err)
	}
	return nil
}

// RenderHTML is WriteHTML into a string.
func RenderHTML(doc *Document, opts ShellOptions) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, doc, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FontStylesheet 返回字体族对应的 Google Fonts 样式表地址；系统字体返回空串。
func FontStylesheet(family string) string {
	switch family {
	case "", "Arial":
		return ""
	}
	q := url.Values{}
	q.Set("family", family+":wght@400;500;600;700;800;900")
	q.Set("display", "swap")
	return "https://fonts.googleapis.com/css2?" + q.Encode()
}

func inlineCSS(style map[string]string) template.CSS {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := strings.Map(func(r rune) rune {
			switch r {
			case ';', '{', '}', '<', '>':
				return -1
			}
			return r
		}, style[k])
		if v == "" {
			continue
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(v)
		b.WriteByte(';')
	}
	return template.CSS(b.String())
}

// safeSrc 只放行 data:image/，页面里的图片不会触发任何网络请求。
func safeSrc(s string) template.URL {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "data:image/") {
		return template.URL(s)
	}
	return ""
}
