package render

import (
	"os"
	"strings"
	"text/template"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/shiplog/internal/model"
)

// defaultTemplate renders a compact changelog suitable for a chat post.
const defaultTemplate = `{{- if .Release}}*Release {{.Release}}*

{{end -}}
{{- if .Highlights}}{{.Highlights}}

{{end -}}
{{- if .Tickets.All -}}
Tickets:
{{- range .Tickets.All}}
- [{{.Key}}] {{.Summary}} ({{.Type}}, {{.Status}}){{if .Reverted}} [reverted]{{end}}
{{- end}}
{{- end}}
{{- if .Commits.NoTickets}}

Commits without tickets:
{{- range .Commits.NoTickets}}
- {{.ShortSHA}} {{.Subject}}
{{- end}}
{{- end}}
{{- if .Tickets.PendingByOwner}}

Pending approval:
{{- range .Tickets.PendingByOwner}}
- {{.Name}}{{if .SlackUser}} (@{{.SlackUser}}){{end}}: {{range $i, $t := .Tickets}}{{if $i}}, {{end}}{{$t.Key}}{{end}}
{{- end}}
{{- end}}
`

// Config represents renderer configuration
type Config struct {
	// TemplatePath points to a user template file, the built-in template
	// is used when empty.
	TemplatePath string `yaml:"template_path" env:"RENDER_TEMPLATE_PATH"`
}

// Renderer turns the assembled changelog object into text.
type Renderer struct {
	tmpl *template.Template
	log  logze.Logger
}

// New creates a new renderer
func New(cfg Config) (*Renderer, error) {
	text := defaultTemplate
	if cfg.TemplatePath != "" {
		raw, err := os.ReadFile(cfg.TemplatePath)
		if err != nil {
			return nil, errm.Wrap(err, "failed to read template file")
		}
		text = string(raw)
	}

	tmpl, err := template.New("changelog").Parse(text)
	if err != nil {
		return nil, errm.Wrap(err, "failed to parse changelog template")
	}

	return &Renderer{
		tmpl: tmpl,
		log:  logze.With("component", "render"),
	}, nil
}

// Render executes the template over the changelog object.
func (r *Renderer) Render(changelog *model.Changelog) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, changelog); err != nil {
		return "", errm.Wrap(err, "failed to render changelog")
	}
	return strings.TrimSpace(b.String()) + "\n", nil
}
