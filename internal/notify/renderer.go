package notify

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// Source declares one named message template. Text is the plain body; HTML
// is an optional alternative part.
type Source struct {
	Name string
	Text string
	HTML string
}

// Body is a rendered message: plain text plus an optional HTML alternative.
type Body struct {
	Text string
	HTML string
}

// Renderer resolves template ids to parsed templates. The whole set is
// parsed at construction so a bad template fails the process at startup
// instead of a worker at send time; render-time failures are then limited to
// unresolvable context keys.
type Renderer struct {
	text map[string]*texttemplate.Template
	html map[string]*htmltemplate.Template
}

// NewRenderer parses every source up front. Duplicate names, empty text
// bodies, and unparsable templates all fail fast.
func NewRenderer(sources ...Source) (*Renderer, error) {
	r := &Renderer{
		text: make(map[string]*texttemplate.Template, len(sources)),
		html: make(map[string]*htmltemplate.Template, len(sources)),
	}
	for _, src := range sources {
		if src.Name == "" {
			return nil, fmt.Errorf("template with empty name")
		}
		if _, dup := r.text[src.Name]; dup {
			return nil, fmt.Errorf("duplicate template %q", src.Name)
		}
		if strings.TrimSpace(src.Text) == "" {
			return nil, fmt.Errorf("template %q has no text body", src.Name)
		}

		tt, err := texttemplate.New(src.Name).Option("missingkey=error").Parse(src.Text)
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", src.Name, err)
		}
		r.text[src.Name] = tt

		if src.HTML != "" {
			ht, err := htmltemplate.New(src.Name).Option("missingkey=error").Parse(src.HTML)
			if err != nil {
				return nil, fmt.Errorf("parse html template %q: %w", src.Name, err)
			}
			r.html[src.Name] = ht
		}
	}
	return r, nil
}

// Render resolves a template id against a job context. Unknown ids and
// unresolvable context keys are deterministic failures: the caller must not
// retry.
func (r *Renderer) Render(templateID string, context map[string]any) (Body, error) {
	tt, ok := r.text[templateID]
	if !ok {
		return Body{}, fmt.Errorf("unknown template %q", templateID)
	}

	var text strings.Builder
	if err := tt.Execute(&text, context); err != nil {
		return Body{}, fmt.Errorf("render template %q: %w", templateID, err)
	}

	body := Body{Text: text.String()}
	if ht, ok := r.html[templateID]; ok {
		var html strings.Builder
		if err := ht.Execute(&html, context); err != nil {
			return Body{}, fmt.Errorf("render html template %q: %w", templateID, err)
		}
		body.HTML = html.String()
	}
	return body, nil
}

// Has reports whether a template id is registered. Services use it to fail
// fast when wiring jobs at startup.
func (r *Renderer) Has(templateID string) bool {
	_, ok := r.text[templateID]
	return ok
}
