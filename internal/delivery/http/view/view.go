package view

import (
	"embed"
	"html/template"
	"io"

	"clinic-intake/internal/delivery/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

const layout = "templates/base.html"

// Views holds the parsed pages. Each page is its own template set sharing
// the base layout.
type Views struct {
	Form         *FormTemplate
	Confirmation *ConfirmationTemplate
}

func Load() (*Views, error) {
	form, err := parsePage("templates/form.html")
	if err != nil {
		return nil, err
	}
	confirmation, err := parsePage("templates/confirmation.html")
	if err != nil {
		return nil, err
	}

	return &Views{
		Form:         &FormTemplate{form},
		Confirmation: &ConfirmationTemplate{confirmation},
	}, nil
}

func MustLoad() *Views {
	views, err := Load()
	if err != nil {
		panic(err)
	}
	return views
}

func parsePage(page string) (*template.Template, error) {
	return template.ParseFS(templateFS, layout, page)
}

// form

type FormTemplate struct {
	*template.Template
}

func (t *FormTemplate) Execute(w io.Writer, ctx interface{}) error {
	return t.Render(w, ctx.(*dto.FormPage))
}

func (t *FormTemplate) Render(w io.Writer, page *dto.FormPage) error {
	return t.Template.ExecuteTemplate(w, "base", page)
}

// confirmation

type ConfirmationTemplate struct {
	*template.Template
}

func (t *ConfirmationTemplate) Execute(w io.Writer, ctx interface{}) error {
	return t.Render(w, ctx.(*dto.ConfirmationPage))
}

func (t *ConfirmationTemplate) Render(w io.Writer, page *dto.ConfirmationPage) error {
	return t.Template.ExecuteTemplate(w, "base", page)
}
