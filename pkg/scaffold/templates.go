package scaffold

import (
	"bytes"
	"embed"
	"path"
	"text/template"

	"github.com/pkg/errors"
)

// Template files
//
//go:embed templates/*
var templateFS embed.FS

const (
	skillBodyTemplate = "templates/skill_body.md.tmpl"
	readmeTemplate    = "templates/readme.md.tmpl"
)

// TemplateData holds the values substituted into the scaffold templates.
type TemplateData struct {
	Name        string
	Title       string
	Description string
	License     string
}

func renderTemplate(name string, data TemplateData) (string, error) {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read template %s", name)
	}

	tmpl, err := template.New(path.Base(name)).Parse(string(content))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute template %s", name)
	}

	return buf.String(), nil
}
