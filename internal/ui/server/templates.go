package server

import (
	"fmt"
	"html/template"
	"path/filepath"
)

// loadTemplates parses the page templates keyed by logical name.
func loadTemplates(dir string) (map[string]*template.Template, error) {
	base := filepath.Join(dir, "base.tmpl")
	auth := filepath.Join(dir, "auth.tmpl")

	authTmpl, err := template.New("auth").ParseFiles(base, auth)
	if err != nil {
		return nil, fmt.Errorf("parse auth templates: %w", err)
	}
	return map[string]*template.Template{
		"auth": authTmpl,
	}, nil
}
