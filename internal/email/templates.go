package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type quoteApprovedEmailData struct {
	baseEmailData
	QuoteTitle     string
	TotalFormatted string
}

type quoteRejectedEmailData struct {
	baseEmailData
	QuoteTitle string
}

type analysisCompletedEmailData struct {
	baseEmailData
	QuoteTitle     string
	WorkCategories []string
}

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderEmailTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
