package view

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// BuildNav renders the site navigation from the classification list.
func BuildNav(classes []domain.Classification) template.HTML {
	var b strings.Builder
	b.WriteString(`<ul><li><a href="/" title="Home page">Home</a></li>`)
	for _, c := range classes {
		name := template.HTMLEscapeString(c.Name)
		b.WriteString(`<li><a href="/inv/type/`)
		b.WriteString(strconv.FormatInt(c.ID, 10))
		b.WriteString(`" title="See our inventory of `)
		b.WriteString(name)
		b.WriteString(` vehicles">`)
		b.WriteString(name)
		b.WriteString(`</a></li>`)
	}
	b.WriteString(`</ul>`)
	return template.HTML(b.String())
}

// ClassificationOptions renders the classification <select> with selected
// preselected. A zero selected leaves the prompt option active.
func ClassificationOptions(classes []domain.Classification, selected int64) template.HTML {
	var b strings.Builder
	b.WriteString(`<select name="classification_id" id="classificationList" required>`)
	b.WriteString(`<option value="">Choose a Classification</option>`)
	for _, c := range classes {
		b.WriteString(`<option value="`)
		b.WriteString(strconv.FormatInt(c.ID, 10))
		b.WriteString(`"`)
		if c.ID == selected {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(template.HTMLEscapeString(c.Name))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
	return template.HTML(b.String())
}
