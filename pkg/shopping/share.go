package shopping

import (
	"Foodia-Shopping/domain"
	"bytes"
	"fmt"
	"html/template"
)

var listEmailTemplate = template.Must(template.New("shopping-list").Parse(`<html>
<body style="font-family: sans-serif;">
<h2>Your shopping list</h2>
{{- if not .Sections }}
<p>Your list is empty.</p>
{{- end }}
{{- range .Sections }}
<h3>{{ .Category }}</h3>
<ul>
{{- range .Items }}
<li>{{ if .Completed }}<s>{{ end }}{{ .Quantity }} &times; {{ .DisplayName }}{{ if .Completed }}</s>{{ end }}{{ if .SourceRecipeTitle }} <small>({{ .SourceRecipeTitle }})</small>{{ end }}</li>
{{- end }}
</ul>
{{- end }}
</body>
</html>`))

// renderListEmail renders the sectioned list as an HTML mail body. Completed items
// are dropped unless includeCompleted is set; sections left empty are dropped too.
func renderListEmail(list domain.ShoppingListResponse, includeCompleted bool) (string, error) {
	view := domain.ShoppingListResponse{Sections: []domain.ShoppingSection{}}

	for _, section := range list.Sections {
		kept := domain.ShoppingSection{Category: section.Category}
		for _, item := range section.Items {
			if item.Completed && !includeCompleted {
				continue
			}
			kept.Items = append(kept.Items, item)
		}
		if len(kept.Items) > 0 {
			view.Sections = append(view.Sections, kept)
		}
	}

	var buf bytes.Buffer
	if err := listEmailTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render shopping list email: %w", err)
	}
	return buf.String(), nil
}
