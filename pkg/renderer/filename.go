package renderer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filename derives the artifact name for a company and role, e.g.
// "Acme Corp", "SRE/Ops" -> "acme_corp_sre_ops_roadmap.json".
func Filename(company, role, format string) (name string) {
	ext := "json"
	if format == FormatYAML {
		ext = "yaml"
	}

	name = company + "_" + role + "_roadmap." + ext
	name = strings.NewReplacer(" ", "_", "/", "_").Replace(name)
	name = cases.Lower(language.Und).String(name)
	return name
}
