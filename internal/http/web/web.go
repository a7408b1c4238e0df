package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates holds the page templates compiled into the binary.
var Templates = template.Must(template.New("").Funcs(template.FuncMap{
	"ratioStyle": ratioStyle,
}).ParseFS(templatesFS, "templates/*.html"))

// AspectRatios are the ratios offered in the aspect ratio dropdown.
var AspectRatios = []string{"1/1", "4/3", "3/4", "3/2", "2/3", "16/9", "9/16", "21/9", "9/21"}

// ImageCountOptions lists the choices of the image count dropdown, 1 to limit.
func ImageCountOptions(limit int) []int {
	if limit < 1 {
		limit = 1
	}
	counts := make([]int, limit)
	for i := range counts {
		counts[i] = i + 1
	}
	return counts
}

// ratioStyle renders an aspect-ratio declaration. Ratios reach the page only
// after they parsed as "W/H" numbers; anything else falls back to a square.
func ratioStyle(ratio string) template.CSS {
	ratio = strings.TrimSpace(ratio)
	if ratio == "" || strings.Trim(ratio, "0123456789./ ") != "" {
		ratio = "1/1"
	}
	return template.CSS("aspect-ratio: " + ratio)
}
