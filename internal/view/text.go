package view

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Texto de post e comentário é texto puro: nenhuma tag sobrevive.
var textPolicy = bluemonday.StrictPolicy()

// RenderText limpa o texto do usuário e troca quebras de linha por <br>.
func RenderText(s string) template.HTML {
	clean := textPolicy.Sanitize(strings.ReplaceAll(s, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(clean, "\n", "<br>"))
}

// Excerpt corta o texto para os cards das listagens.
func Excerpt(s string, words int) string {
	fields := strings.Fields(s)
	if len(fields) <= words {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:words], " ") + "…"
}
