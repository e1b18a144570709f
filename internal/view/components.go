package view

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/PauloHFS/blogicum/internal/i18n"
	"github.com/PauloHFS/blogicum/internal/validator"
)

// CSRFField é o campo oculto que o nosurf confere em todo POST.
func CSRFField(token string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<input type="hidden" name="csrf_token" value="%s">`, templ.EscapeString(token))
		return err
	})
}

// FieldErrors lista as mensagens de validação; sem erros não escreve nada.
func FieldErrors(errs []validator.ValidationError) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(errs) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<ul class="errors">`); err != nil {
			return err
		}
		for _, e := range errs {
			if _, err := fmt.Fprintf(w, "<li>%s</li>", templ.EscapeString(e.Message)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	})
}

// PostStatus marca, para o autor, por que o post ainda não é público.
func PostStatus(t i18n.Translation, card PostCard) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if card.Public {
			return nil
		}
		label := t.Scheduled
		switch {
		case !card.Post.IsPublished:
			label = t.Draft
		case card.Post.CategoryIsPublished.Valid && !card.Post.CategoryIsPublished.Bool:
			label = t.HiddenTopic
		}
		_, err := fmt.Fprintf(w, `<p class="status">%s</p>`, templ.EscapeString(label))
		return err
	})
}

// goHTML embute um componente num template html/template.
func goHTML(c templ.Component) (template.HTML, error) {
	return templ.ToGoHTML(context.Background(), c)
}
