package view

import (
	"context"

	"github.com/PauloHFS/blogicum/internal/contextkeys"
	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/i18n"
)

// CSRFToken retorna o token do contexto
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(contextkeys.CSRFTokenKey).(string); ok {
		return token
	}
	return ""
}

func currentUser(ctx context.Context) *db.User {
	if user, ok := ctx.Value(contextkeys.UserContextKey).(db.User); ok {
		return &user
	}
	return nil
}

func flash(ctx context.Context) string {
	msg, _ := ctx.Value(contextkeys.FlashKey).(string)
	return msg
}

// Page é o que o layout recebe. Data carrega os dados específicos da página.
type Page struct {
	Title     string
	T         i18n.Translation
	CSRFToken string
	User      *db.User
	Flash     string
	Data      any
}

// NewPage preenche os campos comuns a partir do contexto da requisição.
func NewPage(ctx context.Context, title string, data any) Page {
	return Page{
		Title:     title,
		T:         i18n.Get(ctx),
		CSRFToken: CSRFToken(ctx),
		User:      currentUser(ctx),
		Flash:     flash(ctx),
		Data:      data,
	}
}
