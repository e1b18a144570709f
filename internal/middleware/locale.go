package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/PauloHFS/blogicum/internal/contextkeys"
	"github.com/PauloHFS/blogicum/internal/i18n"
)

func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Verificar Cookie (preferência manual)
		locale := i18n.DefaultLocale
		cookie, err := r.Cookie("lang")
		if err == nil {
			locale = cookie.Value
		} else {
			// 2. Verificar Header Accept-Language
			accept := r.Header.Get("Accept-Language")
			if strings.HasPrefix(accept, "en") {
				locale = "en"
			}
		}

		ctx := context.WithValue(r.Context(), contextkeys.LocaleKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
