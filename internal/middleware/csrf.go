package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/justinas/nosurf"

	"github.com/PauloHFS/blogicum/internal/contextkeys"
	"github.com/PauloHFS/blogicum/internal/logging"
)

// CSRF protege todos os métodos não seguros. O token chega aos templates
// pelo contexto, via InjectCSRF.
func CSRF(next http.Handler, secure bool) http.Handler {
	h := nosurf.New(InjectCSRF(next))
	h.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	h.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "csrf_failed"),
			slog.Any("csrf_error", nosurf.Reason(r)),
		)
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	}))
	return h
}

func InjectCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := nosurf.Token(r)
		ctx := context.WithValue(r.Context(), contextkeys.CSRFTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
