package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/PauloHFS/blogicum/internal/i18n"
	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/view"
)

// Recovery transforma um panic em 500 com a página de erro do site. Fica por
// fora de toda a cadeia, então a página sai no idioma padrão e sem usuário.
func Recovery(renderer *view.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logging.AddToEvent(r.Context(), slog.Bool("panic", true))
				logging.Get().ErrorContext(r.Context(), "panic recovered",
					slog.String("error", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
					slog.String("path", r.URL.Path),
				)

				page := view.NewPage(r.Context(), i18n.Get(r.Context()).ServerError, view.ErrorData{Status: http.StatusInternalServerError})
				renderer.Render(w, r, http.StatusInternalServerError, "error", page)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
