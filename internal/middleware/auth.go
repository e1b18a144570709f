package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"

	"github.com/PauloHFS/blogicum/internal/contextkeys"
	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/policies"
	"github.com/PauloHFS/blogicum/internal/routes"
)

const (
	SessionUserID = "user_id"
	SessionFlash  = "flash"
)

// LoadUser coloca no contexto o usuário da sessão, se houver. Sessão que
// aponta para usuário removido é descartada.
func LoadUser(sm *scs.SessionManager, queries *db.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if msg := sm.PopString(ctx, SessionFlash); msg != "" {
				ctx = context.WithValue(ctx, contextkeys.FlashKey, msg)
			}

			userID := sm.GetInt64(ctx, SessionUserID)
			if userID == 0 {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			user, err := queries.GetUserByID(ctx, userID)
			if errors.Is(err, db.ErrNotFound) {
				sm.Remove(ctx, SessionUserID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			if err != nil {
				logging.Get().Error("failed to load session user", "user_id", userID, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			logging.AddToEvent(ctx, slog.Int64("user_id", user.ID))
			ctx = context.WithValue(ctx, contextkeys.UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth manda anônimos para o login, guardando a página de origem em next.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			redirectLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func redirectLogin(w http.ResponseWriter, r *http.Request) {
	target := routes.Login + "?next=" + url.QueryEscape(r.URL.RequestURI())
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", target)
	} else {
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// GetUser recupera o usuário do contexto de forma segura
func GetUser(ctx context.Context) (db.User, bool) {
	user, ok := ctx.Value(contextkeys.UserContextKey).(db.User)
	return user, ok
}

// CurrentRequester converte o usuário do contexto no Requester da política.
func CurrentRequester(ctx context.Context) policies.Requester {
	if user, ok := GetUser(ctx); ok {
		return policies.As(user)
	}
	return policies.Anonymous
}
