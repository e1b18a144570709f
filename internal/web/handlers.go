package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PauloHFS/blogicum/internal/config"
	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/i18n"
	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/middleware"
	"github.com/PauloHFS/blogicum/internal/policies"
	"github.com/PauloHFS/blogicum/internal/routes"
	"github.com/PauloHFS/blogicum/internal/services"
	"github.com/PauloHFS/blogicum/internal/view"
)

// Pinger é o que o health check precisa do banco.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HandlerDeps struct {
	DB             Pinger
	Blog           *services.BlogService
	Auth           *services.AuthService
	SessionManager *scs.SessionManager
	Config         *config.Config
	Renderer       *view.Renderer
}

// AppHandler é um tipo customizado que permite retornar erros dos handlers
type AppHandler func(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error

// Handle envolve nosso AppHandler para conformidade com http.HandlerFunc.
// ErrNotFound vira a página 404; qualquer outro erro é logado e vira 500.
func Handle(deps HandlerDeps, h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(deps, w, r)
		if err == nil {
			return
		}

		ctx := r.Context()
		if errors.Is(err, policies.ErrNotFound) {
			logging.AddToEvent(ctx, slog.String("outcome", "not_found"))
			renderError(deps, w, r, http.StatusNotFound)
			return
		}

		logging.AddToEvent(ctx, slog.String("outcome", "error"), slog.String("error", err.Error()))
		logging.Get().Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		renderError(deps, w, r, http.StatusInternalServerError)
	}
}

func renderError(deps HandlerDeps, w http.ResponseWriter, r *http.Request, status int) {
	t := i18n.Get(r.Context())
	title := t.ServerError
	if status == http.StatusNotFound {
		title = t.NotFound
	}
	deps.Renderer.Render(w, r, status, "error", view.NewPage(r.Context(), title, view.ErrorData{Status: status}))
}

// exact ancora o padrão: sem {$} um padrão terminado em / casaria a subárvore.
func exact(method, pattern string) string {
	return method + " " + pattern + "{$}"
}

func RegisterRoutes(mux *http.ServeMux, deps HandlerDeps) {
	auth := func(h AppHandler) http.Handler {
		return middleware.RequireAuth(Handle(deps, h))
	}

	// Public Routes
	mux.HandleFunc(exact("GET", routes.Home), Handle(deps, handleHome))
	mux.HandleFunc(exact("GET", routes.PostDetailPattern), Handle(deps, handlePostDetail))
	mux.HandleFunc(exact("GET", routes.CategoryPattern), Handle(deps, handleCategory))
	mux.HandleFunc(exact("GET", routes.ProfilePattern), Handle(deps, handleProfile))

	// Posts
	mux.Handle(exact("GET", routes.CreatePost), auth(handleCreatePostForm))
	mux.Handle(exact("POST", routes.CreatePost), auth(handleCreatePost))
	mux.Handle(exact("GET", routes.EditPostPattern), auth(handleEditPostForm))
	mux.Handle(exact("POST", routes.EditPostPattern), auth(handleEditPost))
	mux.Handle(exact("GET", routes.DeletePostPattern), auth(handleDeletePostForm))
	mux.Handle(exact("POST", routes.DeletePostPattern), auth(handleDeletePost))

	// Comments
	mux.Handle(exact("POST", routes.AddCommentPattern), auth(handleAddComment))
	mux.Handle(exact("GET", routes.EditCommentPattern), auth(handleEditCommentForm))
	mux.Handle(exact("POST", routes.EditCommentPattern), auth(handleEditComment))
	mux.Handle(exact("GET", routes.DeleteCommentPattern), auth(handleDeleteCommentForm))
	mux.Handle(exact("POST", routes.DeleteCommentPattern), auth(handleDeleteComment))

	// Auth Handlers
	mux.Handle(exact("GET", routes.EditProfile), auth(handleEditProfileForm))
	mux.Handle(exact("POST", routes.EditProfile), auth(handleEditProfile))
	mux.HandleFunc(exact("GET", routes.Registration), Handle(deps, handleRegistrationForm))
	mux.HandleFunc(exact("POST", routes.Registration), Handle(deps, handleRegister))
	mux.HandleFunc(exact("GET", routes.Login), Handle(deps, handleLoginForm))
	mux.HandleFunc(exact("POST", routes.Login), Handle(deps, handleLogin))
	mux.HandleFunc(exact("POST", routes.Logout), Handle(deps, handleLogout))

	mux.HandleFunc("GET "+routes.Health, func(w http.ResponseWriter, r *http.Request) {
		if err := deps.DB.Ping(r.Context()); err != nil {
			logging.Get().Error("health check failed: db unreachable", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("GET "+routes.Metrics, promhttp.Handler())

	mux.HandleFunc("/", Handle(deps, func(HandlerDeps, http.ResponseWriter, *http.Request) error {
		return policies.ErrNotFound
	}))
}

// pathID lê um id numérico da rota. Lixo na URL é tratado como inexistente.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, policies.ErrNotFound
	}
	return id, nil
}

// pageParam volta para a primeira página quando ?page é inválido.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// denied registra a recusa e devolve o usuário à página do post.
func denied(w http.ResponseWriter, r *http.Request, d policies.Decision) error {
	logging.AddToEvent(r.Context(),
		slog.String("outcome", "denied"),
		slog.String("redirect_to", d.RedirectTo),
	)
	redirect(w, r, d.RedirectTo)
	return nil
}

func render(deps HandlerDeps, w http.ResponseWriter, r *http.Request, name, title string, data any) error {
	deps.Renderer.Render(w, r, http.StatusOK, name, view.NewPage(r.Context(), title, data))
	return nil
}

func cards(policy policies.Policy, posts []db.Post) []view.PostCard {
	out := make([]view.PostCard, 0, len(posts))
	for _, p := range posts {
		out = append(out, view.PostCard{Post: p, Public: policy.IsPubliclyVisible(p)})
	}
	return out
}
