package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PauloHFS/blogicum/internal/i18n"
	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/middleware"
	"github.com/PauloHFS/blogicum/internal/routes"
	"github.com/PauloHFS/blogicum/internal/services"
	"github.com/PauloHFS/blogicum/internal/validator"
	"github.com/PauloHFS/blogicum/internal/view"
)

func handleRegistrationForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	return render(deps, w, r, "registration", i18n.Get(r.Context()).Register, view.AuthFormData{})
}

func handleRegister(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	in := validator.RegistrationInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	emailDomain := ""
	if idx := strings.Index(in.Email, "@"); idx > 0 {
		emailDomain = in.Email[idx+1:]
	}
	logging.AddToEvent(r.Context(),
		slog.String("operation", "register"),
		slog.String("email_domain", emailDomain),
	)

	user, result, err := deps.Auth.Register(r.Context(), in)
	if err != nil {
		return err
	}
	if !result.Valid {
		logging.AddToEvent(r.Context(), slog.String("outcome", "invalid_form"))
		return render(deps, w, r, "registration", i18n.Get(r.Context()).Register, view.AuthFormData{
			Username: in.Username,
			Email:    in.Email,
			Errors:   result,
		})
	}

	logging.AddToEvent(r.Context(),
		slog.String("outcome", "success"),
		slog.Int64("created_user_id", user.ID),
	)
	deps.SessionManager.Put(r.Context(), middleware.SessionFlash, i18n.Get(r.Context()).SignedUp)
	redirect(w, r, routes.Login)
	return nil
}

func handleLoginForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	return render(deps, w, r, "login", i18n.Get(r.Context()).Login, view.AuthFormData{
		Next: r.URL.Query().Get("next"),
	})
}

// safeNext só aceita caminhos locais para não virar open redirect.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return routes.Home
}

func handleLogin(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	username := strings.TrimSpace(r.FormValue("username"))
	logging.AddToEvent(r.Context(), slog.String("operation", "login"))

	user, err := deps.Auth.Login(r.Context(), username, r.FormValue("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "invalid_credentials"),
		)
		t := i18n.Get(r.Context())
		deps.Renderer.Render(w, r, http.StatusOK, "login", view.NewPage(r.Context(), t.Login, view.AuthFormData{
			Username: username,
			Message:  t.InvalidLogin,
			Next:     r.FormValue("next"),
		}))
		return nil
	}
	if err != nil {
		return err
	}

	if err := deps.SessionManager.RenewToken(r.Context()); err != nil {
		return fmt.Errorf("failed to renew session token: %w", err)
	}
	deps.SessionManager.Put(r.Context(), middleware.SessionUserID, user.ID)

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"), slog.Int64("user_id", user.ID))
	redirect(w, r, safeNext(r.FormValue("next")))
	return nil
}

func handleLogout(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	if err := deps.SessionManager.Destroy(r.Context()); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	logging.AddToEvent(r.Context(), slog.String("operation", "logout"))
	redirect(w, r, routes.Home)
	return nil
}

func handleEditProfileForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	user, _ := middleware.GetUser(r.Context())
	return render(deps, w, r, "user", i18n.Get(r.Context()).EditProfile, view.ProfileFormData{
		Values: validator.ProfileInput{
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	})
}

func handleEditProfile(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	in := validator.ProfileInput{
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
	}
	logging.AddToEvent(r.Context(), slog.String("operation", "edit_profile"))

	user, result, err := deps.Auth.UpdateProfile(r.Context(), middleware.CurrentRequester(r.Context()), in)
	if err != nil {
		return err
	}
	if !result.Valid {
		logging.AddToEvent(r.Context(), slog.String("outcome", "invalid_form"))
		return render(deps, w, r, "user", i18n.Get(r.Context()).EditProfile, view.ProfileFormData{Values: in, Errors: result})
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	redirect(w, r, routes.Profile(user.Username))
	return nil
}
