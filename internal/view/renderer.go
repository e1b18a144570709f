package view

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/fsnotify/fsnotify"

	"github.com/PauloHFS/blogicum/internal/i18n"
	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/routes"
	"github.com/PauloHFS/blogicum/internal/validator"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	layoutFile   = "layout.html"
	partialsFile = "partials.html"
)

var funcs = template.FuncMap{
	"text":    RenderText,
	"excerpt": Excerpt,
	"date": func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	},
	"url": func(name string) string {
		switch name {
		case "home":
			return routes.Home
		case "login":
			return routes.Login
		case "logout":
			return routes.Logout
		case "registration":
			return routes.Registration
		case "create":
			return routes.CreatePost
		case "edit_profile":
			return routes.EditProfile
		}
		return "/"
	},
	"postURL":          routes.PostDetail,
	"editPostURL":      routes.EditPost,
	"deletePostURL":    routes.DeletePost,
	"commentURL":       routes.AddComment,
	"editCommentURL":   routes.EditComment,
	"deleteCommentURL": routes.DeleteComment,
	"categoryURL":      routes.Category,
	"profileURL":       routes.Profile,
	"csrfField": func(token string) (template.HTML, error) {
		return goHTML(CSRFField(token))
	},
	"fieldErrors": func(errs []validator.ValidationError) (template.HTML, error) {
		return goHTML(FieldErrors(errs))
	},
	"postStatus": func(t i18n.Translation, card PostCard) (template.HTML, error) {
		return goHTML(PostStatus(t, card))
	},
	"pageOf": func(format string, p Pagination) string {
		return fmt.Sprintf(format, p.CurrentPage, p.TotalPages())
	},
}

// Renderer guarda um template por página, cada um com o layout e os parciais.
// Com um diretório configurado, Watch recarrega tudo a cada alteração.
type Renderer struct {
	mu    sync.RWMutex
	dir   string
	fsys  fs.FS
	pages map[string]*template.Template
}

// NewRenderer usa os templates embutidos quando dir é vazio.
func NewRenderer(dir string) (*Renderer, error) {
	r := &Renderer{dir: dir}
	if dir == "" {
		sub, err := fs.Sub(templatesFS, "templates")
		if err != nil {
			return nil, err
		}
		r.fsys = sub
	} else {
		r.fsys = os.DirFS(dir)
	}

	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) load() error {
	names, err := fs.Glob(r.fsys, "*.html")
	if err != nil {
		return err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutFile || name == partialsFile {
			continue
		}
		t, err := template.New(layoutFile).Funcs(funcs).ParseFS(r.fsys, layoutFile, partialsFile, name)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = t
	}

	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

// Component devolve a página como templ.Component.
func (r *Renderer) Component(name string, page Page) templ.Component {
	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()

	if !ok {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("template %q not found", name)
		})
	}
	return templ.FromGoHTML(t, page)
}

func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, page Page) {
	templ.Handler(r.Component(name, page),
		templ.WithStatus(status),
		templ.WithErrorHandler(renderFailed(name)),
	).ServeHTTP(w, req)
}

func renderFailed(name string) func(*http.Request, error) http.Handler {
	return func(req *http.Request, err error) http.Handler {
		logging.AddToEvent(req.Context(),
			slog.String("template", name),
			slog.String("render_error", err.Error()),
		)
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		})
	}
}

// Watch recarrega os templates do disco até ctx ser cancelado. Sem diretório
// configurado não há o que observar.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", r.dir, err)
	}

	logger := logging.Get()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := r.load(); err != nil {
				logger.Error("template reload failed", "file", ev.Name, "error", err)
				continue
			}
			logger.Info("templates reloaded", "file", ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("template watcher error", "error", err)
		}
	}
}
