package policies

import (
	"context"
	"errors"
	"time"

	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/routes"
)

// ErrNotFound cobre tanto o post inexistente quanto o post que o requisitante
// não pode ver. Quem chama não consegue distinguir os dois casos.
var ErrNotFound = errors.New("post not found")

// Requester identifica quem faz a requisição. UserID zero é anônimo.
type Requester struct {
	UserID int64
}

var Anonymous = Requester{}

func As(user db.User) Requester {
	return Requester{UserID: user.ID}
}

func (r Requester) IsAnonymous() bool {
	return r.UserID == 0
}

func (r Requester) owns(authorID int64) bool {
	return !r.IsAnonymous() && r.UserID == authorID
}

// FeedMode escolhe como FilterVisible trata a lista de candidatos.
type FeedMode int

const (
	// PublicFeed mantém só o que IsVisible permite.
	PublicFeed FeedMode = iota
	// OwnerFeed devolve tudo: o dono do perfil vê rascunhos e agendados.
	OwnerFeed
)

// Resource é qualquer registro com autor que pode ser editado ou removido.
type Resource interface {
	OwnerID() int64
	// ParentPostID é o post cuja página de detalhe serve de destino do redirect.
	ParentPostID() int64
}

type Decision struct {
	Allowed    bool
	RedirectTo string
}

func (d Decision) Denied() bool {
	return !d.Allowed
}

type PostFinder interface {
	GetPost(ctx context.Context, id int64) (db.Post, error)
}

// Policy decide visibilidade e autoria. Não guarda estado além do relógio e
// pode ser compartilhada entre requisições.
type Policy struct {
	Now func() time.Time
}

func New() Policy {
	return Policy{Now: time.Now}
}

func (p Policy) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// IsPubliclyVisible aplica as três condições de publicação sem considerar
// quem está olhando. Post sem categoria passa na condição da categoria.
func (p Policy) IsPubliclyVisible(post db.Post) bool {
	if !post.IsPublished {
		return false
	}
	if post.PubDate.After(p.now()) {
		return false
	}
	if post.CategoryIsPublished.Valid && !post.CategoryIsPublished.Bool {
		return false
	}
	return true
}

func (p Policy) IsVisible(requester Requester, post db.Post) bool {
	return requester.owns(post.AuthorID) || p.IsPubliclyVisible(post)
}

// FilterVisible nunca reordena: o resultado é uma subsequência da entrada.
func (p Policy) FilterVisible(posts []db.Post, requester Requester, mode FeedMode) []db.Post {
	if mode == OwnerFeed {
		return posts
	}
	visible := make([]db.Post, 0, len(posts))
	for _, post := range posts {
		if p.IsVisible(requester, post) {
			visible = append(visible, post)
		}
	}
	return visible
}

func (p Policy) AuthorizeMutation(requester Requester, resource Resource) Decision {
	if requester.owns(resource.OwnerID()) {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: routes.PostDetail(resource.ParentPostID())}
}

func (p Policy) ResolveOwnPostOrPublic(ctx context.Context, finder PostFinder, requester Requester, postID int64) (db.Post, error) {
	post, err := finder.GetPost(ctx, postID)
	if errors.Is(err, db.ErrNotFound) {
		return db.Post{}, ErrNotFound
	}
	if err != nil {
		return db.Post{}, err
	}
	if !p.IsVisible(requester, post) {
		return db.Post{}, ErrNotFound
	}
	return post, nil
}
