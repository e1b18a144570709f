package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/i18n"
	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/middleware"
	"github.com/PauloHFS/blogicum/internal/routes"
	"github.com/PauloHFS/blogicum/internal/validator"
	"github.com/PauloHFS/blogicum/internal/view"
)

const formDateLayout = "2006-01-02T15:04"

func handleHome(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	posts, err := deps.Blog.HomeFeed(r.Context(), middleware.CurrentRequester(r.Context()))
	if err != nil {
		return err
	}
	return render(deps, w, r, "index", "", view.FeedData{Posts: cards(deps.Blog.Policy(), posts)})
}

func handleCategory(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	slug := r.PathValue("category_slug")
	logging.AddToEvent(r.Context(), slog.String("category_slug", slug))

	category, page, err := deps.Blog.CategoryFeed(r.Context(), middleware.CurrentRequester(r.Context()), slug, pageParam(r))
	if err != nil {
		return err
	}

	pagination := view.PaginationOf(page, routes.Category(slug))
	return render(deps, w, r, "category", category.Title, view.FeedData{
		Posts:      cards(deps.Blog.Policy(), page.Items),
		Pagination: &pagination,
		Category:   &category,
	})
}

func handleProfile(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	requester := middleware.CurrentRequester(r.Context())

	author, page, err := deps.Blog.ProfileFeed(r.Context(), requester, r.PathValue("username"), pageParam(r))
	if err != nil {
		return err
	}

	pagination := view.PaginationOf(page, routes.Profile(author.Username))
	return render(deps, w, r, "profile", author.Username, view.FeedData{
		Posts:      cards(deps.Blog.Policy(), page.Items),
		Pagination: &pagination,
		Profile:    &author,
		IsOwner:    requester.UserID == author.ID,
	})
}

func handlePostDetail(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, err := pathID(r, "post_id")
	if err != nil {
		return err
	}
	return renderDetail(deps, w, r, postID, view.CommentFormData{})
}

// renderDetail também serve para reexibir o formulário de comentário inválido.
func renderDetail(deps HandlerDeps, w http.ResponseWriter, r *http.Request, postID int64, form view.CommentFormData) error {
	requester := middleware.CurrentRequester(r.Context())
	logging.AddToEvent(r.Context(), slog.Int64("post_id", postID))

	post, comments, err := deps.Blog.PostDetail(r.Context(), requester, postID)
	if err != nil {
		return err
	}

	policy := deps.Blog.Policy()
	items := make([]view.CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, view.CommentItem{Comment: c, CanEdit: policy.AuthorizeMutation(requester, c).Allowed})
	}

	form.Action = routes.AddComment(post.ID)
	return render(deps, w, r, "detail", post.Title, view.DetailData{
		Post:     view.PostCard{Post: post, Public: policy.IsPubliclyVisible(post)},
		CanEdit:  policy.AuthorizeMutation(requester, post).Allowed,
		Comments: items,
		Form:     form,
	})
}

// formID converte o valor de um select. Vazio é "nenhum"; lixo vira -1 e
// falha na validação.
func formID(v string) int64 {
	if v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return -1
	}
	return id
}

func postInput(r *http.Request) validator.PostInput {
	return validator.PostInput{
		Title:       r.FormValue("title"),
		Text:        r.FormValue("text"),
		PubDate:     r.FormValue("pub_date"),
		LocationID:  formID(r.FormValue("location")),
		CategoryID:  formID(r.FormValue("category")),
		IsPublished: r.FormValue("is_published") != "",
	}
}

func postValues(p db.Post) validator.PostInput {
	return validator.PostInput{
		Title:       p.Title,
		Text:        p.Text,
		PubDate:     p.PubDate.UTC().Format(formDateLayout),
		LocationID:  p.LocationID.Int64,
		CategoryID:  p.CategoryID.Int64,
		IsPublished: p.IsPublished,
	}
}

func renderPostForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request, title string, data view.PostFormData) error {
	categories, locations, err := deps.Blog.FormChoices(r.Context())
	if err != nil {
		return err
	}
	data.Categories = categories
	data.Locations = locations
	return render(deps, w, r, "create", title, data)
}

func handleCreatePostForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	return renderPostForm(deps, w, r, i18n.Get(r.Context()).NewPost, view.PostFormData{
		Action: routes.CreatePost,
		Values: validator.PostInput{
			PubDate:     time.Now().UTC().Format(formDateLayout),
			IsPublished: true,
		},
	})
}

func handleCreatePost(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	user, _ := middleware.GetUser(r.Context())
	in := postInput(r)

	logging.AddToEvent(r.Context(), slog.String("operation", "create_post"))

	id, result, err := deps.Blog.CreatePost(r.Context(), middleware.CurrentRequester(r.Context()), in)
	if err != nil {
		return err
	}
	if !result.Valid {
		logging.AddToEvent(r.Context(), slog.String("outcome", "invalid_form"))
		return renderPostForm(deps, w, r, i18n.Get(r.Context()).NewPost, view.PostFormData{
			Action: routes.CreatePost,
			Values: in,
			Errors: result,
		})
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"), slog.Int64("post_id", id))
	redirect(w, r, routes.Profile(user.Username))
	return nil
}

func handleEditPostForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, err := pathID(r, "post_id")
	if err != nil {
		return err
	}

	post, decision, err := deps.Blog.PostForMutation(r.Context(), middleware.CurrentRequester(r.Context()), postID)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return denied(w, r, decision)
	}

	return renderPostForm(deps, w, r, post.Title, view.PostFormData{
		Action: routes.EditPost(postID),
		Values: postValues(post),
	})
}

func handleEditPost(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, err := pathID(r, "post_id")
	if err != nil {
		return err
	}
	in := postInput(r)

	logging.AddToEvent(r.Context(), slog.String("operation", "edit_post"), slog.Int64("post_id", postID))

	decision, result, err := deps.Blog.UpdatePost(r.Context(), middleware.CurrentRequester(r.Context()), postID, in)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return denied(w, r, decision)
	}
	if !result.Valid {
		logging.AddToEvent(r.Context(), slog.String("outcome", "invalid_form"))
		return renderPostForm(deps, w, r, in.Title, view.PostFormData{
			Action: routes.EditPost(postID),
			Values: in,
			Errors: result,
		})
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	redirect(w, r, routes.PostDetail(postID))
	return nil
}

func handleDeletePostForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, err := pathID(r, "post_id")
	if err != nil {
		return err
	}

	post, decision, err := deps.Blog.PostForMutation(r.Context(), middleware.CurrentRequester(r.Context()), postID)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return denied(w, r, decision)
	}

	return render(deps, w, r, "create", post.Title, view.PostFormData{
		Action: routes.DeletePost(postID),
		Values: postValues(post),
		Delete: true,
	})
}

func handleDeletePost(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, err := pathID(r, "post_id")
	if err != nil {
		return err
	}

	logging.AddToEvent(r.Context(), slog.String("operation", "delete_post"), slog.Int64("post_id", postID))

	decision, err := deps.Blog.DeletePost(r.Context(), middleware.CurrentRequester(r.Context()), postID)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return denied(w, r, decision)
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	redirect(w, r, routes.Home)
	return nil
}
