package web

import (
	"log/slog"
	"net/http"

	"github.com/PauloHFS/blogicum/internal/i18n"
	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/middleware"
	"github.com/PauloHFS/blogicum/internal/routes"
	"github.com/PauloHFS/blogicum/internal/validator"
	"github.com/PauloHFS/blogicum/internal/view"
)

func commentIDs(r *http.Request) (int64, int64, error) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		return 0, 0, err
	}
	commentID, err := pathID(r, "comment_id")
	if err != nil {
		return 0, 0, err
	}
	logging.AddToEvent(r.Context(), slog.Int64("post_id", postID), slog.Int64("comment_id", commentID))
	return postID, commentID, nil
}

func handleAddComment(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, err := pathID(r, "post_id")
	if err != nil {
		return err
	}
	in := validator.CommentInput{Text: r.FormValue("text")}

	logging.AddToEvent(r.Context(), slog.String("operation", "add_comment"), slog.Int64("post_id", postID))

	result, err := deps.Blog.AddComment(r.Context(), middleware.CurrentRequester(r.Context()), postID, in)
	if err != nil {
		return err
	}
	if !result.Valid {
		logging.AddToEvent(r.Context(), slog.String("outcome", "invalid_form"))
		return renderDetail(deps, w, r, postID, view.CommentFormData{Text: in.Text, Errors: result})
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	redirect(w, r, routes.PostDetail(postID))
	return nil
}

func handleEditCommentForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, commentID, err := commentIDs(r)
	if err != nil {
		return err
	}

	comment, decision, err := deps.Blog.CommentForMutation(r.Context(), middleware.CurrentRequester(r.Context()), postID, commentID)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return denied(w, r, decision)
	}

	return render(deps, w, r, "comment", i18n.Get(r.Context()).EditComment, view.CommentFormData{
		Action: routes.EditComment(postID, commentID),
		Text:   comment.Text,
	})
}

func handleEditComment(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, commentID, err := commentIDs(r)
	if err != nil {
		return err
	}
	in := validator.CommentInput{Text: r.FormValue("text")}

	logging.AddToEvent(r.Context(), slog.String("operation", "edit_comment"))

	decision, result, err := deps.Blog.UpdateComment(r.Context(), middleware.CurrentRequester(r.Context()), postID, commentID, in)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return denied(w, r, decision)
	}
	if !result.Valid {
		logging.AddToEvent(r.Context(), slog.String("outcome", "invalid_form"))
		return render(deps, w, r, "comment", i18n.Get(r.Context()).EditComment, view.CommentFormData{
			Action: routes.EditComment(postID, commentID),
			Text:   in.Text,
			Errors: result,
		})
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	redirect(w, r, routes.PostDetail(postID))
	return nil
}

func handleDeleteCommentForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, commentID, err := commentIDs(r)
	if err != nil {
		return err
	}

	comment, decision, err := deps.Blog.CommentForMutation(r.Context(), middleware.CurrentRequester(r.Context()), postID, commentID)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return denied(w, r, decision)
	}

	return render(deps, w, r, "comment", i18n.Get(r.Context()).DeleteComment, view.CommentFormData{
		Action:  routes.DeleteComment(postID, commentID),
		Delete:  true,
		Comment: &comment,
	})
}

func handleDeleteComment(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	postID, commentID, err := commentIDs(r)
	if err != nil {
		return err
	}

	logging.AddToEvent(r.Context(), slog.String("operation", "delete_comment"))

	decision, err := deps.Blog.DeleteComment(r.Context(), middleware.CurrentRequester(r.Context()), postID, commentID)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return denied(w, r, decision)
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	redirect(w, r, routes.PostDetail(postID))
	return nil
}
