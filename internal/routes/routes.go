package routes

import "fmt"

const (
	Home         = "/"
	Login        = "/auth/login/"
	Logout       = "/auth/logout/"
	Registration = "/auth/registration/"
	CreatePost   = "/posts/create/"
	EditProfile  = "/profile/edit_profile/"
	Health       = "/health"
	Metrics      = "/metrics"
)

// Padrões do http.ServeMux com curingas.
const (
	PostDetailPattern    = "/posts/{post_id}/"
	EditPostPattern      = "/posts/{post_id}/edit/"
	DeletePostPattern    = "/posts/{post_id}/delete/"
	AddCommentPattern    = "/posts/{post_id}/comment/"
	EditCommentPattern   = "/posts/{post_id}/edit_comment/{comment_id}/"
	DeleteCommentPattern = "/posts/{post_id}/delete_comment/{comment_id}/"
	CategoryPattern      = "/category/{category_slug}/"
	ProfilePattern       = "/profile/{username}/"
)

func PostDetail(postID int64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func EditPost(postID int64) string {
	return fmt.Sprintf("/posts/%d/edit/", postID)
}

func DeletePost(postID int64) string {
	return fmt.Sprintf("/posts/%d/delete/", postID)
}

func AddComment(postID int64) string {
	return fmt.Sprintf("/posts/%d/comment/", postID)
}

func EditComment(postID, commentID int64) string {
	return fmt.Sprintf("/posts/%d/edit_comment/%d/", postID, commentID)
}

func DeleteComment(postID, commentID int64) string {
	return fmt.Sprintf("/posts/%d/delete_comment/%d/", postID, commentID)
}

func Category(slug string) string {
	return "/category/" + slug + "/"
}

func Profile(username string) string {
	return "/profile/" + username + "/"
}
