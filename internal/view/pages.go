package view

import (
	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/validator"
)

// PostCard é um post nas listagens. Public fica falso quando só o autor
// consegue vê-lo, e o template mostra o motivo.
type PostCard struct {
	Post   db.Post
	Public bool
}

type FeedData struct {
	Posts      []PostCard
	Pagination *Pagination
	Category   *db.Category
	Profile    *db.User
	IsOwner    bool
}

type CommentItem struct {
	Comment db.Comment
	CanEdit bool
}

type DetailData struct {
	Post     PostCard
	CanEdit  bool
	Comments []CommentItem
	Form     CommentFormData
}

type PostFormData struct {
	Action     string
	Values     validator.PostInput
	Errors     validator.ValidationResult
	Categories []db.Category
	Locations  []db.Location
	// Delete transforma o formulário em confirmação de exclusão.
	Delete bool
}

type CommentFormData struct {
	Action  string
	Text    string
	Errors  validator.ValidationResult
	Delete  bool
	Comment *db.Comment
}

type ProfileFormData struct {
	Values validator.ProfileInput
	Errors validator.ValidationResult
}

type AuthFormData struct {
	Username string
	Email    string
	Errors   validator.ValidationResult
	Message  string
	// Next é a página para onde o login volta.
	Next string
}

type ErrorData struct {
	Status int
}
