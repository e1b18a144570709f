package db

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

type Location struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type Category struct {
	ID          int64
	Title       string
	Description string
	Slug        string
	IsPublished bool
	CreatedAt   time.Time
}

// Post carrega os campos da tabela posts junto com os dados desnormalizados
// de autor, categoria e local usados pelas listagens e pela política de
// visibilidade. CategoryIsPublished é nulo quando o post não tem categoria.
type Post struct {
	ID          int64
	Title       string
	Text        string
	PubDate     time.Time
	AuthorID    int64
	LocationID  sql.NullInt64
	CategoryID  sql.NullInt64
	IsPublished bool
	CreatedAt   time.Time

	AuthorUsername      string
	CategoryTitle       sql.NullString
	CategorySlug        sql.NullString
	CategoryIsPublished sql.NullBool
	LocationName        sql.NullString
	CommentCount        int64
}

func (p Post) OwnerID() int64      { return p.AuthorID }
func (p Post) ParentPostID() int64 { return p.ID }

type Comment struct {
	ID        int64
	Text      string
	PostID    int64
	AuthorID  int64
	CreatedAt time.Time

	AuthorUsername string
}

func (c Comment) OwnerID() int64      { return c.AuthorID }
func (c Comment) ParentPostID() int64 { return c.PostID }
