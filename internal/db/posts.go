package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const selectPost = `SELECT
    p.id, p.title, p.text, p.pub_date, p.author_id, p.location_id, p.category_id,
    p.is_published, p.created_at,
    u.username, c.title, c.slug, c.is_published, l.name,
    (SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count
FROM posts p
JOIN users u ON u.id = p.author_id
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN locations l ON l.id = p.location_id`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Text, &p.PubDate, &p.AuthorID, &p.LocationID, &p.CategoryID,
		&p.IsPublished, &p.CreatedAt,
		&p.AuthorUsername, &p.CategoryTitle, &p.CategorySlug, &p.CategoryIsPublished, &p.LocationName,
		&p.CommentCount,
	)
	return p, err
}

type CreatePostParams struct {
	Title       string
	Text        string
	PubDate     time.Time
	AuthorID    int64
	LocationID  int64
	CategoryID  int64
	IsPublished bool
}

const createPost = `INSERT INTO posts (title, text, pub_date, author_id, location_id, category_id, is_published)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, createPost,
		arg.Title, arg.Text, arg.PubDate.UTC(), arg.AuthorID,
		nullInt64(arg.LocationID), nullInt64(arg.CategoryID), arg.IsPublished,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	return id, nil
}

const getPost = selectPost + ` WHERE p.id = ?`

func (q *Queries) GetPost(ctx context.Context, id int64) (Post, error) {
	p, err := scanPost(q.db.QueryRowContext(ctx, getPost, id))
	return p, notFound(err)
}

// ListPostsParams restringe os candidatos por categoria e/ou autor; zero
// significa sem filtro. Visibilidade não é aplicada aqui.
type ListPostsParams struct {
	CategoryID int64
	AuthorID   int64
}

const listPosts = selectPost + `
WHERE (? IS NULL OR p.category_id = ?)
  AND (? IS NULL OR p.author_id = ?)
ORDER BY p.pub_date DESC, p.id DESC`

func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]Post, error) {
	category, author := nullInt64(arg.CategoryID), nullInt64(arg.AuthorID)
	rows, err := q.db.QueryContext(ctx, listPosts, category, category, author, author)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type UpdatePostParams struct {
	ID          int64
	Title       string
	Text        string
	PubDate     time.Time
	LocationID  int64
	CategoryID  int64
	IsPublished bool
}

const updatePost = `UPDATE posts
SET title = ?, text = ?, pub_date = ?, location_id = ?, category_id = ?, is_published = ?
WHERE id = ?`

func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) error {
	res, err := q.db.ExecContext(ctx, updatePost,
		arg.Title, arg.Text, arg.PubDate.UTC(),
		nullInt64(arg.LocationID), nullInt64(arg.CategoryID), arg.IsPublished, arg.ID,
	)
	if err != nil {
		return fmt.Errorf("update post %d: %w", arg.ID, err)
	}
	return rowsAffected(res)
}

const deletePost = `DELETE FROM posts WHERE id = ?`

func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deletePost, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return rowsAffected(res)
}

func rowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
