package db

import (
	"context"
	"fmt"
)

const selectComment = `SELECT cm.id, cm.text, cm.post_id, cm.author_id, cm.created_at, u.username
FROM comments cm
JOIN users u ON u.id = cm.author_id`

func scanComment(row interface{ Scan(...any) error }) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.Text, &c.PostID, &c.AuthorID, &c.CreatedAt, &c.AuthorUsername)
	return c, err
}

type CreateCommentParams struct {
	Text     string
	PostID   int64
	AuthorID int64
}

const createComment = `INSERT INTO comments (text, post_id, author_id) VALUES (?, ?, ?) RETURNING id`

func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (int64, error) {
	var id int64
	if err := q.db.QueryRowContext(ctx, createComment, arg.Text, arg.PostID, arg.AuthorID).Scan(&id); err != nil {
		return 0, fmt.Errorf("create comment on post %d: %w", arg.PostID, err)
	}
	return id, nil
}

const getComment = selectComment + ` WHERE cm.post_id = ? AND cm.id = ?`

// GetComment busca o comentário dentro do post informado; um comentário de
// outro post é tratado como inexistente.
func (q *Queries) GetComment(ctx context.Context, postID, commentID int64) (Comment, error) {
	c, err := scanComment(q.db.QueryRowContext(ctx, getComment, postID, commentID))
	return c, notFound(err)
}

const listCommentsByPost = selectComment + ` WHERE cm.post_id = ? ORDER BY cm.created_at ASC, cm.id ASC`

func (q *Queries) ListCommentsByPost(ctx context.Context, postID int64) ([]Comment, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsByPost, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	defer rows.Close()

	var items []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateComment = `UPDATE comments SET text = ? WHERE id = ?`

func (q *Queries) UpdateComment(ctx context.Context, id int64, text string) error {
	res, err := q.db.ExecContext(ctx, updateComment, text, id)
	if err != nil {
		return fmt.Errorf("update comment %d: %w", id, err)
	}
	return rowsAffected(res)
}

const deleteComment = `DELETE FROM comments WHERE id = ?`

func (q *Queries) DeleteComment(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteComment, id)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return rowsAffected(res)
}
