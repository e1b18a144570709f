package db

import (
	"context"
	"fmt"
)

const categoryColumns = `id, title, description, slug, is_published, created_at`

func scanCategory(row interface{ Scan(...any) error }) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Slug, &c.IsPublished, &c.CreatedAt)
	return c, err
}

type UpsertCategoryParams struct {
	Title       string
	Description string
	Slug        string
	IsPublished bool
}

const upsertCategory = `INSERT INTO categories (title, description, slug, is_published)
VALUES (?, ?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    is_published = excluded.is_published`

func (q *Queries) UpsertCategory(ctx context.Context, arg UpsertCategoryParams) (Category, error) {
	if _, err := q.db.ExecContext(ctx, upsertCategory,
		arg.Title, arg.Description, arg.Slug, arg.IsPublished); err != nil {
		return Category{}, fmt.Errorf("upsert category %q: %w", arg.Slug, err)
	}
	return q.GetCategoryBySlug(ctx, arg.Slug)
}

const getCategoryByID = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`

func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (Category, error) {
	c, err := scanCategory(q.db.QueryRowContext(ctx, getCategoryByID, id))
	return c, notFound(err)
}

const getCategoryBySlug = `SELECT ` + categoryColumns + ` FROM categories WHERE slug = ?`

func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	c, err := scanCategory(q.db.QueryRowContext(ctx, getCategoryBySlug, slug))
	return c, notFound(err)
}

const listCategories = `SELECT ` + categoryColumns + ` FROM categories ORDER BY title`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const deleteCategory = `DELETE FROM categories WHERE id = ?`

// DeleteCategory remove a categoria; os posts ficam com category_id nulo.
// Nenhuma rota apaga categorias: a função existe para fixar o ON DELETE SET NULL.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteCategory, id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return rowsAffected(res)
}
