package sqlite

import (
	"context"
	"fmt"

	"github.com/moneybook-app/moneybook/internal/core/domain"
)

const (
	insertCategorySQL = `INSERT INTO categories
		(id, name, comment, cat_type, expanded, guid, modified)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	updateCategorySQL = `UPDATE categories SET
		name = ?, comment = ?, cat_type = ?, expanded = ?, guid = ?, modified = ?
		WHERE id = ?`
	selectCategoriesSQL = `SELECT id, name, comment, cat_type, expanded, guid, modified
		FROM categories ORDER BY id`
)

// CategoryRepository persists categories in sqlite.
type CategoryRepository struct {
	db queryer
}

func insertCategory(ctx context.Context, q queryer, c domain.Category) error {
	_, err := q.ExecContext(ctx, insertCategorySQL,
		c.ID, c.Name, c.Comment, int(c.Type), c.Expanded, c.GUID, c.Modified)
	if err != nil {
		return fmt.Errorf("insert category %d: %w", c.ID, err)
	}
	return nil
}

func updateCategory(ctx context.Context, q queryer, c domain.Category) error {
	_, err := q.ExecContext(ctx, updateCategorySQL,
		c.Name, c.Comment, int(c.Type), c.Expanded, c.GUID, c.Modified, c.ID)
	if err != nil {
		return fmt.Errorf("update category %d: %w", c.ID, err)
	}
	return nil
}

func (r *CategoryRepository) Insert(ctx context.Context, c domain.Category) error {
	return insertCategory(ctx, r.db, c)
}

func (r *CategoryRepository) InsertBatch(ctx context.Context, cs []domain.Category) error {
	for _, c := range cs {
		if err := insertCategory(ctx, r.db, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c domain.Category) error {
	return updateCategory(ctx, r.db, c)
}

func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "categories", id)
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, selectCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		var catType int
		if err := rows.Scan(&c.ID, &c.Name, &c.Comment, &catType, &c.Expanded, &c.GUID, &c.Modified); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = domain.CategoryType(catType)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "categories")
}

func (r *CategoryRepository) MaxID(ctx context.Context) (int, error) {
	return maxID(ctx, r.db, "categories")
}
