package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"grocery-planner/internal/core/ingredient"
	"grocery-planner/internal/pkg/common"

	"go.uber.org/zap"
)

const recipeColumns = `id, user_id, title, ingredients, instructions, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*Recipe, error) {
	var (
		r         Recipe
		createdAt string
		updatedAt string
	)
	if err := scanner.Scan(&r.ID, &r.UserID, &r.Title, &r.Ingredients, &r.Instructions, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRecipe 新增食譜並寫入可解析的食材行
func (s *Store) CreateRecipe(ctx context.Context, r *Recipe) error {
	if r.ID == "" {
		r.ID = common.GenerateUUID()
	}
	now := s.now()
	r.CreatedAt = now
	r.UpdatedAt = now

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe (`+recipeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.UserID, r.Title, r.Ingredients, r.Instructions, formatTime(now), formatTime(now),
		)
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		return writeIngredients(ctx, tx, r)
	})
}

// GetRecipe 取得使用者的單一食譜
func (s *Store) GetRecipe(ctx context.Context, userID, id string) (*Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipe WHERE id = ? AND user_id = ?`, id, userID)

	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

// ListRecipes 列出使用者的食譜，新的在前
func (s *Store) ListRecipes(ctx context.Context, userID string) ([]Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipe WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

// UpdateRecipe 更新食譜內容並重建食材行
func (s *Store) UpdateRecipe(ctx context.Context, r *Recipe) error {
	r.UpdatedAt = s.now()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE recipe SET title = ?, ingredients = ?, instructions = ?, updated_at = ?
			 WHERE id = ? AND user_id = ?`,
			r.Title, r.Ingredients, r.Instructions, formatTime(r.UpdatedAt), r.ID, r.UserID,
		)
		if err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredient WHERE recipe_id = ?`, r.ID); err != nil {
			return fmt.Errorf("clear ingredients: %w", err)
		}
		return writeIngredients(ctx, tx, r)
	})
}

// DeleteRecipe 刪除食譜；已排程的項目保留但不再指向食譜
func (s *Store) DeleteRecipe(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipe WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListIngredients 列出食譜已解析的食材行
func (s *Store) ListIngredients(ctx context.Context, userID, recipeID string) ([]RecipeIngredient, error) {
	if _, err := s.GetRecipe(ctx, userID, recipeID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, line, label, quantity FROM recipe_ingredient
		 WHERE recipe_id = ? ORDER BY position`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	out := make([]RecipeIngredient, 0)
	for rows.Next() {
		var ri RecipeIngredient
		if err := rows.Scan(&ri.Position, &ri.Line, &ri.Label, &ri.Quantity); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, ri)
	}
	return out, rows.Err()
}

// writeIngredients 每一行可解析的食材寫入一列，無法解析的行略過
func writeIngredients(ctx context.Context, tx *sql.Tx, r *Recipe) error {
	skipped := 0
	for i, line := range ingredient.SplitLines(r.Ingredients) {
		parsed, ok := ingredient.ParseLine(line)
		if !ok {
			skipped++
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredient (recipe_id, user_id, position, line, label, quantity)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.UserID, i, line, parsed.Label, parsed.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert ingredient: %w", err)
		}
	}

	if skipped > 0 {
		common.LogDebug("略過無法解析的食材行",
			zap.String("recipe_id", r.ID),
			zap.Int("skipped", skipped),
		)
	}
	return nil
}
