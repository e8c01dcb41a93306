package store

import (
	"context"
	"database/sql"
	"fmt"

	"grocery-planner/internal/core/grocery"
	"grocery-planner/internal/core/week"
	"grocery-planner/internal/pkg/common"
)

// AddMealPlanEntry 將食譜排到指定日期；食譜必須屬於該使用者
func (s *Store) AddMealPlanEntry(ctx context.Context, userID, planDate, recipeID string) (*MealPlanEntry, error) {
	r, err := s.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	e := &MealPlanEntry{
		ID:          common.GenerateUUID(),
		UserID:      userID,
		PlanDate:    planDate,
		RecipeID:    r.ID,
		RecipeTitle: r.Title,
		CreatedAt:   s.now(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO meal_plan_entry (id, user_id, plan_date, recipe_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.PlanDate, e.RecipeID, formatTime(e.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert meal plan entry: %w", err)
	}
	return e, nil
}

// DeleteMealPlanEntry 移除一筆排程
func (s *Store) DeleteMealPlanEntry(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meal_plan_entry WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete meal plan entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMealPlanEntries 列出週區間內的排程，依日期與加入順序
func (s *Store) ListMealPlanEntries(ctx context.Context, userID string, w week.Window) ([]MealPlanEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.user_id, m.plan_date, m.recipe_id, r.title, m.created_at
		 FROM meal_plan_entry m
		 LEFT JOIN recipe r ON r.id = m.recipe_id
		 WHERE m.user_id = ? AND m.plan_date BETWEEN ? AND ?
		 ORDER BY m.plan_date, m.rowid`,
		userID, w.StartISO, w.EndISO,
	)
	if err != nil {
		return nil, fmt.Errorf("list meal plan: %w", err)
	}
	defer rows.Close()

	entries := make([]MealPlanEntry, 0)
	for rows.Next() {
		var (
			e         MealPlanEntry
			recipeID  sql.NullString
			title     sql.NullString
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.PlanDate, &recipeID, &title, &createdAt); err != nil {
			return nil, fmt.Errorf("scan meal plan entry: %w", err)
		}
		e.RecipeID = recipeID.String
		e.RecipeTitle = title.String
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListScheduled 週區間內排程的食譜與食材文字；食譜已刪除時食材為空字串
func (s *Store) ListScheduled(ctx context.Context, userID string, w week.Window) ([]grocery.ScheduledRecipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.plan_date, m.recipe_id, COALESCE(r.title, ''), COALESCE(r.ingredients, '')
		 FROM meal_plan_entry m
		 LEFT JOIN recipe r ON r.id = m.recipe_id
		 WHERE m.user_id = ? AND m.plan_date BETWEEN ? AND ?
		 ORDER BY m.plan_date, m.rowid`,
		userID, w.StartISO, w.EndISO,
	)
	if err != nil {
		return nil, fmt.Errorf("list scheduled: %w", err)
	}
	defer rows.Close()

	out := make([]grocery.ScheduledRecipe, 0)
	for rows.Next() {
		var (
			sr       grocery.ScheduledRecipe
			recipeID sql.NullString
		)
		if err := rows.Scan(&sr.EntryID, &sr.PlanDate, &recipeID, &sr.Title, &sr.IngredientsText); err != nil {
			return nil, fmt.Errorf("scan scheduled recipe: %w", err)
		}
		sr.RecipeID = recipeID.String
		out = append(out, sr)
	}
	return out, rows.Err()
}
