package grocery

import (
	"slices"
	"strings"

	"grocery-planner/internal/core/ingredient"

	"golang.org/x/text/cases"
)

// ScheduledRecipe 週區間內的一筆排程食譜
type ScheduledRecipe struct {
	EntryID         string `json:"entry_id,omitempty"`
	PlanDate        string `json:"plan_date"`
	RecipeID        string `json:"recipe_id,omitempty"`
	Title           string `json:"title,omitempty"`
	IngredientsText string `json:"ingredients_text"`
}

// Item 購物清單的一列
type Item struct {
	Key      string  `json:"-"`
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
}

// Display 顯示文字，例如 "2 cups milk"
func (i Item) Display() string {
	return ingredient.DisplayWithQuantity(i.Label, i.Quantity)
}

// Result 彙整結果與行數統計
type Result struct {
	Items        []Item
	LinesRead    int
	LinesSkipped int
	EmptyRecipes int
}

// Aggregate 將多份食譜的食材合併為一份排序後的清單
func Aggregate(recipes []ScheduledRecipe) []Item {
	return Run(recipes).Items
}

// Run 彙整所有食譜的食材行；單一食譜或單行的錯誤只會略過，不會中止
func Run(recipes []ScheduledRecipe) Result {
	var res Result

	// 每次呼叫各自持有累加器
	index := make(map[string]int)
	items := make([]Item, 0)

	for _, r := range recipes {
		lines := ingredient.SplitLines(r.IngredientsText)
		if len(lines) == 0 {
			res.EmptyRecipes++
			continue
		}

		for _, line := range lines {
			res.LinesRead++

			parsed, ok := ingredient.ParseLine(line)
			if !ok || parsed.Quantity <= 0 || parsed.Label == "" {
				res.LinesSkipped++
				continue
			}

			key := ingredient.KeyFor(parsed.Label)
			if key == "" {
				res.LinesSkipped++
				continue
			}

			if i, exists := index[key]; exists {
				items[i].Quantity += parsed.Quantity
				continue
			}
			index[key] = len(items)
			items = append(items, Item{
				Key:      key,
				Label:    parsed.Label,
				Quantity: parsed.Quantity,
			})
		}
	}

	SortItems(items)
	res.Items = items
	return res
}

// SortItems 依名稱排序（不分大小寫），同名時以原始名稱與鍵決定先後
func SortItems(items []Item) {
	fold := cases.Fold()
	folded := make(map[string]string, len(items))
	for _, it := range items {
		if _, ok := folded[it.Label]; !ok {
			folded[it.Label] = fold.String(it.Label)
		}
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		if c := strings.Compare(folded[a.Label], folded[b.Label]); c != 0 {
			return c
		}
		if c := strings.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
}
