package grocery

import "sort"

// DefaultCategory 未分類項目的類別
const DefaultCategory = "Other"

// Classifier 決定項目所屬類別
type Classifier func(Item) string

// Uncategorized 所有項目都歸到 DefaultCategory
func Uncategorized(Item) string {
	return DefaultCategory
}

// Section 一個類別與其項目
type Section struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Group 依類別分組；類別依名稱排序，類別內保留原有順序
func Group(items []Item, classify Classifier) []Section {
	if classify == nil {
		classify = Uncategorized
	}

	byName := make(map[string]*Section)
	for _, it := range items {
		name := classify(it)
		if name == "" {
			name = DefaultCategory
		}
		s, ok := byName[name]
		if !ok {
			s = &Section{Name: name}
			byName[name] = s
		}
		s.Items = append(s.Items, it)
	}

	sections := make([]Section, 0, len(byName))
	for _, s := range byName {
		sections = append(sections, *s)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Name < sections[j].Name
	})
	return sections
}
