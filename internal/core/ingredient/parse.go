package ingredient

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParsedIngredient 單行食材解析結果
type ParsedIngredient struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
}

var (
	// 行首的項目符號與編號（如 "- "、"• "、"1. "、"2)"）
	decorationPattern = regexp.MustCompile(`^[-–—•·*‣◦\s]*(?:\d+\)\s*|\d+\.(?:\s+|$))?`)
	// 行首數量，例如 "2 eggs"、"1.5 tbsp butter"
	quantityPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(.+)$`)
)

// ParseLine 將一行食材文字解析為數量與名稱，無法使用的行回傳 false
func ParseLine(raw string) (ParsedIngredient, bool) {
	cleaned := StripDecoration(raw)
	if cleaned == "" {
		return ParsedIngredient{}, false
	}

	quantity := 1.0
	label := cleaned

	if m := quantityPattern.FindStringSubmatch(cleaned); m != nil {
		label = strings.TrimSpace(m[2])
		if q, err := strconv.ParseFloat(m[1], 64); err == nil && !math.IsInf(q, 0) && !math.IsNaN(q) {
			quantity = q
		}
	}

	if label == "" || quantity <= 0 {
		return ParsedIngredient{}, false
	}

	return ParsedIngredient{Label: label, Quantity: quantity}, true
}

// StripDecoration 去除行首的項目符號與編號
func StripDecoration(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(decorationPattern.ReplaceAllString(trimmed, ""))
}

// SplitLines 依換行切割食材區塊，去除空白行
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if l := strings.TrimSpace(p); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
