package ingredient

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// 永不加 s 的單位
var noPluralUnits = map[string]bool{
	"tbsp": true,
	"tsp":  true,
	"oz":   true,
	"ml":   true,
	"g":    true,
	"kg":   true,
	"lb":   true,
}

// 結尾為 s 但不是複數的字
var invariantWords = map[string]bool{
	"hummus":    true,
	"couscous":  true,
	"asparagus": true,
	"citrus":    true,
	"molasses":  true,
}

// KeyFor 產生合併用的鍵：小寫、單複數摺疊
//
// 多個詞時第一個詞視為單位，與最後一個詞一起摺疊，
// 因此 "cup milk" 與 "cups milk" 得到相同的鍵。
func KeyFor(label string) string {
	lowered := cases.Lower(language.Und).String(norm.NFC.String(label))
	fields := strings.Fields(lowered)
	if len(fields) == 0 {
		return ""
	}

	last := len(fields) - 1
	fields[last] = Singularize(fields[last])
	if last > 0 {
		fields[0] = Singularize(fields[0])
	}
	return strings.Join(fields, " ")
}

// DisplayWithQuantity 組出顯示文字，依數量調整名稱（單詞）或單位（多詞）的單複數
func DisplayWithQuantity(label string, quantity float64) string {
	q := FormatQuantity(quantity)
	parts := strings.Fields(label)

	inflect := Pluralize
	if quantity == 1 {
		inflect = Singularize
	}

	switch len(parts) {
	case 0:
		return q
	case 1:
		return q + " " + inflect(parts[0])
	default:
		return q + " " + inflect(parts[0]) + " " + strings.Join(parts[1:], " ")
	}
}

// Pluralize 在字尾加 s；例外單位與已經以 s 結尾的字不變
func Pluralize(word string) string {
	lower := strings.ToLower(word)
	if word == "" || noPluralUnits[lower] || invariantWords[lower] {
		return word
	}
	if strings.HasSuffix(lower, "s") {
		return word
	}
	return word + "s"
}

// Singularize 去除字尾 s；ss 結尾、過短的字與例外字不變
func Singularize(word string) string {
	lower := strings.ToLower(word)
	if noPluralUnits[lower] || invariantWords[lower] {
		return word
	}
	if utf8.RuneCountInString(word) < 3 {
		return word
	}
	if !strings.HasSuffix(lower, "s") || strings.HasSuffix(lower, "ss") {
		return word
	}
	return word[:len(word)-1]
}

// quantityPrecision 顯示時保留到小數第四位
const quantityPrecision = 1e4

// FormatQuantity 以最短形式輸出數量（2、1.5），最多四位小數
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(math.Round(q*quantityPrecision)/quantityPrecision, 'f', -1, 64)
}
