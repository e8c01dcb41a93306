package week

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ISOLayout 週區間使用的日期格式
const ISOLayout = "2006-01-02"

// ErrInvalidDate 參考日期無法解析
var ErrInvalidDate = errors.New("invalid date")

// Window 週一到週日（含）的日期區間
type Window struct {
	StartISO string `json:"week_start"`
	EndISO   string `json:"week_end"`
}

// ComputeWeek 回傳 ref 所在週的區間，週一為起點，週日視為前一週的第 7 天
func ComputeWeek(ref time.Time) Window {
	y, m, d := ref.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)

	return Window{
		StartISO: monday.Format(ISOLayout),
		EndISO:   sunday.Format(ISOLayout),
	}
}

// Current 回傳 now 所在的週
func Current(now time.Time) Window {
	return ComputeWeek(now)
}

// ParseReference 解析呼叫端提供的參考日期（YYYY-MM-DD，亦接受 RFC3339）
func ParseReference(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	if t, err := time.Parse(ISOLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Resolve 依參數決定週區間；參數缺少或無法解析時退回 now 所在的週
func Resolve(param string, now time.Time) Window {
	ref, err := ParseReference(param)
	if err != nil {
		return Current(now)
	}
	return ComputeWeek(ref)
}

// Start 週一的時間值（UTC 零點）
func (w Window) Start() time.Time {
	t, _ := time.Parse(ISOLayout, w.StartISO)
	return t
}

// Days 回傳區間內 7 天的 ISO 日期
func (w Window) Days() []string {
	start := w.Start()
	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, start.AddDate(0, 0, i).Format(ISOLayout))
	}
	return days
}

// Contains 判斷 ISO 日期是否落在區間內
func (w Window) Contains(iso string) bool {
	if _, err := time.Parse(ISOLayout, iso); err != nil {
		return false
	}
	// YYYY-MM-DD 字串排序即日期排序
	return iso >= w.StartISO && iso <= w.EndISO
}

// Previous 前一週
func (w Window) Previous() Window {
	return ComputeWeek(w.Start().AddDate(0, 0, -7))
}

// Next 下一週
func (w Window) Next() Window {
	return ComputeWeek(w.Start().AddDate(0, 0, 7))
}

func (w Window) String() string {
	return w.StartISO + " – " + w.EndISO
}
