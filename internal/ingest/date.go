// date.go — разбор и форматирование дат загрузки.
package ingest

import (
	"fmt"
	"time"
)

// uploadDateLayouts — принимаемые форматы uploadDate, в порядке проверки.
var uploadDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseUploadDate разбирает строку даты загрузки.
func parseUploadDate(s string) (time.Time, error) {
	for _, layout := range uploadDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("неподдерживаемый формат даты: %q", s)
}

// formatLongDate возвращает длинную форму даты ("January 2, 2006").
func formatLongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// relativeDate возвращает относительную форму даты с фиксированными
// корзинами: 0 дней → "Today", 1 → "Yesterday", 2-6 → "{n}d ago",
// 7-29 → "{n}w ago", 30-364 → "{n}mo ago", от 365 → "{n}y ago".
// Корзины календарно-наивны (неделя 7 дней, месяц 30, год 365);
// дата в будущем схлопывается в "Today".
func relativeDate(now, t time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		days = 0
	}

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	case days < 365:
		return fmt.Sprintf("%dmo ago", days/30)
	default:
		return fmt.Sprintf("%dy ago", days/365)
	}
}
