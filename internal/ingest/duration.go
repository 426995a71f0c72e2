// duration.go — разбор авторских строк длительности.
//
// Одна общая грамматика питает два независимых форматтера (ISO-8601 и
// короткая человекочитаемая форма): оба распознают один и тот же набор
// записей и потому всегда согласованы по часам и минутам.
package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Шаблоны грамматики длительности. Проверяются в этом порядке,
// побеждает первый совпавший.
var (
	reClockHMS = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})$`)
	reClockMS  = regexp.MustCompile(`^(\d+):(\d{1,2})$`)
	reMinutes  = regexp.MustCompile(`(?i)^(\d+)\s*(?:minutes|min)$`)
	reHours    = regexp.MustCompile(`(?i)^(\d+)\s*(?:hours|hr)$`)
	reCompact  = regexp.MustCompile(`(?i)^(\d+)h\s*(\d{1,2})m$`)
)

// durationParts — результат разбора строки длительности.
type durationParts struct {
	hours   int
	minutes int
	seconds int
	// clock — источник имел часовую запись (H:MM:SS или MM:SS),
	// для неё секундная компонента значима
	clock bool
	ok    bool
}

// parseDurationString разбирает строку длительности по общей грамматике.
// Минуты >= 60 переносятся в часы, чтобы "90 minutes" и "1:30:00"
// давали одинаковые компоненты.
func parseDurationString(s string) durationParts {
	s = strings.TrimSpace(s)
	if s == "" {
		return durationParts{}
	}

	var p durationParts
	switch {
	case reClockHMS.MatchString(s):
		m := reClockHMS.FindStringSubmatch(s)
		p = durationParts{hours: atoi(m[1]), minutes: atoi(m[2]), seconds: atoi(m[3]), clock: true, ok: true}
	case reClockMS.MatchString(s):
		m := reClockMS.FindStringSubmatch(s)
		p = durationParts{minutes: atoi(m[1]), seconds: atoi(m[2]), clock: true, ok: true}
	case reMinutes.MatchString(s):
		m := reMinutes.FindStringSubmatch(s)
		p = durationParts{minutes: atoi(m[1]), ok: true}
	case reHours.MatchString(s):
		m := reHours.FindStringSubmatch(s)
		p = durationParts{hours: atoi(m[1]), ok: true}
	case reCompact.MatchString(s):
		m := reCompact.FindStringSubmatch(s)
		p = durationParts{hours: atoi(m[1]), minutes: atoi(m[2]), ok: true}
	default:
		return durationParts{}
	}

	p.minutes += p.seconds / 60
	p.seconds %= 60
	p.hours += p.minutes / 60
	p.minutes %= 60
	return p
}

// ISODuration возвращает длительность в формате ISO-8601.
// Часовая запись сохраняет секундную компоненту ("1:30:00" → "PT1H30M0S"),
// текстовая — опускает её ("90 minutes" → "PT1H30M").
// Нераспознанный или пустой вход даёт нулевой маркер "PT0S".
func ISODuration(s string) string {
	p := parseDurationString(s)
	if !p.ok {
		return "PT0S"
	}

	var b strings.Builder
	b.WriteString("PT")
	if p.hours > 0 {
		fmt.Fprintf(&b, "%dH", p.hours)
	}
	if p.minutes > 0 || (p.clock && p.hours > 0) {
		fmt.Fprintf(&b, "%dM", p.minutes)
	}
	if p.clock {
		fmt.Fprintf(&b, "%dS", p.seconds)
	}
	if b.Len() == len("PT") {
		return "PT0S"
	}
	return b.String()
}

// HumanDuration возвращает короткую человекочитаемую форму ("1h 30m").
// Нераспознанный вход даёт пустую строку.
func HumanDuration(s string) string {
	p := parseDurationString(s)
	if !p.ok {
		return ""
	}

	switch {
	case p.hours > 0 && p.minutes > 0:
		return fmt.Sprintf("%dh %dm", p.hours, p.minutes)
	case p.hours > 0:
		return fmt.Sprintf("%dh", p.hours)
	case p.minutes > 0:
		return fmt.Sprintf("%dm", p.minutes)
	case p.clock && p.seconds > 0:
		return fmt.Sprintf("%ds", p.seconds)
	default:
		return ""
	}
}

// atoi — разбор заведомо числовой подстроки регулярного выражения.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
