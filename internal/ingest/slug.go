// slug.go — построение URL-слагов из человекочитаемых строк.
package ingest

import "strings"

// Slugify строит слаг: нижний регистр, только [a-z0-9-],
// последовательности прочих символов схлопываются в один дефис,
// дефисы по краям отсутствуют. Детерминированна для любого входа.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
