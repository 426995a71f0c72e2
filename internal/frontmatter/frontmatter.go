// Пакет frontmatter — разбор YAML-подобного front-matter блока
// в начале markdown-файла.
//
// Парсер принципиально best-effort: он никогда не возвращает ошибку
// и не паникует. Некорректный или отсутствующий блок деградирует до
// пустого отображения — вызывающая сторона получает "нет метаданных",
// а не исключение.
//
// Вместо цепочки регулярных выражений по всему тексту используется
// позиционный классификатор строк: каждая строка тела блока
// интерпретируется ровно один раз (скаляр | список | блочный скаляр),
// продолжения (элементы списка, строки блочного скаляра) потребляются
// от текущей позиции. Это устраняет неоднозначность при одинаковых
// пустых значениях у нескольких ключей.
package frontmatter

import (
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// delimiter — строка-разделитель front-matter блока.
const delimiter = "---"

// fieldRe — строка поля вида "key: value" (ключ — только \w).
var fieldRe = regexp.MustCompile(`^(\w+):\s*(.*)$`)

// numericKeys — ключи, значения которых всегда приводятся к целому числу
// (0 при ошибке разбора).
var numericKeys = map[string]bool{
	"releaseYear":    true,
	"views":          true,
	"likes":          true,
	"rating":         true,
	"imdbRating":     true,
	"userRating":     true,
	"voteCount":      true,
	"scoreCount":     true,
	"ageRestriction": true,
	"season":         true,
	"episode":        true,
	"seasonCount":    true,
	"episodeCount":   true,
}

// Map — упорядоченное отображение полей front-matter.
// Значения: string, int, bool или []string. Ключи итерируются
// в порядке появления в исходном тексте.
type Map struct {
	keys   []string
	values map[string]any
}

func newMap() *Map {
	return &Map{values: make(map[string]any)}
}

func (m *Map) set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get возвращает значение поля и признак его наличия.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// GetString возвращает строковое значение поля или "".
func (m *Map) GetString(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

// GetInt возвращает целочисленное значение поля или 0.
func (m *Map) GetInt(key string) int {
	if n, ok := m.values[key].(int); ok {
		return n
	}
	return 0
}

// GetBool возвращает булево значение поля или false.
func (m *Map) GetBool(key string) bool {
	if b, ok := m.values[key].(bool); ok {
		return b
	}
	return false
}

// GetList возвращает списковое значение поля или nil.
func (m *Map) GetList(key string) []string {
	if l, ok := m.values[key].([]string); ok {
		return l
	}
	return nil
}

// Keys возвращает ключи в порядке появления в тексте.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len возвращает количество полей.
func (m *Map) Len() int {
	return len(m.keys)
}

// Parse разбирает front-matter блок из полного текста файла.
// Блок должен начинаться с первой строки "---" и закрываться строкой "---";
// иначе возвращается пустое отображение.
func Parse(text string) *Map {
	m := newMap()

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return m
	}

	// Ищем закрывающий разделитель
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return m
	}

	body := lines[1:end]
	for i := 0; i < len(body); {
		trimmed := strings.TrimSpace(body[i])
		if trimmed == "" {
			i++
			continue
		}

		match := fieldRe.FindStringSubmatch(trimmed)
		if match == nil {
			// Не поле — например, осиротевший элемент списка
			i++
			continue
		}
		key, value := match[1], strings.TrimSpace(match[2])

		switch {
		case value == "|":
			// Блочный скаляр: потребляем строки с отступом
			scalar, next := collectBlockScalar(body, i+1)
			m.set(key, scalar)
			i = next

		case value == "":
			// Пустое значение: возможно, следом идут элементы списка
			items, next := collectListItems(body, i+1)
			if items != nil {
				m.set(key, items)
				i = next
			} else {
				m.set(key, coerce(key, ""))
				i++
			}

		case strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
			m.set(key, parseInlineList(value))
			i++

		default:
			m.set(key, coerce(key, stripQuotes(value)))
			i++
		}
	}

	return m
}

// collectListItems потребляет строки "- item" начиная с позиции start.
// Возвращает элементы (nil, если list-строк не было) и следующую позицию.
func collectListItems(body []string, start int) ([]string, int) {
	var items []string
	i := start
	for i < len(body) {
		trimmed := strings.TrimSpace(body[i])
		if !strings.HasPrefix(trimmed, "-") {
			break
		}
		item := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
		items = append(items, stripQuotes(item))
		i++
	}
	return items, i
}

// collectBlockScalar потребляет строки с отступом (пробел или табуляция)
// начиная с позиции start, обрезает их и склеивает одиночными пробелами.
func collectBlockScalar(body []string, start int) (string, int) {
	var parts []string
	i := start
	for i < len(body) {
		line := body[i]
		if line == "" || (line[0] != ' ' && line[0] != '\t') {
			break
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
		i++
	}
	return strings.Join(parts, " "), i
}

// parseInlineList разбирает значение вида "[a, b, c]".
// Сначала строгий YAML-разбор; при неудаче — наивное разбиение по запятым
// со снятием кавычек с каждого элемента.
func parseInlineList(value string) []string {
	var items []string
	if err := yaml.Unmarshal([]byte(value), &items); err == nil {
		return items
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(value, "["), "]")
	parts := strings.Split(inner, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if item := stripQuotes(strings.TrimSpace(p)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// coerce приводит строковое значение к типу поля:
// известные числовые ключи → int (0 при ошибке), true/false → bool,
// остальное — строка как есть.
func coerce(key, value string) any {
	if numericKeys[key] {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return n
	}
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}

// stripQuotes снимает один слой парных кавычек (одинарных или двойных).
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
