// Пакет model — доменные модели Web Module.
// VideoRecord — каноническая запись каталога, собранная из front-matter
// markdown-файла контент-репозитория.
package model

import "time"

// VideoRecord — одна запись каталога видео-переводов.
// Создаётся один раз при успешном разборе файла, живёт в памяти
// в пределах одного запроса и после создания не изменяется.
type VideoRecord struct {
	// Filename — имя исходного файла (шаблон [Title][ContentType][Translator].md)
	Filename string
	// Slug — URL-идентификатор записи ([a-z0-9-], без дефисов по краям)
	Slug string
	// Title — название видео
	Title string
	// AltTitle — альтернативное название (оригинальное, на другом языке)
	AltTitle string
	// ContentType — канонический тип контента в верхнем регистре (MOVIE, TV-SERIES, ...)
	ContentType string
	// Translator — имя переводчика
	Translator string
	// TranslatorSlug — URL-идентификатор переводчика
	TranslatorSlug string
	// DownloadURL — прямая ссылка на raw-содержимое markdown-файла
	DownloadURL string
	// HTMLURL — ссылка на файл в веб-интерфейсе контент-репозитория
	HTMLURL string
	// VideoURL — ссылка на страницу просмотра/скачивания видео
	VideoURL string
	// Poster — URL постера
	Poster string
	// Description — описание
	Description string
	// ReleaseYear — год выхода (0 — не указан)
	ReleaseYear int
	// Genre — жанры в авторском порядке
	Genre []string
	// Views — количество просмотров (неотрицательное, по умолчанию 0)
	Views int
	// Likes — количество лайков (неотрицательное, по умолчанию 0)
	Likes int
	// UploadDate — дата загрузки как строка ISO-8601 (момент ингестии, если не указана)
	UploadDate string
	// UploadedAt — разобранная дата загрузки (нулевое время, если строка не разбирается)
	UploadedAt time.Time
	// FormattedDate — длинная форма даты ("January 2, 2006")
	FormattedDate string
	// ShortDate — относительная форма даты ("Today", "3d ago", "2mo ago")
	ShortDate string
	// Duration — длительность в авторской записи ("1:30:00", "90 minutes")
	Duration string
	// ISODuration — длительность в формате ISO-8601 ("PT1H30M")
	ISODuration string
	// FormattedDuration — короткая человекочитаемая форма ("1h 30m")
	FormattedDuration string
	// Extra — нераспознанные поля front-matter, сохранённые как есть
	// (открытая схема: типизированное ядро + нетипизированный остаток)
	Extra map[string]any
}

// CategorySlug — пара {категория, slug} для генерации sitemap.
// Собирается из одного листинга директории категории без скачивания содержимого.
type CategorySlug struct {
	// Category — имя категории (последний сегмент директории, например movies)
	Category string
	// Slug — URL-идентификатор записи, выведенный из имени файла
	Slug string
}
