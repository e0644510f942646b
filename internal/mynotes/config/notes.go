package config

// NotesConfig содержит настройки отображения заметок.
type NotesConfig struct {
	PerPage int `yaml:"per_page" env:"MYNOTES_NOTES_PER_PAGE" env-default:"5"`
}
