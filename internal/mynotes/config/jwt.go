package config

// JWTConfig содержит настройки проверки access токенов.
type JWTConfig struct {
	SecretKey string `yaml:"secret_key" env:"MYNOTES_JWT_SECRET_KEY" env-default:"qSqIiqZyXv0AeZzk9PRp2pSCMLWOTJUy5V3c6nMR9bmhG0OYyBvMfUvVXgTSkEqL"`
}
