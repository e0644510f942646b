package config

import (
	"fmt"
	"time"
)

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"MYNOTES_REDIS_HOST" env-default:"0.0.0.0"`
	Port           int           `yaml:"port" env:"MYNOTES_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"MYNOTES_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"MYNOTES_REDIS_DB" env-default:"0"`
	PoolSize       int           `yaml:"pool_size" env:"MYNOTES_REDIS_POOL_SIZE" env-default:"10"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MYNOTES_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"MYNOTES_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"MYNOTES_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	DefaultTTL     time.Duration `yaml:"default_ttl" env:"MYNOTES_REDIS_DEFAULT_TTL" env-default:"60s"`
}

// GetAddressString возвращает адрес Redis сервера.
func (r *RedisConfig) GetAddressString() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
