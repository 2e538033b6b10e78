package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio. Se lee una vez al
// arrancar y no se recarga en caliente.
type Config struct {
	HTTPPort           string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL        string `env:"DATABASE_URL,required"`
	JWTSecret          string `env:"JWT_SECRET,required"`
	JWTIssuer          string `env:"JWT_ISSUER" envDefault:"contact-api"`
	JWTAudience        string `env:"JWT_AUDIENCE" envDefault:"contact-api-clients"`
	JWTTTLMinutes      int    `env:"JWT_TTL_MINUTES" envDefault:"60"`
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	LoginMaxAttempts   int    `env:"LOGIN_MAX_ATTEMPTS" envDefault:"10"`
	LoginWindowMinutes int    `env:"LOGIN_WINDOW_MINUTES" envDefault:"10"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
