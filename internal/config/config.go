package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string  `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL    string  `env:"DATABASE_URL"`
	LLMAPIKey      string  `env:"LLM_API_KEY,required"`
	LLMBaseURL     string  `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel       string  `env:"LLM_MODEL" envDefault:"llama-3.1-8b-instant"`
	LLMTemperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.2"`
	LLMMaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"900"`
	HistoryLimit   int     `env:"HISTORY_LIMIT" envDefault:"10"`
	RedisAddr      string  `env:"REDIS_ADDR"`
	RedisPassword  string  `env:"REDIS_PASSWORD"`
	RedisDB        int     `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
// LLM_API_KEY es obligatoria: sin credencial el proceso no arranca.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
