package configs

import (
	"strings"
)

// структура конфига для CORS политики
type CORSConfig struct {
	AllowedOrigins []string // список разрешённых доменов ("*" - разрешить все)
}

// NewCORSConfigFromEnv создаёт конфиг CORS из переменных окружения
// CORS_ALLOWED_ORIGINS - список доменов через запятую
func NewCORSConfigFromEnv() *CORSConfig {
	raw := getEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:8080")

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	return &CORSConfig{
		AllowedOrigins: origins,
	}
}
