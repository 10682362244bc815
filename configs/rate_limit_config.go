package configs

import (
	"time"
)

// структура конфига для rate limiter
// Limit запросов на окно Window с каждого IP
type RateLimitConfig struct {
	Limit      int           // количество запросов на окно
	Window     time.Duration // длина окна
	FailClosed bool          // поведение при недоступном кэше: по умолчанию fail-open (пропускаем)
}

// NewRateLimitConfigFromEnv создаёт конфиг rate limiter из переменных окружения
func NewRateLimitConfigFromEnv() (*RateLimitConfig, error) {
	limit, err := getEnvAsInt32WithValidation("RATE_LIMIT_REQUESTS", 100, 1, 100000)
	if err != nil {
		return nil, err
	}

	window, err := getEnvAsDurationWithValidation("RATE_LIMIT_WINDOW", 60*time.Second, 1*time.Second, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	// fail-open по умолчанию: недоступный кэш не должен ронять весь API
	failClosed := getEnvAsBool("RATE_LIMIT_FAIL_CLOSED", false)

	return &RateLimitConfig{
		Limit:      int(limit),
		Window:     window,
		FailClosed: failClosed,
	}, nil
}
