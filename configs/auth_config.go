package configs

import (
	"fmt"
)

// структура конфига для опциональной проверки токена
// при Enabled = false мутирующие эндпоинты доступны без авторизации
type AuthConfig struct {
	Enabled      bool   // включена ли проверка токена
	SecretAccKey string // секрет для проверки подписи access токена (HS256)
}

// NewAuthConfigFromEnv создаёт конфиг авторизации из переменных окружения
func NewAuthConfigFromEnv() (*AuthConfig, error) {
	enabled := getEnvAsBool("AUTH_ENABLED", false)

	secret := ""
	if enabled {
		// секрет обязателен только если проверка токена включена
		var err error
		secret, err = getRequiredEnv("AUTH_SECRET_KEY")
		if err != nil {
			return nil, fmt.Errorf("auth is enabled: %w", err)
		}
	}

	return &AuthConfig{
		Enabled:      enabled,
		SecretAccKey: secret,
	}, nil
}
