// вспомогательные функции для чтения конфигурации из переменных окружения
package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// getRequiredEnv получает обязательную переменную окружения
func getRequiredEnv(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return val, nil
}

// getEnvWithDefault получает переменную окружения или значение по умолчанию
func getEnvWithDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// getEnvAsInt32WithValidation получает числовую переменную окружения
// и проверяет, что значение попадает в диапазон [min, max]
func getEnvAsInt32WithValidation(key string, defaultValue, min, max int32) (int32, error) {
	strVal := os.Getenv(key)
	if strVal == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseInt(strVal, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, strVal)
	}

	if int32(val) < min || int32(val) > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", key, min, max, val)
	}

	return int32(val), nil
}

// getEnvAsDurationWithValidation получает duration переменную окружения (формат time.ParseDuration)
// и проверяет, что значение попадает в диапазон [min, max]
func getEnvAsDurationWithValidation(key string, defaultValue, min, max time.Duration) (time.Duration, error) {
	strVal := os.Getenv(key)
	if strVal == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(strVal)
	if err != nil {
		// допускаем запись просто в секундах, без суффикса
		seconds, serr := strconv.Atoi(strVal)
		if serr != nil {
			return 0, fmt.Errorf("%s must be a duration, got %q", key, strVal)
		}
		val = time.Duration(seconds) * time.Second
	}

	if val < min || val > max {
		return 0, fmt.Errorf("%s must be between %v and %v, got %v", key, min, max, val)
	}

	return val, nil
}

// getEnvAsBool получает булевую переменную окружения
func getEnvAsBool(key string, defaultValue bool) bool {
	strVal := os.Getenv(key)
	if strVal == "" {
		return defaultValue
	}

	val, err := strconv.ParseBool(strVal)
	if err != nil {
		return defaultValue
	}
	return val
}
