package interfaces

import "context"

// интерфейс rate limiter для проверки допуска запроса
// scope - ключ эндпоинта, clientID - идентификатор клиента (IP)
type RateLimiter interface {
	Allow(ctx context.Context, scope, clientID string) (bool, error)
}
