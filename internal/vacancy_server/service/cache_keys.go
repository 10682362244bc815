// Ключи кэша собраны в одном месте, чтобы не расползались по коду.
// политику ключей и инвалидации владеет только сервисный слой
package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// времена жизни закэшированных ответов
	listCacheTTL   = 5 * time.Minute
	searchCacheTTL = 5 * time.Minute
	entityCacheTTL = 10 * time.Minute

	// при мутациях инвалидируем только первые N страниц листинга
	// (у кэша нет удаления по шаблону); страницы дальше и поисковые ключи
	// доживают до истечения TTL - это осознанное ограничение
	invalidatedListPages = 10
)

// ключ страницы листинга
func listCacheKey(page int, sortField, sortOrder string) string {
	return fmt.Sprintf("vacancy:list:%d:%s:%s", page, sortField, sortOrder)
}

// ключ одной вакансии (кэшируется только полный, непроецированный вариант)
func entityCacheKey(id int64) string {
	return fmt.Sprintf("vacancy:entity:%d", id)
}

// ключ страницы поиска; сам запрос в ключе заменяется его хэшем
func searchCacheKey(query string, page int, sortOrder string) string {
	queryHash := sha256.Sum256([]byte(query))
	return fmt.Sprintf("vacancy:search:%s:%d:%s", hex.EncodeToString(queryHash[:]), page, sortOrder)
}
