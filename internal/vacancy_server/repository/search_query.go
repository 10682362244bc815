// построение поисковых запросов с учётом диалекта хранилища
// диалект выбирается один раз при старте сервиса (DB_DIALECT), а не на каждый вызов
package repository

import (
	"fmt"
	"strings"

	"github.com/vamischenko/vacansii-back/configs"
	"github.com/vamischenko/vacansii-back/internal/domain"
)

// структура билдера поисковых запросов
type SearchQueryBuilder struct {
	dialect string
}

// конструктор билдера для заданного диалекта
func NewSearchQueryBuilder(dialect string) *SearchQueryBuilder {
	return &SearchQueryBuilder{dialect: dialect}
}

// BuildSearchQuery строит страницу результатов поиска
// все диалекты возвращают одинаковый набор колонок, различается только предикат и ранжирование
func (b *SearchQueryBuilder) BuildSearchQuery(query, sortOrder string, limit, offset int) (string, []interface{}) {
	switch b.dialect {
	case configs.DialectMySQL:
		return b.buildMySQLQuery(query, sortOrder, limit, offset)
	case configs.DialectFallback:
		return b.buildFallbackQuery(query, sortOrder, limit, offset)
	default:
		return b.buildPostgresQuery(query, sortOrder, limit, offset)
	}
}

// BuildCountQuery строит запрос общего количества совпадений
func (b *SearchQueryBuilder) BuildCountQuery(query string) (string, []interface{}) {
	switch b.dialect {
	case configs.DialectMySQL:
		return `SELECT COUNT(*) FROM vacancies WHERE MATCH(title, description) AGAINST (? IN NATURAL LANGUAGE MODE)`,
			[]interface{}{query}
	case configs.DialectFallback:
		where, args := fallbackWhere(query)
		return `SELECT COUNT(*) FROM vacancies WHERE ` + where, args
	default:
		return `SELECT COUNT(*) FROM vacancies WHERE search_vector @@ plainto_tsquery('simple', $1)`,
			[]interface{}{query}
	}
}

// postgres: запрос матчится против заранее посчитанного поискового вектора
// plainto_tsquery сам разбивает строку на термы и связывает их оператором AND,
// спецсимволы tsquery в пользовательском вводе (&, |, !, скобки, кавычки)
// при этом не ломают синтаксис запроса
func (b *SearchQueryBuilder) buildPostgresQuery(query, sortOrder string, limit, offset int) (string, []interface{}) {
	sql := `SELECT id, title, description, salary, created_at
	FROM vacancies
	WHERE search_vector @@ plainto_tsquery('simple', $1)`

	// relevance - ранжируем по ts_rank, иначе сортируем по времени создания
	switch sortOrder {
	case domain.SortOrderRelevance:
		sql += ` ORDER BY ts_rank(search_vector, plainto_tsquery('simple', $1)) DESC`
	case domain.SortOrderAsc:
		sql += ` ORDER BY created_at ASC`
	default:
		sql += ` ORDER BY created_at DESC`
	}

	sql += ` LIMIT $2 OFFSET $3`
	return sql, []interface{}{query, limit, offset}
}

// mysql: полнотекстовый индекс через MATCH ... AGAINST в natural language режиме
func (b *SearchQueryBuilder) buildMySQLQuery(query, sortOrder string, limit, offset int) (string, []interface{}) {
	sql := `SELECT id, title, description, salary, created_at
	FROM vacancies
	WHERE MATCH(title, description) AGAINST (? IN NATURAL LANGUAGE MODE)`
	args := []interface{}{query}

	switch sortOrder {
	case domain.SortOrderRelevance:
		sql += ` ORDER BY MATCH(title, description) AGAINST (? IN NATURAL LANGUAGE MODE) DESC`
		args = append(args, query)
	case domain.SortOrderAsc:
		sql += ` ORDER BY created_at ASC`
	default:
		sql += ` ORDER BY created_at DESC`
	}

	sql += ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return sql, args
}

// fallback: OR подстрочных совпадений по термам в title и description
// релевантности здесь нет - relevance деградирует до сортировки по времени создания
func (b *SearchQueryBuilder) buildFallbackQuery(query, sortOrder string, limit, offset int) (string, []interface{}) {
	where, args := fallbackWhere(query)

	sql := `SELECT id, title, description, salary, created_at
	FROM vacancies
	WHERE ` + where

	switch sortOrder {
	case domain.SortOrderAsc:
		sql += ` ORDER BY created_at ASC`
	default:
		// и desc, и relevance
		sql += ` ORDER BY created_at DESC`
	}

	sql += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return sql, args
}

// заменяет спецсимволы LIKE в терме на экранированные, чтобы % и _
// из пользовательского запроса искались как обычные символы
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// fallbackWhere строит OR-условие подстрочного поиска по термам
func fallbackWhere(query string) (string, []interface{}) {
	terms := strings.Fields(strings.ToLower(query))

	var conds []string
	var args []interface{}
	for _, term := range terms {
		n := len(args) + 1
		conds = append(conds, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d)", n, n))
		args = append(args, "%"+likeEscaper.Replace(term)+"%")
	}

	return strings.Join(conds, " OR "), args
}
