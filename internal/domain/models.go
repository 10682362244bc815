// доменные модели сервиса вакансий
package domain

import (
	"errors"
	"time"
)

var (
	ErrVacancyNotFound = errors.New("vacancy not found")
)

// основная структура вакансии
// ID назначается базой данных и не меняется, CreatedAt/UpdatedAt выставляются сервером
type Vacancy struct {
	ID               int64                  // ID вакансии (назначает база)
	Title            string                 // название вакансии (до 255 символов)
	Description      string                 // описание вакансии
	Salary           int64                  // зарплата (не может быть отрицательной)
	AdditionalFields map[string]interface{} // произвольные дополнительные поля (опционально)
	CreatedAt        time.Time              // время создания записи
	UpdatedAt        time.Time              // время последнего изменения записи
}

// допустимые поля сортировки для листинга
const (
	SortFieldSalary    = "salary"
	SortFieldCreatedAt = "created_at"
)

// допустимые направления сортировки
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// допустимые сортировки для поиска (relevance - по релевантности)
const (
	SortOrderRelevance = "relevance"
)

// NormalizeListSort приводит поле сортировки листинга к допустимому значению
// невалидные значения молча заменяются на дефолт created_at
func NormalizeListSort(sortField string) string {
	switch sortField {
	case SortFieldSalary, SortFieldCreatedAt:
		return sortField
	default:
		return SortFieldCreatedAt
	}
}

// NormalizeListOrder приводит направление сортировки к допустимому значению
// невалидные значения молча заменяются на дефолт desc
func NormalizeListOrder(sortOrder string) string {
	switch sortOrder {
	case SortOrderAsc, SortOrderDesc:
		return sortOrder
	default:
		return SortOrderDesc
	}
}

// NormalizeSearchOrder приводит сортировку поиска к допустимому значению
// невалидные значения молча заменяются на дефолт relevance
func NormalizeSearchOrder(sortOrder string) string {
	switch sortOrder {
	case SortOrderRelevance, SortOrderAsc, SortOrderDesc:
		return sortOrder
	default:
		return SortOrderRelevance
	}
}

// AllowedProjectionFields - закрытый список полей, которые можно запрашивать через ?fields=
// (см. обработку GET /vacancy/{id})
var AllowedProjectionFields = map[string]bool{
	"title":             true,
	"description":       true,
	"salary":            true,
	"additional_fields": true,
}
