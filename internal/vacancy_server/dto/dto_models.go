// DTO структуры API сервера вакансий
package dto

import "time"

// CreateVacancyRequest - DTO для создания вакансии
type CreateVacancyRequest struct {
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Salary           int64                  `json:"salary"`
	AdditionalFields map[string]interface{} `json:"additional_fields"`
}

// UpdateVacancyRequest - DTO для частичного обновления вакансии
// указатели отличают "поле не передано" от "передано нулевое значение":
// отсутствующие поля не трогают текущие значения в базе
type UpdateVacancyRequest struct {
	Title            *string                 `json:"title"`
	Description      *string                 `json:"description"`
	Salary           *int64                  `json:"salary"`
	AdditionalFields *map[string]interface{} `json:"additional_fields"`
}

// VacancyListItem - элемент списка вакансий
// (additional_fields в списочное представление не входят)
type VacancyListItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Salary      int64  `json:"salary"`
	Description string `json:"description"`
}

// Pagination - метаданные пагинации
type Pagination struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	PageCount int   `json:"pageCount"`
}

// VacancyListResponse - ответ на запрос списка вакансий
type VacancyListResponse struct {
	Data       []VacancyListItem `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// VacancySearchResponse - ответ на поисковый запрос
// включает сам (возможно усечённый) поисковый запрос
type VacancySearchResponse struct {
	Data       []VacancyListItem `json:"data"`
	Pagination Pagination        `json:"pagination"`
	Query      string            `json:"query"`
}

// VacancyResponse - ответ на запрос одной вакансии
// указатели с omitempty позволяют отдавать проекцию только запрошенных полей
type VacancyResponse struct {
	ID               int64                  `json:"id"`
	Title            *string                `json:"title,omitempty"`
	Description      *string                `json:"description,omitempty"`
	Salary           *int64                 `json:"salary,omitempty"`
	AdditionalFields map[string]interface{} `json:"additional_fields,omitempty"`
	CreatedAt        *time.Time             `json:"created_at,omitempty"`
	UpdatedAt        *time.Time             `json:"updated_at,omitempty"`
}
