// конвертеры Domain <-> DTO для сервера вакансий
package converters

import (
	"github.com/vamischenko/vacansii-back/internal/domain"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/dto"
)

// VacancyToListItem конвертирует доменную вакансию в элемент списка
func VacancyToListItem(v domain.Vacancy) dto.VacancyListItem {
	return dto.VacancyListItem{
		ID:          v.ID,
		Title:       v.Title,
		Salary:      v.Salary,
		Description: v.Description,
	}
}

// VacanciesToListItems конвертирует срез доменных вакансий в элементы списка
func VacanciesToListItems(vacancies []domain.Vacancy) []dto.VacancyListItem {
	// пустой срез, а не nil - чтобы в JSON уходил [], а не null
	items := make([]dto.VacancyListItem, 0, len(vacancies))
	for _, v := range vacancies {
		items = append(items, VacancyToListItem(v))
	}
	return items
}

// VacancyToFullResponse конвертирует доменную вакансию в полный ответ (все поля)
func VacancyToFullResponse(v *domain.Vacancy) *dto.VacancyResponse {
	return &dto.VacancyResponse{
		ID:               v.ID,
		Title:            &v.Title,
		Description:      &v.Description,
		Salary:           &v.Salary,
		AdditionalFields: v.AdditionalFields,
		CreatedAt:        &v.CreatedAt,
		UpdatedAt:        &v.UpdatedAt,
	}
}

// VacancyToProjection конвертирует вакансию в проекцию из запрошенных полей
// fields пересекаются с закрытым списком разрешённых полей, остальное игнорируется
// id присутствует в ответе всегда
func VacancyToProjection(v *domain.Vacancy, fields []string) *dto.VacancyResponse {
	resp := &dto.VacancyResponse{ID: v.ID}

	for _, field := range fields {
		if !domain.AllowedProjectionFields[field] {
			continue
		}
		switch field {
		case "title":
			resp.Title = &v.Title
		case "description":
			resp.Description = &v.Description
		case "salary":
			resp.Salary = &v.Salary
		case "additional_fields":
			resp.AdditionalFields = v.AdditionalFields
		}
	}

	return resp
}
