// валидация вакансии перед сохранением в базу
package domain

import (
	"encoding/json"

	"github.com/go-playground/validator"
)

// максимальный размер сериализованных дополнительных полей в байтах
const MaxAdditionalFieldsBytes = 5000

// создаём экзмепляр валидатора (чтобы он создавался в памяти только при загрузке модуля)
var validate = validator.New()

// вспомогательная структура с тэгами валидации
// (доменная структура Vacancy остаётся без тэгов)
type vacancyRules struct {
	Title       string `validate:"required,max=255"`
	Description string `validate:"required"`
	Salary      int64  `validate:"gte=0"`
}

// ValidateVacancy проверяет поля вакансии перед записью в базу
// возвращает мапу ошибок по полям, пустая мапа - вакансия валидна
func ValidateVacancy(v *Vacancy) map[string]string {
	errs := make(map[string]string)

	// проверяем базовые правила через validator
	rules := vacancyRules{
		Title:       v.Title,
		Description: v.Description,
		Salary:      v.Salary,
	}

	if err := validate.Struct(rules); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			switch fieldErr.Field() {
			case "Title":
				if fieldErr.Tag() == "max" {
					errs["title"] = "title must be at most 255 characters"
				} else {
					errs["title"] = "title is required"
				}
			case "Description":
				errs["description"] = "description is required"
			case "Salary":
				errs["salary"] = "salary must be greater than or equal to 0"
			}
		}
	}

	// дополнительные поля опциональны, но в сериализованном виде ограничены по размеру
	if v.AdditionalFields != nil {
		encoded, err := json.Marshal(v.AdditionalFields)
		if err != nil {
			errs["additional_fields"] = "additional_fields must be serializable"
		} else if len(encoded) > MaxAdditionalFieldsBytes {
			errs["additional_fields"] = "additional_fields must be at most 5000 bytes when serialized"
		}
	}

	return errs
}
