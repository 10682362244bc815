package interfaces

import (
	"context"

	"github.com/vamischenko/vacansii-back/internal/domain"
)

// интерфейс слоя доступа к данным для вакансий
// FindByID возвращает (nil, nil), если вакансии с таким ID нет
type VacancyRepoInterface interface {
	FindByID(ctx context.Context, id int64) (*domain.Vacancy, error)
	FindPage(ctx context.Context, page int, sortField, sortOrder string) ([]domain.Vacancy, int64, error)
	Create(ctx context.Context, v *domain.Vacancy) (int64, error)
	Update(ctx context.Context, v *domain.Vacancy) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, query string, page int, sortOrder string) ([]domain.Vacancy, int64, error)
}
