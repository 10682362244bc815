package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vamischenko/vacansii-back/internal/cache"
	"github.com/vamischenko/vacansii-back/internal/domain"
	"github.com/vamischenko/vacansii-back/internal/interfaces"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/dto"
)

// заглушка репозитория со счётчиками вызовов
// хранит вакансии в мапе, поиск - подстрочный по title/description
type fakeRepo struct {
	vacancies map[int64]*domain.Vacancy
	nextID    int64

	findPageCalls int
	findByIDCalls int
	searchCalls   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		vacancies: map[int64]*domain.Vacancy{},
		nextID:    1,
	}
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*domain.Vacancy, error) {
	f.findByIDCalls++
	v, ok := f.vacancies[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (f *fakeRepo) FindPage(ctx context.Context, page int, sortField, sortOrder string) ([]domain.Vacancy, int64, error) {
	f.findPageCalls++
	var result []domain.Vacancy
	for _, v := range f.vacancies {
		result = append(result, *v)
	}
	return result, int64(len(f.vacancies)), nil
}

func (f *fakeRepo) Create(ctx context.Context, v *domain.Vacancy) (int64, error) {
	id := f.nextID
	f.nextID++
	copied := *v
	copied.ID = id
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	f.vacancies[id] = &copied
	return id, nil
}

func (f *fakeRepo) Update(ctx context.Context, v *domain.Vacancy) (bool, error) {
	if _, ok := f.vacancies[v.ID]; !ok {
		return false, nil
	}
	copied := *v
	copied.UpdatedAt = time.Now()
	f.vacancies[v.ID] = &copied
	return true, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.vacancies[id]; !ok {
		return false, nil
	}
	delete(f.vacancies, id)
	return true, nil
}

func (f *fakeRepo) Search(ctx context.Context, query string, page int, sortOrder string) ([]domain.Vacancy, int64, error) {
	f.searchCalls++
	var result []domain.Vacancy
	for _, v := range f.vacancies {
		if strings.Contains(strings.ToLower(v.Title+" "+v.Description), strings.ToLower(query)) {
			result = append(result, *v)
		}
	}
	return result, int64(len(result)), nil
}

var _ interfaces.VacancyRepoInterface = (*fakeRepo)(nil)

// вспомогательная функция: сервис поверх заглушки репозитория и инмемори кэша
func newTestService(t *testing.T) (*VacancyService, *fakeRepo, interfaces.Cache) {
	t.Helper()

	c, err := cache.NewInmemoryShardedCache(3, 0)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	repo := newFakeRepo()
	return NewVacancyService(repo, c), repo, c
}

func seedVacancy(t *testing.T, repo *fakeRepo) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.Vacancy{
		Title:       "PHP Developer",
		Description: "Разработка backend сервисов",
		Salary:      150000,
	})
	require.NoError(t, err)
	return id
}

// проверяем кэширование листинга
func TestVacancyService_List(t *testing.T) {
	ctx := context.Background()

	// повторный запрос той же страницы отдаётся из кэша без похода в базу
	t.Run("second call is served from cache", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seedVacancy(t, repo)

		first, err := svc.List(ctx, 1, "created_at", "desc")
		require.NoError(t, err)
		require.Equal(t, 1, repo.findPageCalls)

		second, err := svc.List(ctx, 1, "created_at", "desc")
		require.NoError(t, err)
		assert.Equal(t, 1, repo.findPageCalls, "repo must not be hit on cache hit")
		assert.Equal(t, first, second)
	})

	// невалидные sort/order молча заменяются дефолтами и попадают в один ключ кэша
	t.Run("invalid sort falls back to defaults", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seedVacancy(t, repo)

		_, err := svc.List(ctx, 1, "bogus", "sideways")
		require.NoError(t, err)

		// тот же запрос с явными дефолтами - кэш-хит
		_, err = svc.List(ctx, 1, "created_at", "desc")
		require.NoError(t, err)
		assert.Equal(t, 1, repo.findPageCalls)
	})

	// метаданные пагинации
	t.Run("pagination metadata", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		for i := 0; i < 11; i++ {
			seedVacancy(t, repo)
		}

		resp, err := svc.List(ctx, 1, "created_at", "desc")
		require.NoError(t, err)

		assert.Equal(t, int64(11), resp.Pagination.Total)
		assert.Equal(t, 10, resp.Pagination.PageSize)
		assert.Equal(t, 2, resp.Pagination.PageCount)
		assert.Equal(t, 1, resp.Pagination.Page)
	})
}

// проверяем ограниченную инвалидацию кэша списков при мутациях
func TestVacancyService_ListCacheInvalidation(t *testing.T) {
	ctx := context.Background()

	// после создания вакансии первые 10 страниц по всем сортировкам отсутствуют в кэше
	t.Run("mutation drops first 10 pages for all sort combinations", func(t *testing.T) {
		svc, repo, c := newTestService(t)
		seedVacancy(t, repo)

		// прогреваем несколько ключей листинга
		for page := 1; page <= 10; page++ {
			for _, sf := range []string{"salary", "created_at"} {
				for _, so := range []string{"asc", "desc"} {
					_, err := svc.List(ctx, page, sf, so)
					require.NoError(t, err)
				}
			}
		}

		_, errs, err := svc.Create(ctx, &dto.CreateVacancyRequest{
			Title:       "Go Developer",
			Description: "Новая вакансия",
			Salary:      200000,
		})
		require.NoError(t, err)
		require.Empty(t, errs)

		for page := 1; page <= 10; page++ {
			for _, sf := range []string{"salary", "created_at"} {
				for _, so := range []string{"asc", "desc"} {
					ok, err := c.Exists(ctx, listCacheKey(page, sf, so))
					require.NoError(t, err)
					assert.False(t, ok, "page %d %s %s must be invalidated", page, sf, so)
				}
			}
		}
	})

	// известное ограничение: страницы дальше 10-й мутациями не инвалидируются
	// и доживают до истечения TTL
	t.Run("pages beyond the bound survive mutations", func(t *testing.T) {
		svc, repo, c := newTestService(t)
		seedVacancy(t, repo)

		_, err := svc.List(ctx, 11, "created_at", "desc")
		require.NoError(t, err)

		_, errs, err := svc.Create(ctx, &dto.CreateVacancyRequest{
			Title:       "Go Developer",
			Description: "Новая вакансия",
			Salary:      200000,
		})
		require.NoError(t, err)
		require.Empty(t, errs)

		ok, err := c.Exists(ctx, listCacheKey(11, "created_at", "desc"))
		require.NoError(t, err)
		assert.True(t, ok, "page 11 intentionally stays cached until TTL")
	})
}

// проверяем получение вакансии по ID
func TestVacancyService_GetByID(t *testing.T) {
	ctx := context.Background()

	// полный вариант кэшируется: повторный запрос не ходит в базу
	t.Run("full variant is cached", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		id := seedVacancy(t, repo)

		_, err := svc.GetByID(ctx, id, nil)
		require.NoError(t, err)
		require.Equal(t, 1, repo.findByIDCalls)

		resp, err := svc.GetByID(ctx, id, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.findByIDCalls)
		assert.Equal(t, id, resp.ID)
		require.NotNil(t, resp.Title)
		assert.Equal(t, "PHP Developer", *resp.Title)
	})

	// проекция не кэшируется и содержит только id + пересечение с разрешёнными полями
	t.Run("projection bypasses cache and filters fields", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		id := seedVacancy(t, repo)

		resp, err := svc.GetByID(ctx, id, []string{"title", "salary", "bogus_field"})
		require.NoError(t, err)
		require.Equal(t, 1, repo.findByIDCalls)

		assert.Equal(t, id, resp.ID)
		assert.NotNil(t, resp.Title)
		assert.NotNil(t, resp.Salary)
		assert.Nil(t, resp.Description)
		assert.Nil(t, resp.CreatedAt)
	})

	// неизвестный ID - ErrVacancyNotFound
	t.Run("unknown id returns not found", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.GetByID(ctx, 777, nil)
		assert.ErrorIs(t, err, domain.ErrVacancyNotFound)
	})
}

// проверяем создание вакансии
func TestVacancyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid vacancy is persisted", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		id, errs, err := svc.Create(ctx, &dto.CreateVacancyRequest{
			Title:       "PHP Developer",
			Description: "Описание",
			Salary:      150000,
		})
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Positive(t, id)
		assert.Contains(t, repo.vacancies, id)
	})

	// ошибки валидации возвращаются по полям, запись не создаётся
	t.Run("validation failure has no side effects", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		id, errs, err := svc.Create(ctx, &dto.CreateVacancyRequest{
			Title:       "",
			Description: "Описание",
			Salary:      -5,
		})
		require.NoError(t, err)
		assert.Zero(t, id)
		assert.Contains(t, errs, "title")
		assert.Contains(t, errs, "salary")
		assert.Empty(t, repo.vacancies)
	})
}

// проверяем частичное обновление
func TestVacancyService_Update(t *testing.T) {
	ctx := context.Background()

	// меняется только переданное поле, остальные остаются как были
	t.Run("absent fields keep their values", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		id := seedVacancy(t, repo)

		newSalary := int64(200000)
		errs, err := svc.Update(ctx, id, &dto.UpdateVacancyRequest{Salary: &newSalary})
		require.NoError(t, err)
		require.Empty(t, errs)

		updated := repo.vacancies[id]
		assert.Equal(t, int64(200000), updated.Salary)
		assert.Equal(t, "PHP Developer", updated.Title)
		assert.Equal(t, "Разработка backend сервисов", updated.Description)
	})

	// слитая вакансия валидируется: невалидное значение отклоняется
	t.Run("merged vacancy is revalidated", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		id := seedVacancy(t, repo)

		badSalary := int64(-1)
		errs, err := svc.Update(ctx, id, &dto.UpdateVacancyRequest{Salary: &badSalary})
		require.NoError(t, err)
		assert.Contains(t, errs, "salary")

		// значение в базе не изменилось
		assert.Equal(t, int64(150000), repo.vacancies[id].Salary)
	})

	// обновление инвалидирует кэш самой вакансии
	t.Run("update invalidates entity cache", func(t *testing.T) {
		svc, repo, c := newTestService(t)
		id := seedVacancy(t, repo)

		// прогреваем кэш вакансии
		_, err := svc.GetByID(ctx, id, nil)
		require.NoError(t, err)

		newSalary := int64(300000)
		errs, err := svc.Update(ctx, id, &dto.UpdateVacancyRequest{Salary: &newSalary})
		require.NoError(t, err)
		require.Empty(t, errs)

		ok, err := c.Exists(ctx, entityCacheKey(id))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		title := "X"
		_, err := svc.Update(ctx, 777, &dto.UpdateVacancyRequest{Title: &title})
		assert.ErrorIs(t, err, domain.ErrVacancyNotFound)
	})
}

// проверяем удаление
func TestVacancyService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete removes vacancy and cache entry", func(t *testing.T) {
		svc, repo, c := newTestService(t)
		id := seedVacancy(t, repo)

		_, err := svc.GetByID(ctx, id, nil)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, id))

		assert.NotContains(t, repo.vacancies, id)
		ok, err := c.Exists(ctx, entityCacheKey(id))
		require.NoError(t, err)
		assert.False(t, ok)

		// повторное чтение после удаления - not found
		_, err = svc.GetByID(ctx, id, nil)
		assert.ErrorIs(t, err, domain.ErrVacancyNotFound)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		assert.ErrorIs(t, svc.Delete(ctx, 777), domain.ErrVacancyNotFound)
	})
}

// проверяем поиск
func TestVacancyService_Search(t *testing.T) {
	ctx := context.Background()

	// пустой запрос - пустой результат без похода в кэш и базу
	t.Run("empty query short-circuits", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seedVacancy(t, repo)

		resp, err := svc.Search(ctx, "   ", 1, "relevance")
		require.NoError(t, err)

		assert.Equal(t, 0, repo.searchCalls)
		assert.Empty(t, resp.Data)
		assert.Equal(t, int64(0), resp.Pagination.Total)
		assert.Equal(t, "", resp.Query)
	})

	// запрос длиннее 255 символов усекается, усечённое значение попадает в ответ
	t.Run("long query is truncated and echoed", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		long := strings.Repeat("a", 300)
		resp, err := svc.Search(ctx, long, 1, "relevance")
		require.NoError(t, err)

		assert.Len(t, resp.Query, 255)
		assert.Equal(t, long[:255], resp.Query)
	})

	// поиск без совпадений: total = 0 и пустой массив данных
	t.Run("zero matches returns empty data", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seedVacancy(t, repo)

		resp, err := svc.Search(ctx, "nonexistent", 1, "relevance")
		require.NoError(t, err)

		assert.Equal(t, int64(0), resp.Pagination.Total)
		assert.NotNil(t, resp.Data)
		assert.Empty(t, resp.Data)
	})

	// повторный поиск отдаётся из кэша
	t.Run("repeated search is served from cache", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seedVacancy(t, repo)

		first, err := svc.Search(ctx, "php", 1, "relevance")
		require.NoError(t, err)
		require.Equal(t, 1, repo.searchCalls)

		second, err := svc.Search(ctx, "php", 1, "relevance")
		require.NoError(t, err)
		assert.Equal(t, 1, repo.searchCalls)
		assert.Equal(t, first, second)
	})

	// невалидная сортировка заменяется на relevance
	t.Run("invalid sort falls back to relevance", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seedVacancy(t, repo)

		_, err := svc.Search(ctx, "php", 1, "bogus")
		require.NoError(t, err)

		// тот же запрос с явной relevance - кэш-хит
		_, err = svc.Search(ctx, "php", 1, "relevance")
		require.NoError(t, err)
		assert.Equal(t, 1, repo.searchCalls)
	})

	// мутации НЕ инвалидируют кэш поиска - это осознанное ограничение,
	// устаревшие результаты доживают до истечения TTL
	t.Run("mutations do not invalidate search cache", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		seedVacancy(t, repo)

		first, err := svc.Search(ctx, "php", 1, "relevance")
		require.NoError(t, err)

		_, errs, err := svc.Create(ctx, &dto.CreateVacancyRequest{
			Title:       "PHP Senior",
			Description: "Ещё одна php вакансия",
			Salary:      250000,
		})
		require.NoError(t, err)
		require.Empty(t, errs)

		stale, err := svc.Search(ctx, "php", 1, "relevance")
		require.NoError(t, err)
		assert.Equal(t, first.Pagination.Total, stale.Pagination.Total, "search cache intentionally serves stale data")
	})
}
