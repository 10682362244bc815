// слой доступа к данным для вакансий поверх абстракции пула соединений
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/vamischenko/vacansii-back/internal/domain"
	"github.com/vamischenko/vacansii-back/internal/interfaces"
)

// размер страницы листинга и поиска
const PageSize = 10

// Проверка на этапе компиляции, что тип реализует интерфейс
var _ interfaces.VacancyRepoInterface = (*VacancyRepository)(nil)

// репозиторий вакансий: CRUD и поиск; кэш этот слой не трогает
type VacancyRepository struct {
	pool    interfaces.Pool
	builder *SearchQueryBuilder
}

// создаём конструктор для слоя базы данных
func NewVacancyRepository(pool interfaces.Pool, dialect string) *VacancyRepository {
	return &VacancyRepository{
		pool:    pool,
		builder: NewSearchQueryBuilder(dialect),
	}
}

// FindByID ищет вакансию по ID, возвращает (nil, nil) если вакансии нет
func (r *VacancyRepository) FindByID(ctx context.Context, id int64) (*domain.Vacancy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        SELECT id, title, description, salary, additional_fields, created_at, updated_at
        FROM vacancies
        WHERE id = $1
        LIMIT 1
    `

	var v domain.Vacancy
	var additionalFields []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.Salary,
		&additionalFields,
		&v.CreatedAt,
		&v.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vacancy by id: %w", err)
	}

	// дополнительные поля хранятся как JSON, могут отсутствовать
	if len(additionalFields) > 0 {
		if err := json.Unmarshal(additionalFields, &v.AdditionalFields); err != nil {
			return nil, fmt.Errorf("failed to decode additional fields: %w", err)
		}
	}

	return &v, nil
}

// querier объединяет пул и транзакцию для читающих запросов
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) interfaces.Row
	Query(ctx context.Context, sql string, args ...any) (interfaces.Rows, error)
}

// FindPage возвращает страницу вакансий и общее количество записей
// sortField и sortOrder к этому моменту уже нормализованы сервисным слоем
// страница и счётчик читаются в одной транзакции, чтобы total
// соответствовал тому же состоянию базы, что и сама страница
func (r *VacancyRepository) FindPage(ctx context.Context, page int, sortField, sortOrder string) ([]domain.Vacancy, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	// после успешного Commit откат превращается в no-op
	defer func() { _ = tx.Rollback(ctx) }()

	// интерполяция безопасна: значения прошли через закрытый список доменной нормализации
	query := fmt.Sprintf(`
        SELECT id, title, description, salary, created_at
        FROM vacancies
        ORDER BY %s %s
        LIMIT $1 OFFSET $2
    `, domain.NormalizeListSort(sortField), domain.NormalizeListOrder(sortOrder))

	rows, err := tx.Query(ctx, query, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query vacancies page: %w", err)
	}

	vacancies, err := scanVacancyRows(rows)
	// закрываем строки до следующего запроса в той же транзакции
	rows.Close()
	if err != nil {
		return nil, 0, err
	}

	total, err := countAll(ctx, tx)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	return vacancies, total, nil
}

// Create добавляет новую вакансию, возвращает назначенный базой ID
func (r *VacancyRepository) Create(ctx context.Context, v *domain.Vacancy) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	additionalFields, err := encodeAdditionalFields(v.AdditionalFields)
	if err != nil {
		return 0, err
	}

	const query = `
        INSERT INTO vacancies (title, description, salary, additional_fields, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
        RETURNING id
    `

	var id int64
	err = r.pool.QueryRow(ctx, query, v.Title, v.Description, v.Salary, additionalFields, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert vacancy: %w", err)
	}

	return id, nil
}

// Update перезаписывает вакансию целиком (слияние частичного обновления делает сервис)
// возвращает false, если вакансии с таким ID нет
func (r *VacancyRepository) Update(ctx context.Context, v *domain.Vacancy) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	additionalFields, err := encodeAdditionalFields(v.AdditionalFields)
	if err != nil {
		return false, err
	}

	const query = `
        UPDATE vacancies
        SET title = $1, description = $2, salary = $3, additional_fields = $4, updated_at = $5
        WHERE id = $6
    `

	affected, err := r.pool.Exec(ctx, query, v.Title, v.Description, v.Salary, additionalFields, time.Now(), v.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update vacancy: %w", err)
	}

	return affected > 0, nil
}

// Delete удаляет вакансию, возвращает false если вакансии с таким ID не было
func (r *VacancyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	const query = `DELETE FROM vacancies WHERE id = $1`

	affected, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete vacancy: %w", err)
	}

	return affected > 0, nil
}

// Search возвращает страницу результатов полнотекстового поиска и общее количество совпадений
// механика совпадения и ранжирования зависит от диалекта, форма ответа - нет
// страница и счётчик совпадений читаются в одной транзакции
func (r *VacancyRepository) Search(ctx context.Context, query string, page int, sortOrder string) ([]domain.Vacancy, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	searchSQL, args := r.builder.BuildSearchQuery(query, sortOrder, PageSize, (page-1)*PageSize)

	rows, err := tx.Query(ctx, searchSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search vacancies: %w", err)
	}

	vacancies, err := scanVacancyRows(rows)
	rows.Close()
	if err != nil {
		return nil, 0, err
	}

	countSQL, countArgs := r.builder.BuildCountQuery(query)

	var total int64
	if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	return vacancies, total, nil
}

// countAll возвращает общее количество вакансий в базе
func countAll(ctx context.Context, q querier) (int64, error) {
	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM vacancies`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count vacancies: %w", err)
	}
	return total, nil
}

// scanVacancyRows сканирует строки списочной выборки (без additional_fields)
func scanVacancyRows(rows interfaces.Rows) ([]domain.Vacancy, error) {
	var vacancies []domain.Vacancy
	for rows.Next() {
		var v domain.Vacancy
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Salary, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vacancy row: %w", err)
		}
		vacancies = append(vacancies, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vacancy rows: %w", err)
	}
	return vacancies, nil
}

// encodeAdditionalFields сериализует дополнительные поля для хранения (nil - NULL в базе)
func encodeAdditionalFields(fields map[string]interface{}) ([]byte, error) {
	if fields == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode additional fields: %w", err)
	}
	return encoded, nil
}
