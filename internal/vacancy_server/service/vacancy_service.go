// описание сервисного слоя сервера вакансий
// единственный слой с бизнес-правилами: валидация, кэширование, инвалидация
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vamischenko/vacansii-back/internal/domain"
	"github.com/vamischenko/vacansii-back/internal/interfaces"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/converters"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/dto"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/repository"
)

// максимальная длина поискового запроса (символов); лишнее усекается, не отклоняется
const maxSearchQueryLen = 255

// описание интерфейса сервисного слоя
type VacancyServiceInterface interface {
	List(ctx context.Context, page int, sortField, sortOrder string) (*dto.VacancyListResponse, error)
	GetByID(ctx context.Context, id int64, fields []string) (*dto.VacancyResponse, error)
	Create(ctx context.Context, req *dto.CreateVacancyRequest) (int64, map[string]string, error)
	Update(ctx context.Context, id int64, req *dto.UpdateVacancyRequest) (map[string]string, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, page int, sortOrder string) (*dto.VacancySearchResponse, error)
}

// Проверка на этапе компиляции, что тип реализует интерфейс
var _ VacancyServiceInterface = (*VacancyService)(nil)

// описание структуры сервисного слоя
type VacancyService struct {
	repo  interfaces.VacancyRepoInterface
	cache interfaces.Cache
}

// конструктор для сервисного слоя
func NewVacancyService(repo interfaces.VacancyRepoInterface, cache interfaces.Cache) *VacancyService {
	return &VacancyService{
		repo:  repo,
		cache: cache,
	}
}

// List возвращает страницу вакансий с метаданными пагинации
// невалидные sortField/sortOrder молча заменяются дефолтами (created_at, desc)
func (s *VacancyService) List(ctx context.Context, page int, sortField, sortOrder string) (*dto.VacancyListResponse, error) {
	sortField = domain.NormalizeListSort(sortField)
	sortOrder = domain.NormalizeListOrder(sortOrder)

	key := listCacheKey(page, sortField, sortOrder)

	// пробуем отдать готовый ответ из кэша
	var cached dto.VacancyListResponse
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	vacancies, total, err := s.repo.FindPage(ctx, page, sortField, sortOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to load vacancies page: %w", err)
	}

	response := &dto.VacancyListResponse{
		Data:       converters.VacanciesToListItems(vacancies),
		Pagination: buildPagination(total, page),
	}

	s.putCached(ctx, key, response, listCacheTTL)

	return response, nil
}

// GetByID возвращает вакансию по ID
// при пустом fields отдаётся и кэшируется полный вариант; проекция не кэшируется
func (s *VacancyService) GetByID(ctx context.Context, id int64, fields []string) (*dto.VacancyResponse, error) {
	// кэш проверяем только когда фильтр полей не запрошен
	if len(fields) == 0 {
		var cached dto.VacancyResponse
		if s.getCached(ctx, entityCacheKey(id), &cached) {
			return &cached, nil
		}
	}

	vacancy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load vacancy: %w", err)
	}
	if vacancy == nil {
		return nil, domain.ErrVacancyNotFound
	}

	if len(fields) > 0 {
		// проекция: id плюс пересечение запрошенных полей с разрешёнными
		return converters.VacancyToProjection(vacancy, fields), nil
	}

	response := converters.VacancyToFullResponse(vacancy)
	s.putCached(ctx, entityCacheKey(id), response, entityCacheTTL)

	return response, nil
}

// Create валидирует и сохраняет новую вакансию
// при ошибках валидации возвращает мапу ошибок по полям без побочных эффектов
func (s *VacancyService) Create(ctx context.Context, req *dto.CreateVacancyRequest) (int64, map[string]string, error) {
	vacancy := &domain.Vacancy{
		Title:            req.Title,
		Description:      req.Description,
		Salary:           req.Salary,
		AdditionalFields: req.AdditionalFields,
	}

	if errs := domain.ValidateVacancy(vacancy); len(errs) > 0 {
		return 0, errs, nil
	}

	id, err := s.repo.Create(ctx, vacancy)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create vacancy: %w", err)
	}

	// новая запись меняет состав списков
	s.invalidateListCache(ctx)

	return id, nil, nil
}

// Update применяет частичное обновление: отсутствующие в запросе поля не меняются
// слитая вакансия валидируется целиком перед сохранением
func (s *VacancyService) Update(ctx context.Context, id int64, req *dto.UpdateVacancyRequest) (map[string]string, error) {
	vacancy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load vacancy for update: %w", err)
	}
	if vacancy == nil {
		return nil, domain.ErrVacancyNotFound
	}

	// сливаем только переданные поля
	if req.Title != nil {
		vacancy.Title = *req.Title
	}
	if req.Description != nil {
		vacancy.Description = *req.Description
	}
	if req.Salary != nil {
		vacancy.Salary = *req.Salary
	}
	if req.AdditionalFields != nil {
		vacancy.AdditionalFields = *req.AdditionalFields
	}

	if errs := domain.ValidateVacancy(vacancy); len(errs) > 0 {
		return errs, nil
	}

	updated, err := s.repo.Update(ctx, vacancy)
	if err != nil {
		return nil, fmt.Errorf("failed to update vacancy: %w", err)
	}
	if !updated {
		return nil, domain.ErrVacancyNotFound
	}

	// инвалидируем и кэш самой вакансии, и кэш списков
	s.invalidateEntityCache(ctx, id)
	s.invalidateListCache(ctx)

	return nil, nil
}

// Delete удаляет вакансию и инвалидирует связанные записи кэша
func (s *VacancyService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete vacancy: %w", err)
	}
	if !deleted {
		return domain.ErrVacancyNotFound
	}

	s.invalidateEntityCache(ctx, id)
	s.invalidateListCache(ctx)

	return nil
}

// Search выполняет полнотекстовый поиск по вакансиям
// пустой (после trim) запрос сразу даёт пустой результат без похода в кэш и базу:
// вызывающая сторона отклоняет пустые запросы раньше, но сервис остаётся защитным
func (s *VacancyService) Search(ctx context.Context, query string, page int, sortOrder string) (*dto.VacancySearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &dto.VacancySearchResponse{
			Data:       []dto.VacancyListItem{},
			Pagination: buildPagination(0, page),
			Query:      "",
		}, nil
	}

	// слишком длинный запрос усекаем, а не отклоняем
	if runes := []rune(query); len(runes) > maxSearchQueryLen {
		query = string(runes[:maxSearchQueryLen])
	}

	sortOrder = domain.NormalizeSearchOrder(sortOrder)

	key := searchCacheKey(query, page, sortOrder)

	var cached dto.VacancySearchResponse
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	vacancies, total, err := s.repo.Search(ctx, query, page, sortOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to search vacancies: %w", err)
	}

	response := &dto.VacancySearchResponse{
		Data:       converters.VacanciesToListItems(vacancies),
		Pagination: buildPagination(total, page),
		Query:      query,
	}

	s.putCached(ctx, key, response, searchCacheTTL)

	return response, nil
}

// getCached пробует прочитать и распаковать готовый ответ из кэша
// любая ошибка кэша трактуется как промах: кэш не должен ломать запрос
func (s *VacancyService) getCached(ctx context.Context, key string, dest interface{}) bool {
	raw, err := s.cache.GetBytes(ctx, key)
	if err != nil {
		if err != interfaces.ErrCacheMiss {
			log.Printf("cache read failed for %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("corrupted cache entry for %s: %v", key, err)
		return false
	}

	return true
}

// putCached сохраняет готовый ответ в кэш с заданным TTL
func (s *VacancyService) putCached(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	encoded, err := json.Marshal(value)
	if err != nil {
		log.Printf("failed to marshal cache entry for %s: %v", key, err)
		return
	}

	if err := s.cache.Set(ctx, key, encoded, ttl); err != nil {
		log.Printf("cache write failed for %s: %v", key, err)
	}
}

// invalidateListCache удаляет ограниченный набор ключей листинга:
// первые invalidatedListPages страниц по всем комбинациям сортировок
// страницы дальше и кэш поиска не трогаются - доживают до истечения TTL
func (s *VacancyService) invalidateListCache(ctx context.Context) {
	sortFields := []string{domain.SortFieldSalary, domain.SortFieldCreatedAt}
	sortOrders := []string{domain.SortOrderAsc, domain.SortOrderDesc}

	for page := 1; page <= invalidatedListPages; page++ {
		for _, sf := range sortFields {
			for _, so := range sortOrders {
				if err := s.cache.Delete(ctx, listCacheKey(page, sf, so)); err != nil {
					log.Printf("failed to invalidate list cache key: %v", err)
				}
			}
		}
	}
}

// invalidateEntityCache удаляет закэшированный полный вариант вакансии
func (s *VacancyService) invalidateEntityCache(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, entityCacheKey(id)); err != nil {
		log.Printf("failed to invalidate entity cache key: %v", err)
	}
}

// buildPagination собирает метаданные пагинации
func buildPagination(total int64, page int) dto.Pagination {
	pageCount := int((total + repository.PageSize - 1) / repository.PageSize)
	return dto.Pagination{
		Total:     total,
		Page:      page,
		PageSize:  repository.PageSize,
		PageCount: pageCount,
	}
}
