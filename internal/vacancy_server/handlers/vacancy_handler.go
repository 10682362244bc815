// описание хэндлеров для сервера вакансий
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vamischenko/vacansii-back/internal/vacancy_server/dto"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/service"
)

const (
	defaultPage = 1
	maxPage     = 10000

	// максимальное число полей в проекции ?fields=
	maxProjectionFields = 10
)

// описание интерфейса слоя хэндлеров
type VacancyHandlerInterface interface {
	EchoVacancyServer(c *gin.Context)
	ListVacanciesHandler(c *gin.Context)
	GetVacancyHandler(c *gin.Context)
	CreateVacancyHandler(c *gin.Context)
	UpdateVacancyHandler(c *gin.Context)
	DeleteVacancyHandler(c *gin.Context)
	SearchVacanciesHandler(c *gin.Context)
}

// структура хэндлера сервера вакансий
type VacancyHandler struct {
	service service.VacancyServiceInterface
}

// конструктор для слоя хэндлеров
func NewVacancyHandler(service service.VacancyServiceInterface) *VacancyHandler {
	return &VacancyHandler{
		service: service,
	}
}

// проверка соответствия типа интерфейсу
var _ VacancyHandlerInterface = (*VacancyHandler)(nil)

// метод проверки работоспособности слоя хэндлеров
func (h *VacancyHandler) EchoVacancyServer(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from vacancy server!"})
}

// метод хэндлера для обработки GET запроса списка вакансий
// query параметры: page, sort, order (невалидные значения заменяются дефолтами)
func (h *VacancyHandler) ListVacanciesHandler(c *gin.Context) {
	page := parsePage(c.Query("page"))
	sortField := c.Query("sort")
	sortOrder := c.Query("order")

	response, err := h.service.List(c.Request.Context(), page, sortField, sortOrder)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// метод хэндлера для обработки GET запроса одной вакансии по ID
// опциональный параметр fields ограничивает набор полей в ответе
func (h *VacancyHandler) GetVacancyHandler(c *gin.Context) {
	id, ok := parseVacancyID(c)
	if !ok {
		return
	}

	response, err := h.service.GetByID(c.Request.Context(), id, parseFields(c.Query("fields")))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// метод хэндлера для обработки POST запроса на создание вакансии
func (h *VacancyHandler) CreateVacancyHandler(c *gin.Context) {
	var req dto.CreateVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	id, validationErrs, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	if len(validationErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  validationErrs,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      id,
		"message": "vacancy created",
	})
}

// метод хэндлера для обработки PUT запроса на частичное обновление вакансии
// отсутствующие в теле поля сохраняют текущие значения
func (h *VacancyHandler) UpdateVacancyHandler(c *gin.Context) {
	id, ok := parseVacancyID(c)
	if !ok {
		return
	}

	var req dto.UpdateVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	validationErrs, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	if len(validationErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  validationErrs,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "vacancy updated",
	})
}

// метод хэндлера для обработки DELETE запроса на удаление вакансии
func (h *VacancyHandler) DeleteVacancyHandler(c *gin.Context) {
	id, ok := parseVacancyID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "vacancy deleted",
	})
}

// метод хэндлера для обработки GET запроса полнотекстового поиска
// обязательный параметр q, опциональные page и sort
func (h *VacancyHandler) SearchVacanciesHandler(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "query parameter q is required",
		})
		return
	}

	page := parsePage(c.Query("page"))
	sortOrder := c.Query("sort")

	response, err := h.service.Search(c.Request.Context(), query, page, sortOrder)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// парсим ID вакансии из path параметра, при ошибке сами отвечаем 400
func parseVacancyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid vacancy id",
		})
		return 0, false
	}
	return id, true
}

// парсим номер страницы: нечисловые и отрицательные значения заменяются первой
// страницей, верхняя граница страхует от запросов с гигантским OFFSET
func parsePage(raw string) int {
	if raw == "" {
		return defaultPage
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return defaultPage
	}
	if page > maxPage {
		return maxPage
	}
	return page
}

// парсим список полей проекции из ?fields=, лишние обрезаем
func parseFields(raw string) []string {
	if raw == "" {
		return nil
	}

	var fields []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields = append(fields, part)
		if len(fields) == maxProjectionFields {
			break
		}
	}
	return fields
}
