package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vamischenko/vacansii-back/internal/domain"
)

// метод для преобразования ошибки сервисного слоя в HTTP ответ
// внутренние детали ошибок наружу не отдаём, только логируем
func RespondError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrVacancyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "vacancy not found",
		})
		return
	}

	log.Printf("internal error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "internal server error",
	})
}
