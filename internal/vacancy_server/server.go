// описание HTTP сервера вакансий
package vacancyserver

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vamischenko/vacansii-back/configs"
	"github.com/vamischenko/vacansii-back/internal/interfaces"
	"github.com/vamischenko/vacansii-back/internal/middleware"
	"github.com/vamischenko/vacansii-back/internal/vacancy_server/handlers"
)

// структура сервера вакансий
type VacancyServer struct {
	httpServer *http.Server
	router     *gin.Engine
	config     *configs.VacancyServiceConfig
	limiter    interfaces.RateLimiter
	Handler    handlers.VacancyHandlerInterface
}

// Конструктор для сервера
func NewVacancyServer(ctx context.Context, config *configs.VacancyServiceConfig, handler handlers.VacancyHandlerInterface, limiter interfaces.RateLimiter) (*VacancyServer, error) {
	// создаём экземпляр роутера
	router := gin.Default()
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil, err
	}

	// Добавляем middleware для проброса request_id через контекст
	// если клиент не прислал X-Request-ID, генерируем свой
	router.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), "request_id", requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	})

	router.Use(middleware.CORSMiddleware(config.CORSConf)) // используем для всех маршрутов работу с CORS

	return &VacancyServer{
		router:  router,
		config:  config,
		limiter: limiter,
		Handler: handler,
	}, nil
}

// Метод для маршрутизации сервера
func (v *VacancyServer) SetUpRoutes() {
	v.router.GET("/hello", v.Handler.EchoVacancyServer) // тестовый ендпоинт

	// все эндпоинты вакансий под лимитером запросов по IP
	vacancy := v.router.Group("/vacancy")
	vacancy.Use(middleware.RateLimitMiddleware(v.limiter, "vacancy"))

	vacancy.GET("", v.Handler.ListVacanciesHandler)
	vacancy.GET("/search", v.Handler.SearchVacanciesHandler)
	vacancy.GET("/:id", v.Handler.GetVacancyHandler)

	// мутирующие эндпоинты, опционально закрытые JWT авторизацией
	mutating := vacancy.Group("")
	if v.config.AuthConf.Enabled {
		mutating.Use(middleware.AuthMiddleware(v.config.AuthConf))
	}
	mutating.POST("", v.Handler.CreateVacancyHandler)
	mutating.PUT("/:id", v.Handler.UpdateVacancyHandler)
	mutating.DELETE("/:id", v.Handler.DeleteVacancyHandler)
}

// собираем http.Server: таймауты и лимит заголовков приходят из yml конфига
func (v *VacancyServer) buildHTTPServer() *http.Server {
	return &http.Server{
		Handler:        v.router,
		Addr:           v.config.ServerConf.Addr(),
		ReadTimeout:    v.config.ServerConf.ReadTimeout,
		WriteTimeout:   v.config.ServerConf.WriteTimeout,
		IdleTimeout:    v.config.ServerConf.IdleTimeout,
		MaxHeaderBytes: v.config.ServerConf.MaxHeaderBytes,
	}
}

// Метод для запуска сервера
func (v *VacancyServer) Run() error {
	v.SetUpRoutes()

	v.httpServer = v.buildHTTPServer()
	log.Printf("Starting HTTP server on %s", v.config.ServerConf.Addr())
	return v.httpServer.ListenAndServe()
}

// Метод для graceful shutdown
func (v *VacancyServer) Shutdown(ctx context.Context) error {
	if v.httpServer == nil {
		return nil
	}

	// Останавливаем HTTP сервер
	if err := v.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("Server shutdown completed")
	return nil
}
