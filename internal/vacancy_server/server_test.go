package vacancyserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vamischenko/vacansii-back/configs"
)

// проверяем, что настройки сервера из конфига доходят до http.Server
func TestVacancyServer_BuildHTTPServer(t *testing.T) {
	conf := &configs.VacancyServiceConfig{
		ServerConf: &configs.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "9090",
			ReadTimeout:    3 * time.Second,
			WriteTimeout:   7 * time.Second,
			IdleTimeout:    42 * time.Second,
			MaxHeaderBytes: 1 << 19,
		},
		CORSConf: &configs.CORSConfig{AllowedOrigins: []string{"*"}},
		AuthConf: &configs.AuthConfig{},
	}

	server, err := NewVacancyServer(context.Background(), conf, nil, nil)
	require.NoError(t, err)

	httpServer := server.buildHTTPServer()

	assert.Equal(t, "127.0.0.1:9090", httpServer.Addr)
	assert.Equal(t, 3*time.Second, httpServer.ReadTimeout)
	assert.Equal(t, 7*time.Second, httpServer.WriteTimeout)
	assert.Equal(t, 42*time.Second, httpServer.IdleTimeout)
	assert.Equal(t, 1<<19, httpServer.MaxHeaderBytes)
}
