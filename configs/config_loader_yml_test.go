package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тестовая структура для проверки
type testConfig struct {
	Port    int    `yaml:"port"`
	Host    string `yaml:"host"`
	Enabled bool   `yaml:"enabled"`
}

func defaultTestConfig() *testConfig {
	return &testConfig{
		Port:    8080,
		Host:    "localhost",
		Enabled: false,
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	// Создаем временный каталог для тестовых файлов
	tmpDir := t.TempDir()

	// пустой путь к конфигу - возвращаются дефолатные значения без ошибки
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadYAMLConfig("", defaultTestConfig)

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "localhost", cfg.Host)
	})

	// файла нет - возвращаются дефолтные значения без ошибки
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadYAMLConfig(tmpDir+"/nonexistent.yaml", defaultTestConfig)

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, 8080, cfg.Port)
	})

	// значения из файла перезаписывают значения по умолчанию
	t.Run("values from file override defaults", func(t *testing.T) {
		yamlContent := `
port: 9090
host: "example.com"
enabled: true
`
		configFile := tmpDir + "/test-config.yaml"
		require.NoError(t, os.WriteFile(configFile, []byte(yamlContent), 0644))

		cfg, err := LoadYAMLConfig(configFile, defaultTestConfig)

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "example.com", cfg.Host)
		assert.True(t, cfg.Enabled)
	})

	// некорректный YAML - возвращается ошибка парсинга
	t.Run("invalid yaml returns error", func(t *testing.T) {
		invalidYaml := `
port: "не число"
host: example.com
`
		configFile := tmpDir + "/invalid-config.yaml"
		require.NoError(t, os.WriteFile(configFile, []byte(invalidYaml), 0644))

		_, err := LoadYAMLConfig(configFile, defaultTestConfig)
		assert.Error(t, err)
	})
}
