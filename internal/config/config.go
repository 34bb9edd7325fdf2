package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Meta            Meta            `mapstructure:",squash"`
	Analyzer        Analyzer        `mapstructure:",squash"`
	AuditCache      AuditCache      `mapstructure:",squash"`
	Redis           Redis           `mapstructure:",squash"`
	Sync            Sync            `mapstructure:",squash"`
	IntegrationSync IntegrationSync `mapstructure:",squash"`
	SecretKey       string          `mapstructure:"secret_key"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string        `mapstructure:"-"`
	Driver       string        `mapstructure:"database_driver"`
	Password     string        `mapstructure:"database_password"`
	URL          string        `mapstructure:"database_url"`
	User         string        `mapstructure:"database_user"`
	MaxOpenConns int           `mapstructure:"database_max_open_conns"`
	ConnMaxIdle  time.Duration `mapstructure:"database_conn_max_idle"`
}

type Meta struct {
	BaseURL  string `mapstructure:"meta_base_url"`
	URL      string `mapstructure:"meta_url"`
	Version  string `mapstructure:"meta_version"`
	PageSize int    `mapstructure:"meta_page_size"`
}

// Analyzer é o motor externo que pontua um criativo
type Analyzer struct {
	URL     string        `mapstructure:"analyzer_url"`
	APIKey  string        `mapstructure:"analyzer_api_key"`
	Timeout time.Duration `mapstructure:"analyzer_timeout"`
}

type AuditCache struct {
	Backend string        `mapstructure:"audit_cache_backend"`
	TTL     time.Duration `mapstructure:"audit_cache_ttl"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Sync struct {
	CompletedDwell time.Duration `mapstructure:"sync_completed_dwell"`
}

type IntegrationSync struct {
	CronSchedule string `mapstructure:"integration_sync_cron"`
	Enabled      bool   `mapstructure:"integration_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/creative_audit?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_CONN_MAX_IDLE", "5m")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_PAGE_SIZE", 100)

	viper.SetDefault("ANALYZER_URL", "http://localhost:8090")
	viper.SetDefault("ANALYZER_API_KEY", "")
	viper.SetDefault("ANALYZER_TIMEOUT", "90s") // a análise de vídeo é lenta

	viper.SetDefault("AUDIT_CACHE_BACKEND", "memory") // memory ou redis
	viper.SetDefault("AUDIT_CACHE_TTL", "24h")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("SYNC_COMPLETED_DWELL", "2s") // tempo para o operador ler o resumo

	viper.SetDefault("INTEGRATION_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("INTEGRATION_SYNC_ENABLED", false)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.finalize()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize monta os valores derivados de outras chaves
func (c *Config) finalize() {
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

func (c *Config) Validate() error {
	switch c.AuditCache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: AUDIT_CACHE_BACKEND inválido: %q", c.AuditCache.Backend)
	}

	if c.Sync.CompletedDwell < 0 {
		return fmt.Errorf("config: SYNC_COMPLETED_DWELL não pode ser negativo")
	}

	if c.Analyzer.URL == "" {
		return fmt.Errorf("config: ANALYZER_URL é obrigatório")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
