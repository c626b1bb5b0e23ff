package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Reporting     Reporting     `mapstructure:",squash"`
	IngestionSync IngestionSync `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Reporting configura o acesso aos endpoints de relatório upstream.
// Todos os endpoints compartilham a mesma base e token; o nome da fonte
// é o último segmento do caminho.
type Reporting struct {
	BaseURL        string `mapstructure:"reporting_base_url"`
	AccessToken    string `mapstructure:"reporting_access_token"`
	TimeoutSeconds int    `mapstructure:"reporting_timeout_seconds"`
}

// IngestionSync configura o agendador de ingestão diária e os orçamentos
// de retry do guard (fontes críticas recebem mais tentativas que opcionais).
type IngestionSync struct {
	CronSchedule       string `mapstructure:"ingestion_sync_cron"`
	Enabled            bool   `mapstructure:"ingestion_sync_enabled"`
	Level              string `mapstructure:"ingestion_sync_level"`
	SnapshotSource     string `mapstructure:"ingestion_sync_snapshot_source"`
	CriticalMaxRetries int    `mapstructure:"ingestion_critical_max_retries"`
	OptionalMaxRetries int    `mapstructure:"ingestion_optional_max_retries"`
	InitialDelayMillis int    `mapstructure:"ingestion_retry_initial_delay_ms"`
	MaxDelayMillis     int    `mapstructure:"ingestion_retry_max_delay_ms"`
}

type Auth struct {
	Secret               string `mapstructure:"auth_secret"`
	OperatorUser         string `mapstructure:"auth_operator_user"`
	OperatorPasswordHash string `mapstructure:"auth_operator_password_hash"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/reconciler")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REPORTING_BASE_URL", "https://reporting.internal/api/v2")
	viper.SetDefault("REPORTING_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("REPORTING_TIMEOUT_SECONDS", 60)

	// Defaults para o agendador de ingestão
	viper.SetDefault("INGESTION_SYNC_CRON", "0 5 * * *") // Todos os dias às 5h da manhã UTC
	viper.SetDefault("INGESTION_SYNC_ENABLED", false)
	viper.SetDefault("INGESTION_SYNC_LEVEL", "campaign")
	viper.SetDefault("INGESTION_SYNC_SNAPSHOT_SOURCE", "day")

	// Orçamentos de retry do guard
	viper.SetDefault("INGESTION_CRITICAL_MAX_RETRIES", 5)
	viper.SetDefault("INGESTION_OPTIONAL_MAX_RETRIES", 2)
	viper.SetDefault("INGESTION_RETRY_INITIAL_DELAY_MS", 1000)
	viper.SetDefault("INGESTION_RETRY_MAX_DELAY_MS", 30000)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_OPERATOR_USER", "operator")
	viper.SetDefault("AUTH_OPERATOR_PASSWORD_HASH", "")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
