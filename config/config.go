package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultAPIURL é usado quando nem API_URL nem VITE_API_URL estão definidos.
const DefaultAPIURL = "http://localhost:8080"

// Config armazena todas as configurações do stockadmin.
type Config struct {
	// Geral
	Environment string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn error"`

	// Backend de estoque
	APIURL      string        `validate:"required,url,startswith=http"`
	HTTPTimeout time.Duration `validate:"gte=0"` // 0 = sem timeout

	// Token de serviço (JWT HS256). Secret vazio desliga o header Authorization.
	JWTSecret  string
	JWTExpiry  time.Duration `validate:"required_with=JWTSecret,omitempty,gt=0"`
	JWTSubject string
	JWTRole    string

	// Métricas do cliente HTTP, gravadas em arquivo texto ao fim de cada comando.
	MetricsTextfile string

	// Servidor de desenvolvimento (cmd/fakeapi)
	FakeAPIAddr string `validate:"required"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// O .env, quando existe, é carregado antes pelo cmd com godotenv.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	cfg := &Config{
		// 1. Geral
		Environment: getString(v, "ENV", "development"),
		LogLevel:    strings.ToLower(getString(v, "LOG_LEVEL", "info")),

		// 2. Backend
		APIURL:      strings.TrimRight(getString(v, "API_URL", getString(v, "VITE_API_URL", DefaultAPIURL)), "/"),
		HTTPTimeout: getDuration(v, "HTTP_TIMEOUT_SEC", 0, time.Second),

		// 3. Token de serviço
		JWTSecret:  getString(v, "API_JWT_SECRET", ""),
		JWTExpiry:  getDuration(v, "API_JWT_EXPIRY_MIN", 5, time.Minute),
		JWTSubject: getString(v, "API_JWT_SUBJECT", "stockadmin"),
		JWTRole:    getString(v, "API_JWT_ROLE", "ADMIN"),

		// 4. Métricas
		MetricsTextfile: getString(v, "METRICS_TEXTFILE", ""),

		// 5. Desenvolvimento
		FakeAPIAddr: getString(v, "FAKEAPI_ADDR", ":8080"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return cfg, nil
}

// Funções Helpers (Auxiliares)

// getString lê a chave ou retorna o valor padrão. Valores vazios contam como ausentes.
func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		if s := strings.TrimSpace(v.GetString(key)); s != "" {
			return s
		}
	}
	return def
}

// getDuration lê um inteiro e o multiplica por unit. Valores não numéricos
// resultam em erro de validação (-1) em vez de cair silenciosamente no padrão.
func getDuration(v *viper.Viper, key string, def int, unit time.Duration) time.Duration {
	raw := getString(v, key, "")
	if raw == "" {
		return time.Duration(def) * unit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return time.Duration(n) * unit
}
