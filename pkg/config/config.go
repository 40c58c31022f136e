package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	DB      DBConfig
	Storage StorageConfig
	Backend BackendConfig
	Catalog CatalogConfig
	Auth    AuthConfig
	AMQP    AMQPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	MediaPrefix string // prefijo público de las imágenes de producto
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Migrate     bool // aplicar migraciones embebidas al arrancar
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Drivers de almacenamiento clave-valor soportados.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// StorageConfig almacenamiento durable clave-valor (carritos, sesiones, comprobantes).
type StorageConfig struct {
	Driver        string // memory, redis, postgres
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PurgeInterval time.Duration // barrido de claves vencidas (memory y postgres)
}

// BackendConfig servicio REST externo (catálogo y cuentas de usuario).
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// Drivers de catálogo soportados.
const (
	CatalogREST     = "rest"
	CatalogPostgres = "postgres"
)

// CatalogConfig origen y refresco del catálogo de productos.
type CatalogConfig struct {
	Driver          string        // rest, postgres
	RefreshInterval time.Duration // 0 = solo refresco manual y tras cada mutación
}

// AuthConfig opciones del flujo de autenticación.
type AuthConfig struct {
	DemoUsers bool // habilita las cuentas de prueba (admin/admin123, ...)
}

// AMQPConfig publicación de eventos del carrito. URL vacía = eventos deshabilitados.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// NeedsPostgres indica si algún componente configurado requiere el pool de PostgreSQL.
func (c *Config) NeedsPostgres() bool {
	return c.Storage.Driver == StoragePostgres || c.Catalog.Driver == CatalogPostgres
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, STORAGE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "tienda-funkos"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			MediaPrefix: getString(v, "MEDIA_PREFIX", "/multimedia"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:     getString(v, "JWT_ISSUER", "tienda-funkos"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "tienda_funkos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(getString(v, "STORAGE_DRIVER", StorageMemory)),
			RedisAddr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			PurgeInterval: getDuration(v, "KV_PURGE_INTERVAL", 10*time.Minute),
		},
		Backend: BackendConfig{
			URL:     getString(v, "BACKEND_URL", "http://127.0.0.1:8000"),
			Timeout: getDuration(v, "BACKEND_TIMEOUT", 10*time.Second),
		},
		Catalog: CatalogConfig{
			Driver:          strings.ToLower(getString(v, "CATALOG_DRIVER", CatalogREST)),
			RefreshInterval: getDuration(v, "CATALOG_REFRESH_INTERVAL", 5*time.Minute),
		},
		Auth: AuthConfig{
			DemoUsers: getBool(v, "AUTH_DEMO_USERS", false),
		},
		AMQP: AMQPConfig{
			URL:      getString(v, "AMQP_URL", ""),
			Exchange: getString(v, "AMQP_EXCHANGE", "tienda.events"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER desconocido: %q", c.Storage.Driver)
	}
	switch c.Catalog.Driver {
	case CatalogREST, CatalogPostgres:
	default:
		return fmt.Errorf("CATALOG_DRIVER desconocido: %q", c.Catalog.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET es obligatorio")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getDuration acepta "30s", "5m" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
