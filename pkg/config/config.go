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
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Cache   CacheConfig
	Consumo ConsumoConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Timezone string // zona horaria de las plantas (fechas de consumo y cobertura)
	LogLevel string
}

// Location devuelve la zona horaria configurada; UTC si no se puede cargar.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Drivers de almacenamiento soportados. memory no persiste: desarrollo y demos.
const (
	DBPostgres = "postgres"
	DBMemory   = "memory"
)

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	Driver      string // postgres | memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// JWTConfig configuración de JWT. Secret es el JWT secret del proyecto que emite los tokens.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// Drivers de caché soportados.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// CacheConfig caché TTL de consultas de inventario.
type CacheConfig struct {
	Driver     string // memory | redis
	RedisURL   string
	TTLSeconds int
}

// TTL devuelve la duración de las entradas.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// ConsumoConfig parámetros del consumo automático y de la cobertura.
type ConsumoConfig struct {
	AutoEnabled bool
	RunHour     int // hora local (0-23) a la que corre el consumo automático
	DiasCritico int
	DiasBajo    int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
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

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "insumos-api"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Bogota"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", DBPostgres)),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "insumos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "insumos-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Cache: CacheConfig{
			Driver:     strings.ToLower(getString(v, "CACHE_DRIVER", CacheMemory)),
			RedisURL:   getString(v, "REDIS_URL", ""),
			TTLSeconds: getInt(v, "CACHE_TTL_SECONDS", 30),
		},
		Consumo: ConsumoConfig{
			AutoEnabled: getBool(v, "CONSUMO_AUTO_ENABLED", true),
			RunHour:     getInt(v, "CONSUMO_AUTO_HOUR", 5),
			DiasCritico: getInt(v, "COBERTURA_DIAS_CRITICO", 3),
			DiasBajo:    getInt(v, "COBERTURA_DIAS_BAJO", 7),
		},
	}

	if cfg.DB.Driver != DBPostgres && cfg.DB.Driver != DBMemory {
		return nil, fmt.Errorf("config: DB_DRIVER desconocido %q", cfg.DB.Driver)
	}
	if cfg.Cache.Driver != CacheMemory && cfg.Cache.Driver != CacheRedis {
		return nil, fmt.Errorf("config: CACHE_DRIVER desconocido %q", cfg.Cache.Driver)
	}
	if cfg.Cache.Driver == CacheRedis && cfg.Cache.RedisURL == "" {
		return nil, fmt.Errorf("config: REDIS_URL requerido con CACHE_DRIVER=redis")
	}
	if cfg.Consumo.RunHour < 0 || cfg.Consumo.RunHour > 23 {
		return nil, fmt.Errorf("config: CONSUMO_AUTO_HOUR fuera de rango: %d", cfg.Consumo.RunHour)
	}
	if cfg.Consumo.DiasCritico <= 0 || cfg.Consumo.DiasBajo < cfg.Consumo.DiasCritico {
		return nil, fmt.Errorf("config: umbrales de cobertura inválidos (%d, %d)", cfg.Consumo.DiasCritico, cfg.Consumo.DiasBajo)
	}
	return cfg, nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
