package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Session  SessionConfig
	Upstream UpstreamConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
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

// SessionConfig configuración de la sesión del navegador.
type SessionConfig struct {
	CookieName string
	Secret     string // firma HS256 de la cookie de sesión
	Issuer     string
	ExpMinutes int    // vigencia de la cookie, no del token upstream
	File       string // archivo JSON donde se persisten las sesiones entre reinicios
}

// UpstreamConfig URLs base de las tres APIs consumidas.
// Cada valor debe terminar en "/" (ej. https://api.example.com/api/v1/).
type UpstreamConfig struct {
	AuthBaseURL         string
	InventoryBaseURL    string
	RequisitionsBaseURL string
}

// Normalize garantiza el "/" final en cada URL base.
func (c *UpstreamConfig) Normalize() {
	for _, p := range []*string{&c.AuthBaseURL, &c.InventoryBaseURL, &c.RequisitionsBaseURL} {
		if *p != "" && !strings.HasSuffix(*p, "/") {
			*p += "/"
		}
	}
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SESSION_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "scheduler-admin"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Session: SessionConfig{
			CookieName: getString(v, "SESSION_COOKIE_NAME", "scheduler_session"),
			Secret:     getString(v, "SESSION_SECRET", ""),
			Issuer:     getString(v, "SESSION_ISSUER", "scheduler-admin"),
			ExpMinutes: getInt(v, "SESSION_EXP_MINUTES", 8*60),
			File:       getString(v, "SESSION_FILE", "./data/sessions.json"),
		},
		Upstream: UpstreamConfig{
			AuthBaseURL:         getString(v, "AUTH_API_BASE_URL", "http://localhost:4000/api/v1/"),
			InventoryBaseURL:    getString(v, "INVENTORY_API_BASE_URL", "http://localhost:4001/api/v1/"),
			RequisitionsBaseURL: getString(v, "REQUISITIONS_API_BASE_URL", "http://localhost:4002/api/v1/"),
		},
	}
	cfg.Upstream.Normalize()

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("config: SESSION_SECRET es requerido")
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
