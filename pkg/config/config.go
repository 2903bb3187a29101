package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// ErrInvalid error base de configuración: variable ausente o no convertible a su tipo.
var ErrInvalid = errors.New("configuración inválida")

// Error detalla qué variable falló. errors.Is(err, ErrInvalid) es siempre cierto.
type Error struct {
	Key string
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalid, e.Key, e.Msg)
}

func (e *Error) Unwrap() error { return ErrInvalid }

func invalid(key, format string, args ...any) error {
	return &Error{Key: key, Msg: fmt.Sprintf(format, args...)}
}

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una sola vez en main y se pasa explícitamente a quien la necesite.
type Config struct {
	App       AppConfig
	ODBC      ODBCConfig
	HTTP      HTTPConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// ODBCConfig parámetros de conexión a la base de datos heredada.
// Los nombres de variable (DRIVER, DSN, HOST, DB, UID, PWD2, PORT) son los del despliegue existente.
type ODBCConfig struct {
	Driver       string
	DSN          string
	Host         string
	Database     string
	User         string
	Password     string
	Port         int
	MaxOpenConns int
	MaxIdleConns int // 0: cada petición abre y cierra su propia conexión
	QueryTimeout int // segundos
}

// ConnectionString devuelve la cadena de conexión ODBC. Contiene la contraseña: no registrar.
func (c ODBCConfig) ConnectionString() string {
	parts := []string{
		"DRIVER=" + quoteValue(c.Driver),
		"DSN=" + quoteValue(c.DSN),
		"HOST=" + quoteValue(c.Host),
		"DB=" + quoteValue(c.Database),
		"UID=" + quoteValue(c.User),
		"PWD=" + quoteValue(c.Password),
		"PORT=" + strconv.Itoa(c.Port),
	}
	return strings.Join(parts, ";")
}

// quoteValue protege valores con ';' o llaves usando la sintaxis {valor} de ODBC.
func quoteValue(v string) string {
	if !strings.ContainsAny(v, ";{}= ") {
		return v
	}
	return "{" + strings.ReplaceAll(v, "}", "}}") + "}"
}

// MarshalZerologObject permite registrar la configuración sin exponer la contraseña.
func (c ODBCConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Str("driver", c.Driver).
		Str("dsn", c.DSN).
		Str("host", c.Host).
		Str("db", c.Database).
		Str("uid", c.User).
		Int("port", c.Port).
		Int("max_open_conns", c.MaxOpenConns).
		Int("max_idle_conns", c.MaxIdleConns)
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

// JWTConfig autenticación de servicio. Secret vacío desactiva la autenticación.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos, para tokens emitidos con cmd/token
	Issuer     string
}

// Enabled indica si /api exige Bearer Token.
func (c JWTConfig) Enabled() bool { return c.Secret != "" }

// RateLimitConfig límite de peticiones por cliente. RPS 0 lo desactiva.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// requiredODBC variables sin valor por defecto. La contraseña se resuelve aparte
// (ver resolvePassword).
var requiredODBC = []string{"DRIVER", "DSN", "HOST", "DB", "UID", "PORT"}

// Claves de la contraseña. PWD2 es la del despliegue; PWD sólo se acepta como
// respaldo porque los shells exportan PWD con el directorio actual.
const (
	passwordKey       = "PWD2"
	legacyPasswordKey = "PWD"
)

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Falla con ErrInvalid si falta alguna variable
// ODBC o si alguna no se puede convertir a su tipo.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	// Contraseña vacía es válida para algunos DSN; la ausencia se distingue en FromViper.
	v.AllowEmptyEnv(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	var missing []string
	for _, key := range requiredODBC {
		if !v.IsSet(key) || strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	password, ok := resolvePassword(v)
	if !ok {
		missing = append(missing, passwordKey)
	}
	if len(missing) > 0 {
		return nil, invalid(strings.Join(missing, ", "), "variables de entorno requeridas ausentes")
	}

	port, err := getInt(v, "PORT", 0)
	if err != nil {
		return nil, err
	}
	if port < 1 || port > 65535 {
		return nil, invalid("PORT", "fuera de rango: %d", port)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "albaranes-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		ODBC: ODBCConfig{
			Driver:   v.GetString("DRIVER"),
			DSN:      v.GetString("DSN"),
			Host:     v.GetString("HOST"),
			Database: v.GetString("DB"),
			User:     v.GetString("UID"),
			Password: password,
			Port:     port,
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "albaranes-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
		},
	}

	ints := map[string]*int{
		"HTTP_PORT":                  &cfg.HTTP.Port,
		"ODBC_MAX_OPEN_CONNS":        &cfg.ODBC.MaxOpenConns,
		"ODBC_MAX_IDLE_CONNS":        &cfg.ODBC.MaxIdleConns,
		"ODBC_QUERY_TIMEOUT_SECONDS": &cfg.ODBC.QueryTimeout,
		"JWT_EXPIRATION_MINUTES":     &cfg.JWT.Expiration,
		"RATE_LIMIT_BURST":           &cfg.RateLimit.Burst,
	}

	for key, dst := range ints {
		n, err := getInt(v, key, intDefaults[key])
		if err != nil {
			return nil, err
		}
		*dst = n
	}

	rps, err := getFloat(v, "RATE_LIMIT_RPS", 0)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.RPS = rps

	return cfg, nil
}

var intDefaults = map[string]int{
	"HTTP_PORT":                  8080,
	"ODBC_MAX_OPEN_CONNS":        10,
	"ODBC_MAX_IDLE_CONNS":        0,
	"ODBC_QUERY_TIMEOUT_SECONDS": 30,
	"JWT_EXPIRATION_MINUTES":     60 * 24 * 30,
	"RATE_LIMIT_BURST":           20,
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) (int, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	switch val := v.Get(key).(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	default:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return 0, invalid(key, "no es un entero: %q", v.GetString(key))
		}
		return n, nil
	}
}

func getFloat(v *viper.Viper, key string, def float64) (float64, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
	if err != nil {
		return 0, invalid(key, "no es numérico: %q", v.GetString(key))
	}
	return f, nil
}

// resolvePassword devuelve PWD2 si está definida (puede ser vacía). Si no, acepta PWD
// salvo que coincida con el directorio de trabajo: en ese caso es la variable del shell.
func resolvePassword(v *viper.Viper) (string, bool) {
	if v.IsSet(passwordKey) {
		return v.GetString(passwordKey), true
	}
	if !v.IsSet(legacyPasswordKey) {
		return "", false
	}
	pwd := v.GetString(legacyPasswordKey)
	if isWorkingDir(pwd) {
		return "", false
	}
	return pwd, true
}

func isWorkingDir(p string) bool {
	if p == "" || !filepath.IsAbs(p) {
		return false
	}
	wd, err := os.Getwd()
	if err != nil {
		return false
	}
	if filepath.Clean(p) == filepath.Clean(wd) {
		return true
	}
	rp, err1 := filepath.EvalSymlinks(p)
	rwd, err2 := filepath.EvalSymlinks(wd)
	return err1 == nil && err2 == nil && rp == rwd
}
