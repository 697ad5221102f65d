package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	MQTT    MQTTConfig
	AWS     AWSConfig
	AI      AIConfig
	Sensors SensorsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MQTTConfig transporte de sensores (AWS IoT u otro broker MQTT).
// Con Host vacío el listener no se arranca (modo sin sensores).
// Los certificados llegan como PEM en variables de entorno, igual que en
// el despliegue original; con los tres vacíos se conecta por TCP plano.
type MQTTConfig struct {
	Host        string
	Port        int
	ClientID    string
	TopicPrefix string
	KeyPEM      string
	CertPEM     string
	CAPEM       string
}

// AWSConfig credenciales y bucket para URLs de subida pre-firmadas.
type AWSConfig struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// AIConfig clasificador de intenciones de voz (API de Anthropic).
type AIConfig struct {
	AnthropicAPIKey string
	AnthropicModel  string
}

// SensorsConfig vínculos canal físico -> producto y estado inicial del modo entrada.
type SensorsConfig struct {
	CameraProductID int64
	// WeightChannels mapea id de canal de báscula a id de producto,
	// parseado de "canal:producto,canal:producto".
	WeightChannels map[string]int64
	EntryMode      bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "nexsoft-inventory"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "POSTGRES_HOST", "localhost"),
			Port:        getInt(v, "POSTGRES_PORT", 5432),
			User:        getString(v, "POSTGRES_USER", "postgres"),
			Password:    getString(v, "POSTGRES_PASSWORD", ""),
			DBName:      getString(v, "POSTGRES_DB", "nexsoft_inventory"),
			SSLMode:     getString(v, "POSTGRES_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "nexsoft-inventory"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "PORT", 3000),
			CORSOrigins: getString(v, "CORS_ORIGINS", "http://localhost:5173"),
		},
		MQTT: MQTTConfig{
			Host:        getString(v, "MQTT_HOST", ""),
			Port:        getInt(v, "MQTT_PORT", 8883),
			ClientID:    getString(v, "MQTT_CLIENT_ID", "nexsoft-inventory-backend"),
			TopicPrefix: getString(v, "MQTT_TOPIC_PREFIX", "nexsoft/inventory"),
			KeyPEM:      getString(v, "KEY_MONITORING", ""),
			CertPEM:     getString(v, "CERT_MONITORING", ""),
			CAPEM:       getString(v, "CA_CERT", ""),
		},
		AWS: AWSConfig{
			Region:          getString(v, "AWS_REGION", "us-east-2"),
			Bucket:          getString(v, "AWS_BUCKET_NAME", ""),
			AccessKeyID:     getString(v, "AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString(v, "AWS_SECRET_ACCESS_KEY", ""),
		},
		AI: AIConfig{
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
		},
		Sensors: SensorsConfig{
			CameraProductID: int64(getInt(v, "CAMERA_PRODUCT_ID", 0)),
			WeightChannels:  parseChannelBindings(getString(v, "WEIGHT_CHANNELS", "")),
			EntryMode:       getBool(v, "RFID_ENTRY_MODE", false),
		},
	}

	return cfg, nil
}

// parseChannelBindings parsea "bascula1:12,bascula2:17" a un mapa canal -> producto.
// Los pares malformados se descartan.
func parseChannelBindings(s string) map[string]int64 {
	out := make(map[string]int64)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = id
	}
	return out
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
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
