package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Mailer *MailerConfig `json:"mailer" yaml:"mailer"`

	Catalog *CatalogConfig `json:"catalog" yaml:"catalog"`
}

// PostgresConfig holds connection settings for the primary database.
type PostgresConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     string `json:"port" yaml:"port"`
	UserName string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	DBName   string `json:"dbName" yaml:"dbName"`
	SSLMode  string `json:"sslMode" yaml:"sslMode"`

	MaxOpenConns int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	MaxLifetime  time.Duration `json:"maxLifetime" yaml:"maxLifetime"`
}

// DSN renders the config as a libpq-style connection string.
func (c *PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	parts := []string{
		"host=" + c.Host,
		"port=" + c.Port,
		"user=" + c.UserName,
		"password=" + c.Password,
		"dbname=" + c.DBName,
		"sslmode=" + sslMode,
	}

	return strings.Join(parts, " ")
}

// AuthConfig carries the security-core knobs: the OTP pepper, TTLs and the
// credential-derivation cost. All of it is injected at construction so tests
// can pin fixed values (no ambient process state).
type AuthConfig struct {
	OtpPepper        string        `json:"otpPepper" yaml:"otpPepper"`
	OtpTTL           time.Duration `json:"otpTtl" yaml:"otpTtl"`
	OtpMaxAttempts   int           `json:"otpMaxAttempts" yaml:"otpMaxAttempts"`
	SessionTTLDays   int           `json:"sessionTtlDays" yaml:"sessionTtlDays"`
	Pbkdf2Iterations int           `json:"pbkdf2Iterations" yaml:"pbkdf2Iterations"`

	// ExposeOtpInResponse echoes freshly issued codes in API responses.
	// Development only; never enable in production.
	ExposeOtpInResponse bool `json:"exposeOtpInResponse" yaml:"exposeOtpInResponse"`
}

// MailerConfig holds Resend API settings for transactional email.
type MailerConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string `json:"apiKey" yaml:"apiKey"`
	From    string `json:"from" yaml:"from"`
	ReplyTo string `json:"replyTo" yaml:"replyTo"`
}

// CatalogConfig holds the media bucket settings for the song catalog.
type CatalogConfig struct {
	// BucketURL is a gocloud.dev blob URL, e.g. "file:///var/frishta/public"
	// locally or "gs://frishta-media" in production.
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// PublicBaseURL prefixes the /media paths embedded in API responses and
	// welcome emails.
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`

	// MediaDir is the local directory echo serves under /media. It should
	// point at the same tree as BucketURL when the file driver is used.
	MediaDir string `json:"mediaDir" yaml:"mediaDir"`

	// ThumbnailFallbackIndex pairs songs with thumbnails round-robin when no
	// same-named thumbnail exists.
	ThumbnailFallbackIndex bool `json:"thumbnailFallbackIndex" yaml:"thumbnailFallbackIndex"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// Defaults applied in New when the YAML leaves them unset.
const (
	defaultOtpTTL           = 10 * time.Minute
	defaultOtpMaxAttempts   = 5
	defaultSessionTTLDays   = 7
	defaultPbkdf2Iterations = 120000
)

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: AUTH_OTPPEPPER -> auth.otpPepper (not auth.otppepper)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.OtpTTL <= 0 {
		cfg.Auth.OtpTTL = defaultOtpTTL
	}
	if cfg.Auth.OtpMaxAttempts <= 0 {
		cfg.Auth.OtpMaxAttempts = defaultOtpMaxAttempts
	}
	if cfg.Auth.SessionTTLDays <= 0 {
		cfg.Auth.SessionTTLDays = defaultSessionTTLDays
	}
	if cfg.Auth.Pbkdf2Iterations <= 0 {
		cfg.Auth.Pbkdf2Iterations = defaultPbkdf2Iterations
	}
	if cfg.Auth.OtpPepper == "" {
		return nil, errors.New("auth.otpPepper must be provided")
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
