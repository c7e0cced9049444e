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

const (
	defaultPath          = "."
	defaultPollInterval  = 2 * time.Second
	defaultQRCodeSize    = 256
	defaultQRCodeEC      = "M"
	defaultReauthTimeout = 10 * time.Second
)

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

	// Firebase configuration for the Realtime Database and Auth collaborators
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Store selects the document store provider
	Store *StoreConfig `json:"store" yaml:"store"`

	// Auth selects the token verification provider
	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// PubSub configuration for order/chat event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Blob configuration for product/profile image uploads
	Blob *BlobConfig `json:"blob" yaml:"blob"`

	// QRCode configuration for order receipt QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Worker configuration for the Pub/Sub push worker
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// FirebaseConfig defines the Firebase project backing the document store and auth
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	DatabaseURL     string `json:"databaseUrl" yaml:"databaseUrl"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`

	// WebAPIKey is the client API key used by the Identity Toolkit
	// signInWithPassword endpoint for re-authentication.
	WebAPIKey string `json:"webApiKey" yaml:"webApiKey"`
}

// StoreConfig defines document store provider selection
type StoreConfig struct {
	// Provider type: "firebase" for the Realtime Database or "memory" for development
	Provider string `json:"provider" yaml:"provider"`

	// PollInterval controls how often the firebase provider polls watched paths
	PollInterval time.Duration `json:"pollInterval" yaml:"pollInterval"`
}

// AuthConfig defines token verification provider selection
type AuthConfig struct {
	// Provider type: "firebase" for ID token verification or "local" for development
	Provider string `json:"provider" yaml:"provider"`

	// LocalSecret is the HS256 secret used by the local provider
	LocalSecret string `json:"localSecret" yaml:"localSecret"`

	// LocalPasswordHash is an optional bcrypt hash the local provider checks
	// re-authentication passwords against
	LocalPasswordHash string `json:"localPasswordHash" yaml:"localPasswordHash"`

	// ReauthTimeout bounds the Identity Toolkit re-authentication call
	ReauthTimeout time.Duration `json:"reauthTimeout" yaml:"reauthTimeout"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// BlobConfig defines blob storage for uploaded images
type BlobConfig struct {
	// BucketURL in gocloud.dev form, e.g. "gs://lapak-images" or "file:///var/lapak/images"
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// PublicBaseURL is prepended to object keys to build the stored image URL
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// WorkerConfig defines configuration for the Pub/Sub push worker
type WorkerConfig struct {
	// VerifyPushAuth enables Google ID token verification on the push endpoint
	VerifyPushAuth bool `json:"verifyPushAuth" yaml:"verifyPushAuth"`
}

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
			// Example: FIREBASE_DATABASEURL -> firebase.databaseUrl (not firebase.databaseurl)
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
	cfg.applyDefaults()

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Store == nil {
		cfg.Store = &StoreConfig{Provider: "memory"}
	}
	if cfg.Store.PollInterval <= 0 {
		cfg.Store.PollInterval = defaultPollInterval
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{Provider: "local"}
	}
	if cfg.Auth.ReauthTimeout <= 0 {
		cfg.Auth.ReauthTimeout = defaultReauthTimeout
	}
	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{Size: defaultQRCodeSize, ErrorCorrectionLevel: defaultQRCodeEC}
	}
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
