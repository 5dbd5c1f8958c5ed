package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password, d.Database, d.SSLMode)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SecretConfig holds the content rules for secrets and replies.
type SecretConfig struct {
	MaxContentChars        int      `mapstructure:"max_content_chars"`
	MaxReplyChars          int      `mapstructure:"max_reply_chars"`
	BlockedWords           []string `mapstructure:"blocked_words"`
	DuplicateWindowMinutes int      `mapstructure:"duplicate_window_minutes"`
	ReplyGraceSeconds      int      `mapstructure:"reply_grace_seconds"`
}

// EchoConfig holds the signed access token settings for reply viewing links.
type EchoConfig struct {
	SigningSecret string `mapstructure:"signing_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
	WebhookURL    string `mapstructure:"webhook_url"`
}

type PushConfig struct {
	VAPIDPublicKey  string `mapstructure:"vapid_public_key"`
	VAPIDPrivateKey string `mapstructure:"vapid_private_key"`
	VAPIDSubject    string `mapstructure:"vapid_subject"`
}

type CardGatewayConfig struct {
	APIBaseURL    string `mapstructure:"api_base_url"`
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type MobileMoneyConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	SiteID   string `mapstructure:"site_id"`
	Currency string `mapstructure:"currency"`
}

type PaymentConfig struct {
	Card        CardGatewayConfig `mapstructure:"card"`
	MobileMoney MobileMoneyConfig `mapstructure:"mobile_money"`
}
