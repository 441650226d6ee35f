package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	SignalDB DBConfig       `mapstructure:"signal_db"`
	UserDB   DBConfig       `mapstructure:"user_db"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Relay    RelayConfig    `mapstructure:"relay"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	PayPal   PayPalConfig   `mapstructure:"paypal"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr       string   `mapstructure:"http_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type TelegramConfig struct {
	BotToken  string        `mapstructure:"bot_token"`
	ChannelID string        `mapstructure:"channel_id"`
	APIBase   string        `mapstructure:"api_base"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type RelayConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	StartupNotice bool          `mapstructure:"startup_notice"`
}

type StripeConfig struct {
	SecretKey       string `mapstructure:"secret_key"`
	WebhookSecret   string `mapstructure:"webhook_secret"`
	MonthlyPriceID  string `mapstructure:"monthly_price_id"`
	LifetimePriceID string `mapstructure:"lifetime_price_id"`
	TrialFeeCents   int64  `mapstructure:"trial_fee_cents"`
	TrialDays       int64  `mapstructure:"trial_days"`
	SuccessURL      string `mapstructure:"success_url"`
	CancelURL       string `mapstructure:"cancel_url"`
}

type PayPalConfig struct {
	Mode      string `mapstructure:"mode"`
	WebhookID string `mapstructure:"webhook_id"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"https://tradingvault.base44.app", "http://localhost:3000"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("signal_db.max_open_conns", 10)
	v.SetDefault("signal_db.max_idle_conns", 2)
	v.SetDefault("signal_db.conn_max_lifetime", "30m")
	v.SetDefault("signal_db.conn_max_idle_time", "5m")
	v.SetDefault("signal_db.timezone", "UTC")
	v.SetDefault("user_db.max_open_conns", 10)
	v.SetDefault("user_db.max_idle_conns", 2)
	v.SetDefault("user_db.conn_max_lifetime", "30m")
	v.SetDefault("user_db.conn_max_idle_time", "5m")
	v.SetDefault("user_db.timezone", "UTC")
	v.SetDefault("telegram.api_base", "https://api.telegram.org")
	v.SetDefault("telegram.timeout", "10s")
	v.SetDefault("relay.enabled", true)
	v.SetDefault("relay.poll_interval", "60s")
	v.SetDefault("relay.startup_notice", true)
	v.SetDefault("stripe.trial_fee_cents", 1290)
	v.SetDefault("stripe.trial_days", 7)
	v.SetDefault("stripe.success_url", "https://tradingvault.base44.app/?status=success")
	v.SetDefault("stripe.cancel_url", "https://tradingvault.base44.app/?status=cancel")
	v.SetDefault("paypal.mode", "sandbox")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
