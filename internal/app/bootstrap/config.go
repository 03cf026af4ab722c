// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for StudySync.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_key, etc.
//   - Environment variables: STUDYSYNC_MONGO_URI, STUDYSYNC_SESSION_KEY, etc.
//   - Command-line flags: --mongo_uri, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "study_sync", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Session tokens
	{Name: "session_key", Default: "", Desc: "Session token signing key (required in production)"},
	{Name: "session_ttl", Default: "120m", Desc: "Session token lifetime (e.g., 120m, 2h)"},

	// Account rules
	{Name: "password_min_length", Default: 6, Desc: "Minimum password length for registration"},
	{Name: "join_code_length", Default: 6, Desc: "Length of generated group join codes"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@studysync.app", Desc: "From email address"},
	{Name: "mail_from_name", Default: "StudySync", Desc: "From display name"},

	// Base URL for email links (password resets)
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links"},

	// Password reset settings
	{Name: "reset_token_expiry", Default: "1h", Desc: "Password reset token expiry (e.g., 1h, 30m)"},

	// Login history settings
	{Name: "login_record_retention", Default: "2160h", Desc: "How long login records are kept (default 90 days)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STUDYSYNC", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey: appValues.String("session_key"),
		SessionTTL: appValues.Duration("session_ttl", 120*time.Minute),

		PasswordMinLength: appValues.Int("password_min_length"),
		JoinCodeLength:    appValues.Int("join_code_length"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL: appValues.String("base_url"),

		ResetTokenExpiry: appValues.Duration("reset_token_expiry", time.Hour),

		LoginRecordRetention: appValues.Duration("login_record_retention", 90*24*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// StudySync validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and refuses to start in
// production without a signing key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.SessionKey == "" {
		return fmt.Errorf("session_key must be set in production")
	}
	if appCfg.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if appCfg.PasswordMinLength < 1 {
		return fmt.Errorf("password_min_length must be at least 1")
	}

	return nil
}
