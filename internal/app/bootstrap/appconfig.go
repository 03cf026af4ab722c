// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds StudySync-specific configuration, loaded by waffle's
// config layer alongside the core config.
type AppConfig struct {
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session tokens
	SessionKey string
	SessionTTL time.Duration

	// Account rules
	PasswordMinLength int
	JoinCodeLength    int

	// Email/SMTP
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Base URL for email links
	BaseURL string

	// Password reset
	ResetTokenExpiry time.Duration

	// Login history retention
	LoginRecordRetention time.Duration
}
