// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authfeature "github.com/studysync/studysync/internal/app/features/auth"
	groupsfeature "github.com/studysync/studysync/internal/app/features/groups"
	healthfeature "github.com/studysync/studysync/internal/app/features/health"
	"github.com/studysync/studysync/internal/app/system/auth"
	"github.com/studysync/studysync/internal/app/system/mailer"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. StudySync builds the session
// manager, applies the token-loading middleware globally, and mounts
// the three feature routers: health, auth, and groups.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	sessionMgr, err := auth.NewManager(appCfg.SessionKey, appCfg.SessionTTL, coreCfg.Env == "prod", logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
		BaseURL:  appCfg.BaseURL,
	}, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the bearer token's user into context
	// if present and valid. Handlers read it via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSession)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication: register, login, check-auth, forgot-password
	authHandler := authfeature.NewHandler(deps.MongoDatabase, sessionMgr, mail,
		appCfg.PasswordMinLength, appCfg.ResetTokenExpiry, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Group workspaces: membership, messages, resources, tasks
	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, appCfg.JoinCodeLength, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	return r, nil
}
