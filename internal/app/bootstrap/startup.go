// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	loginstore "github.com/studysync/studysync/internal/app/store/logins"
	"github.com/studysync/studysync/internal/app/system/respond"
	"github.com/studysync/studysync/internal/app/system/workers"
	"go.uber.org/zap"
)

// loginCleanup runs for the life of the process; Shutdown stops it.
var loginCleanup *workers.LoginRecordCleanup

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	respond.SetDevMode(coreCfg.Env == "dev")

	loginCleanup = workers.NewLoginRecordCleanup(
		loginstore.New(deps.MongoDatabase), logger,
		time.Hour, appCfg.LoginRecordRetention)
	loginCleanup.Start()

	return nil
}
