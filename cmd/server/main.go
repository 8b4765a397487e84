package main

//	@title			SecureDoc API
//	@version		1.0
//	@description	Project and file metadata API for SecureDoc.
//	@schemes		http https
//	@BasePath		/app/api

//  Cognito access token
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Cognito access token (e.g., "Bearer eyJra...")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/securedoc-app/securedoc/internal/bootstrap"
	"github.com/securedoc-app/securedoc/internal/config"
	"github.com/securedoc-app/securedoc/internal/identity"
	"github.com/securedoc-app/securedoc/internal/modules/handler"
	"github.com/securedoc-app/securedoc/internal/router"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:         cfg,
		Log:            log,
		Verifier:       do.MustInvoke[identity.Verifier](inj),
		ProjectHandler: do.MustInvoke[*handler.ProjectHandler](inj),
		FileHandler:    do.MustInvoke[*handler.FileHandler](inj),
		AccountHandler: do.MustInvoke[*handler.AccountHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
