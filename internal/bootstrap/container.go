package bootstrap

import (
	"context"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/securedoc-app/securedoc/internal/config"
	"github.com/securedoc-app/securedoc/internal/identity"
	"github.com/securedoc-app/securedoc/internal/infra/blob"
	"github.com/securedoc-app/securedoc/internal/infra/dynamo"
	"github.com/securedoc-app/securedoc/internal/infra/logger"
	"github.com/securedoc-app/securedoc/internal/modules/handler"
	"github.com/securedoc-app/securedoc/internal/modules/repo"
	"github.com/securedoc-app/securedoc/internal/modules/service"
	"github.com/securedoc-app/securedoc/internal/modules/store"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DynamoDB
	do.Provide(inj, func(i *do.Injector) (*awsdynamodb.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return dynamo.New(context.Background(), cfg)
	})
	do.Provide(inj, func(i *do.Injector) (store.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[*awsdynamodb.Client](i)
		return store.NewDynamo(client, cfg.Dynamo.Table), nil
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})

	// Identity
	do.Provide(inj, func(i *do.Injector) (identity.Verifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return identity.NewCognitoVerifier(context.Background(), cfg)
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[store.Store](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.FileRepo, error) {
		return repo.NewFileRepo(do.MustInvoke[store.Store](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.FileService, error) {
		return service.NewFileService(
			do.MustInvoke[repo.FileRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[service.FileService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AccountService, error) {
		return service.NewAccountService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.FileRepo](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FileHandler, error) {
		return handler.NewFileHandler(do.MustInvoke[service.FileService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AccountHandler, error) {
		return handler.NewAccountHandler(do.MustInvoke[service.AccountService](i)), nil
	})

	return inj
}
