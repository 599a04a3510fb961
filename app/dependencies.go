package app

import (
	"context"
	"fmt"

	"github.com/upb/blog-api/auth"
	"github.com/upb/blog-api/config"
	"github.com/upb/blog-api/middleware"
	"github.com/upb/blog-api/repositories"
	"github.com/upb/blog-api/repositories/postgres"
	"github.com/upb/blog-api/services/article"
	"github.com/upb/blog-api/services/category"
	"github.com/upb/blog-api/services/user"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Categories repositories.CategoryRepository
	Users      repositories.UserRepository
	Articles   repositories.ArticleRepository
	TxManager  repositories.TransactionManager

	// Auth
	Issuer    *auth.Issuer
	Validator *auth.Validator
	Policies  *auth.Registry

	// Services
	CategoryService *category.CategoryService
	ArticleService  *article.ArticleService
	UserService     *user.UserService

	// Request pipeline
	AuthMiddleware   *middleware.AuthMiddleware
	PolicyMiddleware *middleware.PolicyMiddleware
}

// NewDependencies opens the database, bootstraps the schema and wires everything else.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := NewDependenciesFromFactory(cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}
	return deps, nil
}

// NewDependenciesFromFactory wires dependencies over an already opened repository factory.
// It performs no I/O.
func NewDependenciesFromFactory(cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	deps.initRepositories()

	if err := deps.initAuth(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*postgres.RepositoryFactory, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository factory: %w", err)
	}

	if err := factory.InitSchema(ctx); err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return factory, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Categories = repos.Categories
	d.Users = repos.Users
	d.Articles = repos.Articles
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

// initAuth builds the token issuer, validator, policy registry and the two pipeline stages
func (d *Dependencies) initAuth(cfg *config.Config) error {
	settings, err := cfg.Auth.Settings()
	if err != nil {
		return err
	}

	observer := auth.NewLogObserver(d.Logger.Named("auth"))

	d.Issuer, err = auth.NewIssuer(settings)
	if err != nil {
		return err
	}
	d.Validator, err = auth.NewValidator(settings, auth.WithObserver(observer))
	if err != nil {
		return err
	}
	d.Policies, err = auth.NewRegistry(auth.DefaultPolicies()...)
	if err != nil {
		return err
	}

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Validator, d.Logger)
	d.PolicyMiddleware = middleware.NewPolicyMiddleware(d.Policies, d.Logger)

	d.Logger.Info("auth initialized",
		zap.String("issuer", settings.Issuer),
		zap.String("audience", settings.Audience),
		zap.Duration("token_lifetime", d.Issuer.Lifetime()),
		zap.Strings("policies", d.Policies.Names()))
	return nil
}

// initServices builds the domain services over the repositories
func (d *Dependencies) initServices() error {
	users, err := user.NewUserService(d.Users, d.Issuer, d.Logger.Named("users"))
	if err != nil {
		return err
	}
	d.UserService = users
	d.CategoryService = category.NewCategoryService(d.Categories, d.Logger.Named("categories"))
	d.ArticleService = article.NewArticleService(d.Articles, d.Categories, d.TxManager, d.Logger.Named("articles"))
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
		d.RepoFactory = nil
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
