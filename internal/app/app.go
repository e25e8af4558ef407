package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"taskManager/internal/auth"
	"taskManager/internal/config"
	"taskManager/internal/handlers"
	"taskManager/internal/logger"
	"taskManager/internal/migrations"
	"taskManager/internal/repository/inmemory"
	"taskManager/internal/repository/postgres"
	"taskManager/internal/seed"
	"taskManager/internal/service"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config    *config.Config
	server    *http.Server
	handler   http.Handler
	shutdowns []func(context.Context) error // выполняются в обратном порядке

	shutdownOnce sync.Once
	shutdownErr  error
}

type repositories struct {
	users    service.UserRepository
	statuses service.StatusRepository
	labels   service.LabelRepository
	tasks    service.TaskRepository
	health   service.HealthChecker
}

func New(cfg *config.Config) *App {
	return &App{config: cfg}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func(context.Context) error {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
		return nil
	})

	repos, err := a.initRepositories(ctx)
	if err != nil {
		return err
	}

	hasher := auth.NewBcryptHasher(a.config.Auth.BcryptCost)
	tokens := auth.NewTokenManager(a.config.Auth.Secret, a.config.Auth.TokenTTL)

	users := service.NewUserService(repos.users, hasher)
	statuses := service.NewStatusService(repos.statuses)
	labels := service.NewLabelService(repos.labels)
	tasks := service.NewTaskService(repos.tasks, service.NewResolver(repos.statuses, repos.users, repos.labels))

	if a.config.Seed.Enabled {
		data, err := seed.Defaults()
		if err != nil {
			return err
		}
		if err := seed.Run(ctx, data, users, statuses, labels); err != nil {
			return fmt.Errorf("начальные данные: %w", err)
		}
	}

	a.handler = newRouter(routerDeps{
		users:       handlers.NewUserHandler(users),
		statuses:    handlers.NewStatusHandler(statuses),
		labels:      handlers.NewLabelHandler(labels),
		tasks:       handlers.NewTaskHandler(tasks),
		auth:        handlers.NewAuthHandler(users, tokens),
		health:      handlers.NewHealthHandler(repos.health),
		tokens:      tokens,
		rateLimit:   a.config.Server.RateLimit,
		corsOrigins: a.config.Server.CORSOrigins,
	})

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.handler,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	logger.Info("Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.String("addr", a.server.Addr))
	return nil
}

func (a *App) initRepositories(ctx context.Context) (*repositories, error) {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		if a.config.Database.Migrate {
			if err := migrations.Up(a.config.Database.URL); err != nil {
				return nil, err
			}
		}

		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return nil, fmt.Errorf("подключение к PostgreSQL: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func(context.Context) error {
			storage.Close()
			return nil
		})

		return &repositories{
			users:    storage.Users,
			statuses: storage.Statuses,
			labels:   storage.Labels,
			tasks:    storage.Tasks,
			health:   storage,
		}, nil

	case config.RepositoryInMemory:
		storage := inmemory.New()
		a.shutdowns = append(a.shutdowns, func(context.Context) error {
			storage.Close()
			return nil
		})

		return &repositories{
			users:    storage.Users,
			statuses: storage.Statuses,
			labels:   storage.Labels,
			tasks:    storage.Tasks,
			health:   storage,
		}, nil

	default:
		return nil, fmt.Errorf("неизвестный тип хранилища: %q", a.config.Repository.Type)
	}
}

// Handler - корневой http.Handler со всеми маршрутами, доступен после Init
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер и освобождает ресурсы
func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		return errors.New("приложение не инициализировано")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Остановка сервера...")
		return a.Shutdown()
	})

	return g.Wait()
}

// Shutdown можно вызывать повторно, ресурсы освобождаются один раз
func (a *App) Shutdown() error {
	a.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		var err error
		if a.server != nil {
			err = multierr.Append(err, a.server.Shutdown(ctx))
		}
		for i := len(a.shutdowns) - 1; i >= 0; i-- {
			err = multierr.Append(err, a.shutdowns[i](ctx))
		}
		a.shutdownErr = err
	})
	return a.shutdownErr
}
