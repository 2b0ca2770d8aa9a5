package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	httpadapter "travelagency/internal/adapters/in/http"
	"travelagency/internal/adapters/in/http/openapi"
	"travelagency/internal/adapters/out/auth"
	"travelagency/internal/adapters/out/kafka"
	mongoadapter "travelagency/internal/adapters/out/mongo"
	mongooutbox "travelagency/internal/adapters/out/mongo/outboxrepo"
	"travelagency/internal/adapters/out/postgres"
	pgoutbox "travelagency/internal/adapters/out/postgres/outboxrepo"
	redisadapter "travelagency/internal/adapters/out/redis"
	"travelagency/internal/core/application/usecases/commands"
	"travelagency/internal/core/application/usecases/queries"
	"travelagency/internal/core/ports"
	"travelagency/internal/jobs"
	"travelagency/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// CompositionRoot owns the adapters and builds the use case handlers.
type CompositionRoot struct {
	cfg         Config
	logger      *slog.Logger
	uowFactory  ports.UnitOfWorkFactory
	outbox      ports.OutboxRepository
	publisher   ports.EventPublisher
	hasher      *auth.BcryptHasher
	tokens      *auth.TokenManager
	idempotency httpadapter.IdempotencyStore
	errorSink   *logger.ErrorSink
	registry    *prometheus.Registry
	closers     []func(context.Context) error
}

func NewCompositionRoot(ctx context.Context, cfg Config, log *slog.Logger) (*CompositionRoot, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTExpiration)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		cfg:       cfg,
		logger:    log,
		hasher:    auth.NewBcryptHasher(cfg.BcryptCost),
		tokens:    tokens,
		errorSink: logger.NewErrorSink(cfg.ErrorLogFile),
		registry:  registry,
	}
	c.closers = append(c.closers, func(context.Context) error { return c.errorSink.Close() })

	if err := c.openStorage(ctx); err != nil {
		_ = c.Close(ctx)
		return nil, err
	}
	c.openPublisher()
	c.openIdempotencyStore(ctx)

	return c, nil
}

func (c *CompositionRoot) openStorage(ctx context.Context) error {
	switch c.cfg.StorageDriver {
	case StoragePostgres:
		db, err := postgres.Open(postgres.DSN(
			c.cfg.DBHost, c.cfg.DBPort, c.cfg.DBUser, c.cfg.DBPassword, c.cfg.DBName, c.cfg.DBSslMode,
		))
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		c.closers = append(c.closers, func(context.Context) error { return sqlDB.Close() })
		if err := postgres.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		c.outbox = pgoutbox.NewGormOutboxRepository(db)
	default:
		client, err := mongoadapter.Connect(ctx, c.cfg.MongoURI, c.cfg.MongoUser, c.cfg.MongoPassword)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, client.Disconnect)
		db := client.Database(c.cfg.MongoDB)
		if err := mongoadapter.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		c.uowFactory = mongoadapter.NewMongoUnitOfWorkFactory(client, db)
		c.outbox = mongooutbox.NewMongoOutboxRepository(db, nil)
	}
	c.logger.Info("Storage ready", "driver", c.cfg.StorageDriver)
	return nil
}

func (c *CompositionRoot) openPublisher() {
	if len(c.cfg.KafkaBrokers) == 0 {
		c.logger.Warn("KAFKA_BROKERS not set, order events are logged instead of published")
		c.publisher = kafka.NewLogPublisher(c.logger)
		return
	}
	publisher := kafka.NewPublisher(kafka.Config{
		Brokers: c.cfg.KafkaBrokers,
		Topic:   c.cfg.KafkaOrderChangedTopic,
	})
	c.closers = append(c.closers, func(context.Context) error { return publisher.Close() })
	c.publisher = publisher
}

func (c *CompositionRoot) openIdempotencyStore(ctx context.Context) {
	if c.cfg.RedisAddr == "" {
		return
	}
	client, err := redisadapter.NewClient(ctx, redisadapter.Config{
		Addr:     c.cfg.RedisAddr,
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
	})
	if err != nil {
		c.logger.Warn("Redis unavailable, idempotency keys are not enforced", "error", err)
		return
	}
	c.closers = append(c.closers, func(context.Context) error { return client.Close() })
	c.idempotency = redisadapter.NewIdempotencyStore(client, c.cfg.IdempotencyTTL)
}

// Close releases the adapters in reverse order of opening.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i](ctx))
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// users and orders read outside of a transaction.
func (c *CompositionRoot) users() ports.UserRepository {
	return c.uowFactory.Create().UserRepository()
}

func (c *CompositionRoot) orders() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateAuthenticateUserCommandHandler() commands.AuthenticateUserCommandHandler {
	return commands.NewAuthenticateUserCommandHandler(c.users(), c.hasher, c.tokens)
}

func (c *CompositionRoot) CreateUpdateUserCommandHandler() commands.UpdateUserCommandHandler {
	return commands.NewUpdateUserCommandHandler(c.userUoWFactory(), c.hasher)
}

func (c *CompositionRoot) CreateSetUserRolesCommandHandler() commands.SetUserRolesCommandHandler {
	return commands.NewSetUserRolesCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateDeleteUserCommandHandler() commands.DeleteUserCommandHandler {
	return commands.NewDeleteUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	return commands.NewAssignAgentCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRelayOrderEventsCommandHandler() commands.RelayOrderEventsCommandHandler {
	return commands.NewRelayOrderEventsCommandHandler(c.outbox, c.publisher)
}

func (c *CompositionRoot) CreateGetUserQueryHandler() queries.GetUserQueryHandler {
	return queries.NewGetUserQueryHandler(c.users())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders())
}

func (c *CompositionRoot) CreateListMyOrdersQueryHandler() queries.ListMyOrdersQueryHandler {
	return queries.NewListMyOrdersQueryHandler(c.orders())
}

func (c *CompositionRoot) CreateListAllOrdersQueryHandler() queries.ListAllOrdersQueryHandler {
	return queries.NewListAllOrdersQueryHandler(c.orders())
}

// NewHTTPServer wires the echo router into an http.Server.
func (c *CompositionRoot) NewHTTPServer(ctx context.Context) (*http.Server, error) {
	doc, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		RegisterUser:      c.CreateRegisterUserCommandHandler(),
		AuthenticateUser:  c.CreateAuthenticateUserCommandHandler(),
		GetUser:           c.CreateGetUserQueryHandler(),
		UpdateUser:        c.CreateUpdateUserCommandHandler(),
		SetUserRoles:      c.CreateSetUserRolesCommandHandler(),
		DeleteUser:        c.CreateDeleteUserCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListMyOrders:      c.CreateListMyOrdersQueryHandler(),
		ListAllOrders:     c.CreateListAllOrdersQueryHandler(),
		UpdateOrder:       c.CreateUpdateOrderCommandHandler(),
		AssignAgent:       c.CreateAssignAgentCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
	})

	cfg := httpadapter.RouterConfig{
		Logger:        c.logger,
		Verifier:      c.tokens,
		ErrorRecorder: c.errorSink,
		Registry:      c.registry,
		Namespace:     c.cfg.MetricsNamespace,
		CORSOrigins:   c.cfg.CORSOrigins,
		BodyLimit:     c.cfg.HTTPBodyLimit,
		OpenAPI:       doc,
		Idempotency:   c.idempotency,
	}
	e := httpadapter.NewRouter(cfg, server)

	return &http.Server{
		Addr:         ":" + c.cfg.HTTPPort,
		Handler:      e,
		ReadTimeout:  c.cfg.HTTPReadTimeout,
		WriteTimeout: c.cfg.HTTPWriteTimeout,
	}, nil
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(
		c.CreateRelayOrderEventsCommandHandler(),
		c.cfg.OutboxRelaySchedule,
		c.cfg.OutboxBatchSize,
		c.cfg.MetricsNamespace,
		c.registry,
		c.logger,
	)
	return jobs.NewJobManager(relay)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
