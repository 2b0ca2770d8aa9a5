package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "travelagency/internal/adapters/out/postgres"
	"travelagency/internal/adapters/out/postgres/outboxrepo"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/core/ports"
	"travelagency/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work and its repositories
// against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users, orders, order_events").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_StoresOrderAndEvents() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(o.DomainEvents())
	suite.Equal(int64(1), o.Version())

	pending, err := outboxrepo.NewGormOutboxRepository(suite.db).FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(string(order.EventCreated), pending[0].Type)
	suite.True(pending[0].AggregateID.IsEqual(o.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndEvents() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var count int64
	suite.Require().NoError(suite.db.Table("order_events").Count(&count).Error)
	suite.Zero(count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	suite.Require().ErrorIs(suite.factory.Create().Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_UpdateIsCompareAndSwap() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, o)
	})

	repo := suite.factory.Create().OrderRepository()
	first, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	notes := "first writer"
	suite.Require().NoError(first.UpdateByCustomer(order.CustomerChanges{Notes: &notes}))
	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Update(ctx, first)
	})
	suite.Equal(int64(2), first.Version())

	notes = "second writer"
	suite.Require().NoError(second.UpdateByCustomer(order.CustomerChanges{Notes: &notes}))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err = uow.OrderRepository().Update(ctx, second)
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	stored, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("first writer", stored.Notes())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_DuplicateBookingIsRejected() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, suite.newOrder(customerID))
	})

	repo := suite.factory.Create().OrderRepository()
	exists, err := repo.ExistsForCustomerFlight(ctx, customerID, suite.flight())
	suite.Require().NoError(err)
	suite.True(exists)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err = uow.OrderRepository().Add(ctx, suite.newOrder(customerID))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_ListByParticipantNewestFirst() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	agentID := kernel.NewUUID()

	older := suite.newOrderOn(customerID, "SFO", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := suite.newOrderOn(customerID, "LAX", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assigned := suite.newOrderOn(kernel.NewUUID(), "SEA", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	agent, err := order.NewParty(agentID, "Bob Agent", "bob@example.com", "0507654321")
	suite.Require().NoError(err)
	suite.Require().NoError(assigned.AssignAgent(&agent, true))
	foreign := suite.newOrderOn(kernel.NewUUID(), "BOS", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	suite.commit(func(uow ports.UnitOfWork) error {
		repo := uow.OrderRepository()
		for _, o := range []*order.Order{older, newer, assigned, foreign} {
			if err := repo.Add(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})

	repo := suite.factory.Create().OrderRepository()

	mine, err := repo.ListByParticipant(ctx, customerID)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 2)
	suite.True(mine[0].ID().IsEqual(newer.ID()))
	suite.True(mine[1].ID().IsEqual(older.ID()))

	agentOrders, err := repo.ListByParticipant(ctx, agentID)
	suite.Require().NoError(err)
	suite.Require().Len(agentOrders, 1)
	suite.Equal(order.InProgress, agentOrders[0].Status())

	all, err := repo.ListAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 4)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_DeleteRecordsEvent() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, o)
	})

	o.MarkDeleted()
	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Delete(ctx, o)
	})

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	pending, err := outboxrepo.NewGormOutboxRepository(suite.db).FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal(string(order.EventDeleted), pending[1].Type)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUserRepository_UniqueContacts() {
	ctx := context.Background()
	ada := suite.newUser("ada@example.com", "0501234567")
	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.UserRepository().Add(ctx, ada)
	})

	repo := suite.factory.Create().UserRepository()
	byEmail, err := repo.GetByEmail(ctx, " ADA@example.com ")
	suite.Require().NoError(err)
	suite.True(byEmail.ID().IsEqual(ada.ID()))

	byPhone, err := repo.GetByPhone(ctx, "0501234567")
	suite.Require().NoError(err)
	suite.True(byPhone.ID().IsEqual(ada.ID()))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err = uow.UserRepository().Add(ctx, suite.newUser("ada@example.com", "0509999999"))
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUserRepository_UpdateAndDelete() {
	ctx := context.Background()
	u := suite.newUser("ada@example.com", "0501234567")
	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.UserRepository().Add(ctx, u)
	})

	yes := true
	u.SetRoles(&yes, nil)
	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.UserRepository().Update(ctx, u)
	})

	repo := suite.factory.Create().UserRepository()
	stored, err := repo.Get(ctx, u.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsAgent())
	suite.Equal(int64(2), stored.Version())
	suite.Require().NotNil(stored.Passport())
	suite.Equal("US", stored.Passport().Country.String())

	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.UserRepository().Delete(ctx, u.ID())
	})

	_, err = repo.Get(ctx, u.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutboxRepository_MarkPublished() {
	ctx := context.Background()
	suite.commit(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, suite.newOrder(kernel.NewUUID()))
	})

	outbox := outboxrepo.NewGormOutboxRepository(suite.db)
	pending, err := outbox.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)

	suite.Require().NoError(outbox.MarkPublished(ctx, []kernel.UUID{pending[0].ID}, time.Now()))

	pending, err = outbox.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *UnitOfWorkIntegrationTestSuite) commit(fn func(uow ports.UnitOfWork) error) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(fn(uow))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) flight() order.Flight {
	f, err := order.NewFlight("SFO", "JFK", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "08:30", "UA100")
	suite.Require().NoError(err)
	return f
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(customerID kernel.UUID) *order.Order {
	return suite.newOrderOn(customerID, "SFO", time.Time{})
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrderOn(customerID kernel.UUID, from string, orderDate time.Time) *order.Order {
	customer, err := order.NewParty(customerID, "Ada Lovelace", "ada@example.com", "0501234567")
	suite.Require().NoError(err)
	flight, err := order.NewFlight(from, "JFK", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "08:30", "UA100")
	suite.Require().NoError(err)
	passportDate := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	passenger, err := order.NewPassenger("Ada", "Lovelace", "P1", "GB", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), order.Female, &passportDate)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), customer, orderDate, flight, nil, []order.Passenger{passenger}, "", 0)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newUser(email, phone string) *user.User {
	name, err := user.NewName("Ada", "", "Lovelace")
	suite.Require().NoError(err)
	country, err := kernel.NewCountryCode("us")
	suite.Require().NoError(err)

	u, err := user.NewUser(kernel.NewUUID(), name, phone, email, "hash", nil, &user.Passport{Number: "X1", Country: &country}, time.Now())
	suite.Require().NoError(err)
	return u
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
