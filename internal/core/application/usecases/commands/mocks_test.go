package commands_test

import (
	"context"
	"testing"
	"time"

	"travelagency/internal/core/application/usecases/commands"
	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) ExistsForCustomerFlight(ctx context.Context, customerID kernel.UUID, f order.Flight) (bool, error) {
	args := m.Called(ctx, customerID, f)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListByParticipant(ctx context.Context, userID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, plain string) error {
	args := m.Called(hash, plain)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(u *user.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

// fixtures

func principal(t *testing.T, isAgent, isAdmin bool) access.Principal {
	t.Helper()
	p, err := access.NewPrincipal(kernel.NewUUID(), isAgent, isAdmin)
	require.NoError(t, err)
	return p
}

func principalFor(t *testing.T, u *user.User) access.Principal {
	t.Helper()
	p, err := access.NewPrincipal(u.ID(), u.IsAgent(), u.IsAdmin())
	require.NoError(t, err)
	return p
}

func storedUser(t *testing.T, email, phone string, isAgent bool) *user.User {
	t.Helper()
	name, err := user.NewName("Ada", "", "Lovelace")
	require.NoError(t, err)
	u, err := user.RestoreUser(kernel.NewUUID(), name, phone, email, "stored-hash", nil, nil, isAgent, false, time.Now(), 1)
	require.NoError(t, err)
	return u
}

func sampleFlight(t *testing.T) order.Flight {
	t.Helper()
	f, err := order.NewFlight("SFO", "JFK", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "", "")
	require.NoError(t, err)
	return f
}

func samplePassengers(t *testing.T) []order.Passenger {
	t.Helper()
	p, err := order.NewPassenger("Ada", "Lovelace", "P1", "GB", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), order.Female, nil)
	require.NoError(t, err)
	return []order.Passenger{p}
}

func storedOrder(t *testing.T, owner kernel.UUID, agent *kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	customer, err := order.NewParty(owner, "Ada Lovelace", "ada@example.com", "0501234567")
	require.NoError(t, err)

	var agentParty *order.Party
	if agent != nil {
		a, partyErr := order.NewParty(*agent, "Bob Agent", "bob@example.com", "0507654321")
		require.NoError(t, partyErr)
		agentParty = &a
	}

	o, err := order.RestoreOrder(kernel.NewUUID(), customer, agentParty, time.Now(), sampleFlight(t), nil, status, 0, samplePassengers(t), "", 1)
	require.NoError(t, err)
	return o
}
