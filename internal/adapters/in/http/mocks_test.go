package http_test

import (
	"context"

	"travelagency/internal/core/application/usecases/commands"
	"travelagency/internal/core/application/usecases/queries"
	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"

	"github.com/stretchr/testify/mock"
)

type MockVerifier struct{ mock.Mock }

func (m *MockVerifier) Verify(token string) (access.Principal, error) {
	args := m.Called(token)
	return args.Get(0).(access.Principal), args.Error(1)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Acquire(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockErrorRecorder struct{ mock.Mock }

func (m *MockErrorRecorder) Record(status int, message, url, method string) {
	m.Called(status, message, url, method)
}

type MockRegisterUser struct{ mock.Mock }

func (m *MockRegisterUser) Handle(ctx context.Context, cmd commands.RegisterUserCommand) (*user.User, error) {
	args := m.Called(ctx, cmd)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockAuthenticateUser struct{ mock.Mock }

func (m *MockAuthenticateUser) Handle(ctx context.Context, cmd commands.AuthenticateUserCommand) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}

type MockGetUser struct{ mock.Mock }

func (m *MockGetUser) Handle(ctx context.Context, query queries.GetUserQuery) (*user.User, error) {
	args := m.Called(ctx, query)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockSetUserRoles struct{ mock.Mock }

func (m *MockSetUserRoles) Handle(ctx context.Context, cmd commands.SetUserRolesCommand) (*user.User, error) {
	args := m.Called(ctx, cmd)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockCreateOrder struct{ mock.Mock }

func (m *MockCreateOrder) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockGetOrder struct{ mock.Mock }

func (m *MockGetOrder) Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error) {
	args := m.Called(ctx, query)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockListMyOrders struct{ mock.Mock }

func (m *MockListMyOrders) Handle(ctx context.Context, query queries.ListMyOrdersQuery) ([]*order.Order, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockUpdateOrder struct{ mock.Mock }

func (m *MockUpdateOrder) Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockAssignAgent struct{ mock.Mock }

func (m *MockAssignAgent) Handle(ctx context.Context, cmd commands.AssignAgentCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockChangeOrderStatus struct{ mock.Mock }

func (m *MockChangeOrderStatus) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockDeleteOrder struct{ mock.Mock }

func (m *MockDeleteOrder) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
