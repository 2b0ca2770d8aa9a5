package http

import (
	"context"
	"net/http"
	"time"

	"travelagency/internal/adapters/in/http/validation"
	"travelagency/internal/core/application/usecases/commands"
	"travelagency/internal/core/application/usecases/queries"
	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	RegisterUserHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterUserCommand) (*user.User, error)
	}
	AuthenticateUserHandler interface {
		Handle(ctx context.Context, cmd commands.AuthenticateUserCommand) (string, error)
	}
	GetUserHandler interface {
		Handle(ctx context.Context, query queries.GetUserQuery) (*user.User, error)
	}
	UpdateUserHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateUserCommand) (*user.User, error)
	}
	SetUserRolesHandler interface {
		Handle(ctx context.Context, cmd commands.SetUserRolesCommand) (*user.User, error)
	}
	DeleteUserHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteUserCommand) (*user.User, error)
	}
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
	}
	ListMyOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListMyOrdersQuery) ([]*order.Order, error)
	}
	ListAllOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListAllOrdersQuery) ([]*order.Order, error)
	}
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	AssignAgentHandler interface {
		Handle(ctx context.Context, cmd commands.AssignAgentCommand) (*order.Order, error)
	}
	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}
	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) (*order.Order, error)
	}
)

// Handlers groups the use cases the API exposes.
type Handlers struct {
	RegisterUser      RegisterUserHandler
	AuthenticateUser  AuthenticateUserHandler
	GetUser           GetUserHandler
	UpdateUser        UpdateUserHandler
	SetUserRoles      SetUserRolesHandler
	DeleteUser        DeleteUserHandler
	CreateOrder       CreateOrderHandler
	GetOrder          GetOrderHandler
	ListMyOrders      ListMyOrdersHandler
	ListAllOrders     ListAllOrdersHandler
	UpdateOrder       UpdateOrderHandler
	AssignAgent       AssignAgentHandler
	ChangeOrderStatus ChangeOrderStatusHandler
	DeleteOrder       DeleteOrderHandler
}

// Server translates HTTP requests into use case calls. Errors are returned to
// echo and rendered by the error handler.
type Server struct {
	handlers  Handlers
	validator *validation.Validator
}

func NewServer(handlers Handlers) *Server {
	return &Server{
		handlers:  handlers,
		validator: validation.New(),
	}
}

func (s *Server) decode(c echo.Context, dst any) error {
	return s.validator.Decode(c.Request().Body, dst)
}

// RegisterUser handles POST /api/users.
func (s *Server) RegisterUser(c echo.Context) error {
	var req RegisterUserRequest
	if err := s.decode(c, &req); err != nil {
		return err
	}
	cmd, err := toRegisterUserCommand(req)
	if err != nil {
		return err
	}

	u, err := s.handlers.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRegisteredUserResponse(u))
}

// Login handles POST /api/users/login. The token is returned as plain text.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := s.decode(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewAuthenticateUserCommand(req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := s.handlers.AuthenticateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, token)
}

// GetUser handles GET /api/users/:id.
func (s *Server) GetUser(c echo.Context) error {
	principal, id, err := principalAndID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetUserQuery(principal, id)
	if err != nil {
		return err
	}

	u, err := s.handlers.GetUser.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateUser handles PUT /api/users/:id.
func (s *Server) UpdateUser(c echo.Context) error {
	principal, id, err := principalAndID(c)
	if err != nil {
		return err
	}
	var req UpdateUserRequest
	if err := s.decode(c, &req); err != nil {
		return err
	}
	input, err := toProfileInput(req)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateUserCommand(principal, id, input)
	if err != nil {
		return err
	}

	u, err := s.handlers.UpdateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// SetUserRoles handles PATCH /api/users/:id.
func (s *Server) SetUserRoles(c echo.Context) error {
	principal, id, err := principalAndID(c)
	if err != nil {
		return err
	}
	var req SetUserRolesRequest
	if err := s.decode(c, &req); err != nil {
		return err
	}
	if req.IsAgent == nil && req.IsAdmin == nil {
		return errs.NewValidationError(`"value" must contain at least one of [isAgent, isAdmin]`)
	}
	cmd, err := commands.NewSetUserRolesCommand(principal, id, req.IsAgent, req.IsAdmin)
	if err != nil {
		return err
	}

	u, err := s.handlers.SetUserRoles.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// DeleteUser handles DELETE /api/users/:id and returns the removed user.
func (s *Server) DeleteUser(c echo.Context) error {
	principal, id, err := principalAndID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteUserCommand(principal, id)
	if err != nil {
		return err
	}

	u, err := s.handlers.DeleteUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// CreateOrder handles POST /api/orders. The caller becomes the customer.
func (s *Server) CreateOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req CreateOrderRequest
	if err := s.decode(c, &req); err != nil {
		return err
	}

	flight, err := toFlight(req.Flight)
	if err != nil {
		return err
	}
	var returnFlight *order.Flight
	if req.ReturnFlight != nil {
		rf, err := toFlight(req.ReturnFlight)
		if err != nil {
			return err
		}
		returnFlight = &rf
	}
	passengers, err := toPassengers(req.Passengers)
	if err != nil {
		return err
	}
	var price float64
	if req.Price != nil {
		price = *req.Price
	}
	var orderDate time.Time
	if req.OrderDate != nil {
		orderDate = req.OrderDate.Time
	}

	cmd, err := commands.NewCreateOrderCommand(principal, flight, returnFlight, passengers, deref(req.Notes), price, orderDate)
	if err != nil {
		return err
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

// ListMyOrders handles GET /api/orders/my-orders.
func (s *Server) ListMyOrders(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListMyOrdersQuery(principal)
	if err != nil {
		return err
	}

	orders, err := s.handlers.ListMyOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

// ListAllOrders handles GET /api/orders.
func (s *Server) ListAllOrders(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListAllOrdersQuery(principal)
	if err != nil {
		return err
	}

	orders, err := s.handlers.ListAllOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	principal, id, err := principalAndID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(principal, id)
	if err != nil {
		return err
	}

	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// UpdateOrder handles PATCH /api/orders/:id. Staff callers get the full field
// set; everyone else is held to the owner payload.
func (s *Server) UpdateOrder(c echo.Context) error {
	principal, id, err := principalAndID(c)
	if err != nil {
		return err
	}

	var changes order.StaffChanges
	if principal.IsStaff() {
		var req StaffUpdateOrderRequest
		if err := s.decode(c, &req); err != nil {
			return err
		}
		if changes, err = toStaffChanges(req); err != nil {
			return err
		}
	} else {
		var req OwnerUpdateOrderRequest
		if err := s.decode(c, &req); err != nil {
			return err
		}
		if changes, err = toOwnerChanges(req); err != nil {
			return err
		}
	}

	cmd, err := commands.NewUpdateOrderCommand(principal, id, changes)
	if err != nil {
		return err
	}
	o, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// AssignAgent handles PATCH /api/orders/agent/:id. A null agent clears the
// assignment.
func (s *Server) AssignAgent(c echo.Context) error {
	principal, id, err := principalAndID(c)
	if err != nil {
		return err
	}
	var req AssignAgentRequest
	if err := s.decode(c, &req); err != nil {
		return err
	}
	if !req.Agent.Present {
		return errs.NewValidationError(`"agent" is required`)
	}
	var agentID *kernel.UUID
	if req.Agent.Value != nil {
		parsed, err := parseID("agent", *req.Agent.Value)
		if err != nil {
			return err
		}
		agentID = &parsed
	}

	cmd, err := commands.NewAssignAgentCommand(principal, id, agentID)
	if err != nil {
		return err
	}
	o, err := s.handlers.AssignAgent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// ChangeOrderStatus handles PATCH /api/orders/status/:id.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	principal, id, err := principalAndID(c)
	if err != nil {
		return err
	}
	var req ChangeOrderStatusRequest
	if err := s.decode(c, &req); err != nil {
		return err
	}
	status, err := parseStatus(req.OrderStatus)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(principal, id, status)
	if err != nil {
		return err
	}
	o, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// DeleteOrder handles DELETE /api/orders/:id and returns the removed order.
func (s *Server) DeleteOrder(c echo.Context) error {
	principal, id, err := principalAndID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOrderCommand(principal, id)
	if err != nil {
		return err
	}

	o, err := s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func principalAndID(c echo.Context) (access.Principal, kernel.UUID, error) {
	principal, err := principalFrom(c)
	if err != nil {
		return access.Principal{}, kernel.UUID{}, err
	}
	id, err := parseID("id", c.Param("id"))
	if err != nil {
		return access.Principal{}, kernel.UUID{}, err
	}
	return principal, id, nil
}
