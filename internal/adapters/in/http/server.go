// Package http exposes the dispatch engine over a REST API.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/commands"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/queries"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	RegisterClient         commands.RegisterClientCommandHandler
	RegisterDriver         commands.RegisterDriverCommandHandler
	CreateOrder            commands.CreateOrderCommandHandler
	BroadcastOrder         commands.BroadcastOrderCommandHandler
	AssignDriver           commands.AssignDriverCommandHandler
	CompleteOrder          commands.CompleteOrderCommandHandler
	CancelOrder            commands.CancelOrderCommandHandler
	UpdateDriverProfile    commands.UpdateDriverProfileCommandHandler
	SetDriverAccountStatus commands.SetDriverAccountStatusCommandHandler

	GetOrders             queries.GetOrdersQueryHandler
	GetOrder              queries.GetOrderQueryHandler
	GetActiveOrder        queries.GetActiveOrderQueryHandler
	GetClientOrderHistory queries.GetClientOrderHistoryQueryHandler
	GetDrivers            queries.GetDriversQueryHandler
	GetClients            queries.GetClientsQueryHandler
	GetAuditLog           queries.GetAuditLogQueryHandler
	GetStats              queries.GetStatsQueryHandler
}

// Server translates HTTP requests into use case calls.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server dispatching to the given handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// RegisterRoutes binds every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/clients", s.RegisterClient)
	e.GET("/clients", s.GetClients)
	e.GET("/clients/:id/orders/active", s.GetActiveOrder)
	e.GET("/clients/:id/orders", s.GetClientOrderHistory)

	e.POST("/drivers", s.RegisterDriver)
	e.GET("/drivers", s.GetDrivers)
	e.PATCH("/drivers/:id", s.UpdateDriverProfile)
	e.PATCH("/drivers/:id/status", s.SetDriverAccountStatus)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.GetOrders)
	e.GET("/orders/:id", s.GetOrder)
	e.POST("/orders/:id/assign", s.AssignDriver)
	e.POST("/orders/:id/complete", s.CompleteOrder)
	e.POST("/orders/:id/cancel", s.CancelOrder)

	e.GET("/audit-log", s.GetAuditLog)
	e.GET("/stats", s.GetStats)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RegisterClient handles POST /clients - registers a client or refreshes
// the stored contact for an already known Telegram identity.
func (s *Server) RegisterClient(ctx echo.Context) error {
	var body NewClient
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterClientCommand(
		kernel.NewUUID(), body.TelegramID,
		body.Username, body.FirstName, body.LastName, body.Phone,
	)
	if err != nil {
		return jsonError(ctx, err)
	}

	registered, err := s.handlers.RegisterClient.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, clientAggregateJSON(registered))
}

// GetClients handles GET /clients - lists every registered client.
func (s *Server) GetClients(ctx echo.Context) error {
	clients, err := s.handlers.GetClients.Handle(ctx.Request().Context(), queries.NewGetClientsQuery())
	if err != nil {
		return jsonError(ctx, err)
	}

	response := make([]Client, len(clients))
	for i, c := range clients {
		response[i] = clientJSON(c)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrder handles GET /clients/:id/orders/active.
func (s *Server) GetActiveOrder(ctx echo.Context) error {
	clientID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid client id")
	}

	query, err := queries.NewGetActiveOrderQuery(clientID)
	if err != nil {
		return jsonError(ctx, err)
	}

	active, err := s.handlers.GetActiveOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, err)
	}
	// No active order is a regular answer, not an error: the body is a
	// JSON null and the status stays 200.
	if active == nil {
		return ctx.JSON(http.StatusOK, nil)
	}

	return ctx.JSON(http.StatusOK, orderJSON(*active))
}

// GetClientOrderHistory handles GET /clients/:id/orders.
func (s *Server) GetClientOrderHistory(ctx echo.Context) error {
	clientID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid client id")
	}

	limit, err := limitParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewGetClientOrderHistoryQuery(clientID, limit)
	if err != nil {
		return jsonError(ctx, err)
	}

	orders, err := s.handlers.GetClientOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = orderJSON(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// RegisterDriver handles POST /drivers - enrolls a driver on first contact
// or refreshes the stored contact on a repeat one.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var body NewDriver
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterDriverCommand(
		kernel.NewUUID(), body.TelegramID,
		body.Username, body.FirstName, body.LastName,
	)
	if err != nil {
		return jsonError(ctx, err)
	}

	registered, err := s.handlers.RegisterDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, driverAggregateJSON(registered))
}

// GetDrivers handles GET /drivers - lists drivers, optionally only those
// free to take an order right now (?available=true).
func (s *Server) GetDrivers(ctx echo.Context) error {
	availableOnly := ctx.QueryParam("available") == "true"

	drivers, err := s.handlers.GetDrivers.Handle(
		ctx.Request().Context(), queries.NewGetDriversQuery(availableOnly),
	)
	if err != nil {
		return jsonError(ctx, err)
	}

	response := make([]Driver, len(drivers))
	for i, d := range drivers {
		response[i] = driverJSON(d)
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpdateDriverProfile handles PATCH /drivers/:id - merges phone and vehicle
// fields into the driver's profile.
func (s *Server) UpdateDriverProfile(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var body DriverProfile
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateDriverProfileCommand(
		driverID, body.Phone,
		body.VehicleBrand, body.VehicleModel, body.VehicleColor, body.VehiclePlate,
	)
	if err != nil {
		return jsonError(ctx, err)
	}

	updated, err := s.handlers.UpdateDriverProfile.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, driverAggregateJSON(updated))
}

// SetDriverAccountStatus handles PATCH /drivers/:id/status - blocks or
// unblocks a driver.
func (s *Server) SetDriverAccountStatus(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var body DriverStatus
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := driver.AccountStatusFromString(body.Status)
	if err != nil {
		return jsonError(ctx, err)
	}

	cmd, err := commands.NewSetDriverAccountStatusCommand(driverID, status)
	if err != nil {
		return jsonError(ctx, err)
	}

	if err = s.handlers.SetDriverAccountStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /orders - places an order and announces it to
// the driver pool. A failed announcement is logged and left to the retry
// job; the order itself is already committed.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := kernel.UUIDFromString(body.ClientID)
	if err != nil {
		return badRequest(ctx, "Invalid client id")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, clientID, body.Origin, body.Destination, body.Comment,
	)
	if err != nil {
		return jsonError(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, err)
	}

	s.broadcast(ctx, orderID)

	return s.orderSnapshot(ctx, orderID, http.StatusCreated)
}

// orderSnapshot answers with the order row as the transition committed it.
func (s *Server) orderSnapshot(ctx echo.Context, orderID kernel.UUID, code int) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return jsonError(ctx, err)
	}

	snapshot, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(code, orderJSON(*snapshot))
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	return s.orderSnapshot(ctx, orderID, http.StatusOK)
}

func (s *Server) broadcast(ctx echo.Context, orderID kernel.UUID) {
	cmd, err := commands.NewBroadcastOrderCommand(orderID)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "failed to build broadcast command",
			"order_id", orderID.String(),
			"error", err,
		)
		return
	}

	if err = s.handlers.BroadcastOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "order broadcast failed, retry job will pick it up",
			"order_id", orderID.String(),
			"error", err,
		)
	}
}

// GetOrders handles GET /orders - lists orders, optionally filtered by
// status (?status=NEW) and capped (?limit=20).
func (s *Server) GetOrders(ctx echo.Context) error {
	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return jsonError(ctx, err)
		}
		status = &parsed
	}

	limit, err := limitParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewGetOrdersQuery(status, limit)
	if err != nil {
		return jsonError(ctx, err)
	}

	orders, err := s.handlers.GetOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = orderJSON(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AssignDriver handles POST /orders/:id/assign - claims the order for a
// driver. Exactly one of several concurrent claims wins, the rest get 409.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body AssignOrder
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	actor, err := actorOrDefault(body.Actor, order.ActorDriver)
	if err != nil {
		return jsonError(ctx, err)
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	if err = s.handlers.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, err)
	}

	return s.orderSnapshot(ctx, orderID, http.StatusOK)
}

// CompleteOrder handles POST /orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body FinishOrder
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := actorOrDefault(body.Actor, order.ActorDriver)
	if err != nil {
		return jsonError(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	if err = s.handlers.CompleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, err)
	}

	return s.orderSnapshot(ctx, orderID, http.StatusOK)
}

// CancelOrder handles POST /orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body FinishOrder
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := actorOrDefault(body.Actor, order.ActorClient)
	if err != nil {
		return jsonError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	if err = s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, err)
	}

	return s.orderSnapshot(ctx, orderID, http.StatusOK)
}

// GetAuditLog handles GET /audit-log with optional order_id, driver_id,
// client_id and limit filters.
func (s *Server) GetAuditLog(ctx echo.Context) error {
	orderID, err := uuidQueryParam(ctx, "order_id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	driverID, err := uuidQueryParam(ctx, "driver_id")
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}
	clientID, err := uuidQueryParam(ctx, "client_id")
	if err != nil {
		return badRequest(ctx, "Invalid client id")
	}

	limit, err := limitParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewGetAuditLogQuery(orderID, driverID, clientID, limit)
	if err != nil {
		return jsonError(ctx, err)
	}

	entries, err := s.handlers.GetAuditLog.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, err)
	}

	response := make([]AuditEntry, len(entries))
	for i, entry := range entries {
		response[i] = auditEntryJSON(entry)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetStats handles GET /stats.
func (s *Server) GetStats(ctx echo.Context) error {
	stats, err := s.handlers.GetStats.Handle(ctx.Request().Context(), queries.NewGetStatsQuery())
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statsJSON(stats))
}

func actorOrDefault(raw string, fallback order.Actor) (order.Actor, error) {
	if raw == "" {
		return fallback, nil
	}
	return order.ActorFromString(raw)
}

func limitParam(ctx echo.Context) (int, error) {
	raw := ctx.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func uuidQueryParam(ctx echo.Context, name string) (*kernel.UUID, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
