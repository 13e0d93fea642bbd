package http

import (
	"errors"
	"net/http"
	"time"

	"pichuka/internal/core/application/usecases/commands"
	"pichuka/internal/core/application/usecases/queries"
	"pichuka/internal/core/domain/model/cart"
	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"
	"pichuka/internal/core/domain/services"
	"pichuka/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
// The actor tuple always comes from the request payload: authentication is an
// upstream collaborator, the server never reads ambient identity.
type Server struct {
	// Command handlers
	addCartItemHandler        commands.AddCartItemCommandHandler
	removeCartItemHandler     commands.RemoveCartItemCommandHandler
	placeOrderHandler         commands.PlaceOrderCommandHandler
	changeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	markOrderDeliveredHandler commands.MarkOrderDeliveredCommandHandler

	// Query handlers
	getCartHandler          queries.GetCartQueryHandler
	getOrderHistoryHandler  queries.GetOrderHistoryQueryHandler
	getAllOrdersHandler     queries.GetAllOrdersQueryHandler
	getKitchenQueueHandler  queries.GetKitchenQueueQueryHandler
	getDeliveryQueueHandler queries.GetDeliveryQueueQueryHandler
	getOrderTimelineHandler queries.GetOrderTimelineQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	removeCartItemHandler commands.RemoveCartItemCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	markOrderDeliveredHandler commands.MarkOrderDeliveredCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getKitchenQueueHandler queries.GetKitchenQueueQueryHandler,
	getDeliveryQueueHandler queries.GetDeliveryQueueQueryHandler,
	getOrderTimelineHandler queries.GetOrderTimelineQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:        addCartItemHandler,
		removeCartItemHandler:     removeCartItemHandler,
		placeOrderHandler:         placeOrderHandler,
		changeOrderStatusHandler:  changeOrderStatusHandler,
		markOrderDeliveredHandler: markOrderDeliveredHandler,
		getCartHandler:            getCartHandler,
		getOrderHistoryHandler:    getOrderHistoryHandler,
		getAllOrdersHandler:       getAllOrdersHandler,
		getKitchenQueueHandler:    getKitchenQueueHandler,
		getDeliveryQueueHandler:   getDeliveryQueueHandler,
		getOrderTimelineHandler:   getOrderTimelineHandler,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/cart/add", s.AddCartItem)
	e.POST("/api/cart/remove", s.RemoveCartItem)
	e.GET("/api/cart", s.GetCart)

	e.POST("/api/orders/place", s.PlaceOrder)
	e.PUT("/api/orders/status", s.ChangeOrderStatus)
	e.PUT("/api/orders/mark-delivered", s.MarkOrderDelivered)
	e.GET("/api/orders/history", s.GetOrderHistory)
	e.GET("/api/orders/all", s.GetAllOrders)
	e.GET("/api/orders/kitchen-queue", s.GetKitchenQueue)
	e.GET("/api/orders/delivery-queue", s.GetDeliveryQueue)
	e.GET("/api/orders/status/:orderId", s.GetOrderTimeline)
}

// ErrorResponse is the JSON body returned on every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ActorPayload identifies who is acting on an order. Role and Position are
// the raw values the auth collaborator knows; classification happens here.
type ActorPayload struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
	Position string `json:"position"`
}

// AddCartItemRequest is the body for POST /api/cart/add.
type AddCartItemRequest struct {
	Customer string          `json:"customer"`
	DishID   int             `json:"dishId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

// RemoveCartItemRequest is the body for POST /api/cart/remove.
type RemoveCartItemRequest struct {
	Customer string `json:"customer"`
	DishID   int    `json:"dishId"`
}

// PlaceOrderRequest is the body for POST /api/orders/place.
type PlaceOrderRequest struct {
	Customer string `json:"customer"`
}

// PlaceOrderResponse carries the identifier of the freshly placed order.
type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
}

// ChangeOrderStatusRequest is the body for PUT /api/orders/status.
type ChangeOrderStatusRequest struct {
	OrderID string       `json:"orderId"`
	Status  string       `json:"status"`
	Notes   string       `json:"notes,omitempty"`
	Actor   ActorPayload `json:"actor"`
}

// MarkOrderDeliveredRequest is the body for PUT /api/orders/mark-delivered.
type MarkOrderDeliveredRequest struct {
	OrderID string       `json:"orderId"`
	Actor   ActorPayload `json:"actor"`
}

// CartResponse is the cart projection returned by GET /api/cart.
type CartResponse struct {
	Customer   string             `json:"customer"`
	Items      []CartLineResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// CartLineResponse is one coalesced cart line.
type CartLineResponse struct {
	DishID   int             `json:"dishId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// OrderSummaryResponse is one row of an order listing.
type OrderSummaryResponse struct {
	ID                string          `json:"id"`
	Customer          string          `json:"customer,omitempty"`
	Status            string          `json:"status"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	OrderDate         time.Time       `json:"orderDate"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
}

// QueueEntryResponse is one row of the kitchen or delivery queue.
type QueueEntryResponse struct {
	ID                string     `json:"id"`
	Customer          string     `json:"customer"`
	Status            string     `json:"status,omitempty"`
	OrderDate         time.Time  `json:"orderDate"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}

// OrderTimelineResponse is the full order card with its transition timeline.
type OrderTimelineResponse struct {
	ID                string                  `json:"id"`
	Customer          string                  `json:"customer"`
	Status            string                  `json:"status"`
	TotalPrice        decimal.Decimal         `json:"totalPrice"`
	OrderDate         time.Time               `json:"orderDate"`
	EstimatedDelivery *time.Time              `json:"estimatedDelivery,omitempty"`
	Notes             string                  `json:"notes,omitempty"`
	DeliveredAt       *time.Time              `json:"deliveredAt,omitempty"`
	DeliveredBy       string                  `json:"deliveredBy,omitempty"`
	Timeline          []TimelineEntryResponse `json:"timeline"`
}

// TimelineEntryResponse is one recorded status transition.
type TimelineEntryResponse struct {
	PreviousStatus string    `json:"previousStatus"`
	Timestamp      time.Time `json:"timestamp"`
	Actor          string    `json:"actor"`
}

// AddCartItem handles POST /api/cart/add - adds a dish to the customer's cart.
func (s *Server) AddCartItem(ctx echo.Context) error {
	var req AddCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	item, err := cart.NewItem(req.DishID, req.Title, req.Price, req.Quantity, req.Image)
	if err != nil {
		return badRequest(ctx, "Invalid cart item: "+err.Error())
	}

	cmd, err := commands.NewAddCartItemCommand(req.Customer, item)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles POST /api/cart/remove - drops a cart line entirely.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	var req RemoveCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRemoveCartItemCommand(req.Customer, req.DishID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.removeCartItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCart handles GET /api/cart?customer= - returns the customer's cart.
func (s *Server) GetCart(ctx echo.Context) error {
	query, err := queries.NewGetCartQuery(ctx.QueryParam("customer"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return commandError(ctx, err)
	}

	response := CartResponse{
		Customer:   result.Customer,
		Items:      make([]CartLineResponse, 0, len(result.Items)),
		TotalPrice: result.TotalPrice,
		UpdatedAt:  result.UpdatedAt,
	}
	for _, line := range result.Items {
		response.Items = append(response.Items, CartLineResponse{
			DishID:   line.DishID,
			Title:    line.Title,
			Price:    line.Price,
			Quantity: line.Quantity,
			Image:    line.Image,
			Subtotal: line.Subtotal,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// PlaceOrder handles POST /api/orders/place - checks out the customer's cart.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewPlaceOrderCommand(req.Customer)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{OrderID: orderID.String()})
}

// ChangeOrderStatus handles PUT /api/orders/status - moves an order along the
// workflow. Delivered is rejected here; it is reachable only through
// MarkOrderDelivered.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	var req ChangeOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+req.OrderID)
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.Status)
	}

	actor, err := actorFromPayload(req.Actor)
	if err != nil {
		return badRequest(ctx, "Invalid actor: "+err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, actor, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkOrderDelivered handles PUT /api/orders/mark-delivered - completes a
// Ready order and records who handed it over.
func (s *Server) MarkOrderDelivered(ctx echo.Context) error {
	var req MarkOrderDeliveredRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+req.OrderID)
	}

	actor, err := actorFromPayload(req.Actor)
	if err != nil {
		return badRequest(ctx, "Invalid actor: "+err.Error())
	}

	cmd, err := commands.NewMarkOrderDeliveredCommand(orderID, actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.markOrderDeliveredHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderHistory handles GET /api/orders/history?customer= - lists the
// customer's own orders, newest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	query, err := queries.NewGetOrderHistoryQuery(ctx.QueryParam("customer"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return commandError(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, OrderSummaryResponse{
			ID:                row.ID.String(),
			Status:            row.Status,
			TotalPrice:        row.TotalPrice,
			OrderDate:         row.OrderDate,
			EstimatedDelivery: row.EstimatedDelivery,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAllOrders handles GET /api/orders/all - lists every order for staff.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	rows, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return commandError(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, OrderSummaryResponse{
			ID:                row.ID.String(),
			Customer:          row.Customer,
			Status:            row.Status,
			TotalPrice:        row.TotalPrice,
			OrderDate:         row.OrderDate,
			EstimatedDelivery: row.EstimatedDelivery,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetKitchenQueue handles GET /api/orders/kitchen-queue - active orders the
// kitchen still has to cook, oldest first.
func (s *Server) GetKitchenQueue(ctx echo.Context) error {
	rows, err := s.getKitchenQueueHandler.Handle(ctx.Request().Context(), queries.NewGetKitchenQueueQuery())
	if err != nil {
		return commandError(ctx, err)
	}

	response := make([]QueueEntryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, QueueEntryResponse{
			ID:        row.ID.String(),
			Customer:  row.Customer,
			Status:    row.Status,
			OrderDate: row.OrderDate,
			Notes:     row.Notes,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryQueue handles GET /api/orders/delivery-queue - Ready orders
// waiting for handover, oldest first.
func (s *Server) GetDeliveryQueue(ctx echo.Context) error {
	rows, err := s.getDeliveryQueueHandler.Handle(ctx.Request().Context(), queries.NewGetDeliveryQueueQuery())
	if err != nil {
		return commandError(ctx, err)
	}

	response := make([]QueueEntryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, QueueEntryResponse{
			ID:                row.ID.String(),
			Customer:          row.Customer,
			OrderDate:         row.OrderDate,
			EstimatedDelivery: row.EstimatedDelivery,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderTimeline handles GET /api/orders/status/:orderId - returns one
// order with its full transition timeline.
func (s *Server) GetOrderTimeline(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+ctx.Param("orderId"))
	}

	query, err := queries.NewGetOrderTimelineQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getOrderTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return commandError(ctx, err)
	}

	response := OrderTimelineResponse{
		ID:                result.ID.String(),
		Customer:          result.Customer,
		Status:            result.Status,
		TotalPrice:        result.TotalPrice,
		OrderDate:         result.OrderDate,
		EstimatedDelivery: result.EstimatedDelivery,
		Notes:             result.Notes,
		DeliveredAt:       result.DeliveredAt,
		DeliveredBy:       result.DeliveredBy,
		Timeline:          make([]TimelineEntryResponse, 0, len(result.Timeline)),
	}
	for _, entry := range result.Timeline {
		response.Timeline = append(response.Timeline, TimelineEntryResponse{
			PreviousStatus: entry.PreviousStatus,
			Timestamp:      entry.Timestamp,
			Actor:          entry.Actor,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func actorFromPayload(payload ActorPayload) (order.Actor, error) {
	role := order.RoleClassFrom(payload.Role, payload.Position)

	return order.NewActor(payload.Identity, role, payload.Position)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// commandError translates a use-case failure into the HTTP status the
// workflow semantics demand. Not-ready outranks forbidden upstream, so by the
// time an error reaches here the precedence is already settled.
func commandError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrForbiddenTransition):
		code = http.StatusForbidden
	case errors.Is(err, order.ErrOrderNotReady),
		errors.Is(err, order.ErrOrderIsClosed),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrPersistenceUnavailable):
		code = http.StatusServiceUnavailable
	case errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, order.ErrDeliveredViaMarkOnly),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
