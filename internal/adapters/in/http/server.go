// Package http exposes the order core over REST. Handlers translate
// requests into commands and queries and translate domain errors into
// HTTP statuses; no business rules live here.
package http

import (
	"net/http"
	"time"

	"foodhub/internal/core/application/usecases/commands"
	"foodhub/internal/core/application/usecases/queries"
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	addCartItemHandler        commands.AddCartItemCommandHandler
	updateCartQuantityHandler commands.UpdateCartQuantityCommandHandler
	removeCartLineHandler     commands.RemoveCartLineCommandHandler
	clearCartHandler          commands.ClearCartCommandHandler
	placeOrderHandler         commands.PlaceOrderCommandHandler
	transitionOrderHandler    commands.TransitionOrderCommandHandler
	rateOrderHandler          commands.RateOrderCommandHandler

	// Query handlers
	getCartHandler                queries.GetCartQueryHandler
	getCartCountHandler           queries.GetCartCountQueryHandler
	getAvailableOrdersHandler     queries.GetAvailableOrdersQueryHandler
	getRestaurantStatsHandler     queries.GetRestaurantStatsQueryHandler
	getCustomerStatsHandler       queries.GetCustomerStatsQueryHandler
	getDeliveryPersonStatsHandler queries.GetDeliveryPersonStatsQueryHandler
	getDailyStatsHandler          queries.GetDailyStatsQueryHandler
	getGlobalTotalsHandler        queries.GetGlobalTotalsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	updateCartQuantityHandler commands.UpdateCartQuantityCommandHandler,
	removeCartLineHandler commands.RemoveCartLineCommandHandler,
	clearCartHandler commands.ClearCartCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	rateOrderHandler commands.RateOrderCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getCartCountHandler queries.GetCartCountQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getRestaurantStatsHandler queries.GetRestaurantStatsQueryHandler,
	getCustomerStatsHandler queries.GetCustomerStatsQueryHandler,
	getDeliveryPersonStatsHandler queries.GetDeliveryPersonStatsQueryHandler,
	getDailyStatsHandler queries.GetDailyStatsQueryHandler,
	getGlobalTotalsHandler queries.GetGlobalTotalsQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:            addCartItemHandler,
		updateCartQuantityHandler:     updateCartQuantityHandler,
		removeCartLineHandler:         removeCartLineHandler,
		clearCartHandler:              clearCartHandler,
		placeOrderHandler:             placeOrderHandler,
		transitionOrderHandler:        transitionOrderHandler,
		rateOrderHandler:              rateOrderHandler,
		getCartHandler:                getCartHandler,
		getCartCountHandler:           getCartCountHandler,
		getAvailableOrdersHandler:     getAvailableOrdersHandler,
		getRestaurantStatsHandler:     getRestaurantStatsHandler,
		getCustomerStatsHandler:       getCustomerStatsHandler,
		getDeliveryPersonStatsHandler: getDeliveryPersonStatsHandler,
		getDailyStatsHandler:          getDailyStatsHandler,
		getGlobalTotalsHandler:        getGlobalTotalsHandler,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/cart", s.GetCart)
	v1.GET("/cart/count", s.GetCartCount)
	v1.POST("/cart/items", s.AddCartItem)
	v1.PUT("/cart/items/:lineID", s.UpdateCartQuantity)
	v1.DELETE("/cart/items/:lineID", s.RemoveCartLine)
	v1.DELETE("/cart", s.ClearCart)

	v1.POST("/checkout", s.PlaceOrder)

	v1.POST("/orders/:orderID/transitions", s.TransitionOrder)
	v1.POST("/orders/:orderID/rating", s.RateOrder)
	v1.GET("/orders/available", s.GetAvailableOrders)

	v1.GET("/restaurants/:restaurantID/stats", s.GetRestaurantStats)
	v1.GET("/customers/:customerID/stats", s.GetCustomerStats)
	v1.GET("/delivery-persons/:deliveryPersonID/stats", s.GetDeliveryPersonStats)
	v1.GET("/stats/daily", s.GetDailyStats)
	v1.GET("/stats/totals", s.GetGlobalTotals)
}

// AddCartItemRequest is the body of POST /api/v1/cart/items.
type AddCartItemRequest struct {
	MenuItemID    string `json:"menu_item_id"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization"`
}

// CartLineResponse is one cart line as returned by the cart mutations.
type CartLineResponse struct {
	ID            string `json:"id"`
	MenuItemID    string `json:"menu_item_id"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization,omitempty"`
}

// AddCartItem handles POST /api/v1/cart/items. Adding an item that is
// already in the cart with the same customization merges quantities.
func (s *Server) AddCartItem(ctx echo.Context) error {
	customerID, err := customerFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req AddCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	menuItemID, err := kernel.UUIDFromString(req.MenuItemID)
	if err != nil {
		return badRequest(ctx, "Invalid menu item id: "+err.Error())
	}

	cmd, err := commands.NewAddCartItemCommand(customerID, menuItemID, req.Quantity, req.Customization)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, struct {
		Line      CartLineResponse `json:"line"`
		CartCount int64            `json:"cart_count"`
	}{
		Line: CartLineResponse{
			ID:            result.Line.ID().String(),
			MenuItemID:    result.Line.MenuItemID().String(),
			Quantity:      result.Line.Quantity(),
			Customization: result.Line.Customization(),
		},
		CartCount: result.CartCount,
	})
}

// UpdateCartQuantityRequest is the body of PUT /api/v1/cart/items/:lineID.
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartQuantity handles PUT /api/v1/cart/items/:lineID. A quantity of
// zero or less removes the line.
func (s *Server) UpdateCartQuantity(ctx echo.Context) error {
	customerID, err := customerFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineID"))
	if err != nil {
		return badRequest(ctx, "Invalid cart line id: "+err.Error())
	}

	var req UpdateCartQuantityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCartQuantityCommand(customerID, lineID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	line, err := s.updateCartQuantityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	if line == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	return ctx.JSON(http.StatusOK, CartLineResponse{
		ID:            line.ID().String(),
		MenuItemID:    line.MenuItemID().String(),
		Quantity:      line.Quantity(),
		Customization: line.Customization(),
	})
}

// RemoveCartLine handles DELETE /api/v1/cart/items/:lineID.
func (s *Server) RemoveCartLine(ctx echo.Context) error {
	customerID, err := customerFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineID"))
	if err != nil {
		return badRequest(ctx, "Invalid cart line id: "+err.Error())
	}

	cmd, err := commands.NewRemoveCartLineCommand(customerID, lineID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.removeCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClearCart handles DELETE /api/v1/cart. Clearing an empty cart succeeds.
func (s *Server) ClearCart(ctx echo.Context) error {
	customerID, err := customerFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewClearCartCommand(customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.clearCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCart handles GET /api/v1/cart - the caller's cart grouped by restaurant.
func (s *Server) GetCart(ctx echo.Context) error {
	customerID, err := customerFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	cart, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	groups := make([]cartGroupResponse, len(cart.Groups))
	for i, g := range cart.Groups {
		lines := make([]cartGroupLineResponse, len(g.Lines))
		for j, l := range g.Lines {
			lines[j] = cartGroupLineResponse{
				ID:            l.ID.String(),
				MenuItemID:    l.MenuItemID.String(),
				MenuItemName:  l.MenuItemName,
				Quantity:      l.Quantity,
				Customization: l.Customization,
				UnitPrice:     l.UnitPrice,
				TotalPrice:    l.TotalPrice,
			}
		}
		groups[i] = cartGroupResponse{
			RestaurantID:   g.RestaurantID.String(),
			RestaurantName: g.RestaurantName,
			Lines:          lines,
			Subtotal:       g.Subtotal,
		}
	}

	return ctx.JSON(http.StatusOK, struct {
		Groups     []cartGroupResponse `json:"groups"`
		GrandTotal float64             `json:"grand_total"`
		LineCount  int                 `json:"line_count"`
	}{Groups: groups, GrandTotal: cart.GrandTotal, LineCount: cart.LineCount})
}

type cartGroupLineResponse struct {
	ID            string  `json:"id"`
	MenuItemID    string  `json:"menu_item_id"`
	MenuItemName  string  `json:"menu_item_name"`
	Quantity      int     `json:"quantity"`
	Customization string  `json:"customization,omitempty"`
	UnitPrice     float64 `json:"unit_price"`
	TotalPrice    float64 `json:"total_price"`
}

type cartGroupResponse struct {
	RestaurantID   string                  `json:"restaurant_id"`
	RestaurantName string                  `json:"restaurant_name"`
	Lines          []cartGroupLineResponse `json:"lines"`
	Subtotal       float64                 `json:"subtotal"`
}

// GetCartCount handles GET /api/v1/cart/count - the badge counter.
func (s *Server) GetCartCount(ctx echo.Context) error {
	customerID, err := customerFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCartCountQuery(customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	count, err := s.getCartCountHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, struct {
		Count int64 `json:"count"`
	}{Count: count})
}

// PlaceOrderRequest is the body of POST /api/v1/checkout.
type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
	Delivery      struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		Address      string `json:"address"`
		City         string `json:"city"`
		Pincode      string `json:"pincode"`
		Instructions string `json:"instructions"`
	} `json:"delivery"`
}

// PlacedOrderResponse is one order created by a checkout.
type PlacedOrderResponse struct {
	ID                    string    `json:"id"`
	OrderNumber           string    `json:"order_number"`
	RestaurantID          string    `json:"restaurant_id"`
	Status                string    `json:"status"`
	TotalAmount           float64   `json:"total_amount"`
	TaxAmount             float64   `json:"tax_amount"`
	DeliveryFee           float64   `json:"delivery_fee"`
	ItemCount             int       `json:"item_count"`
	EstimatedDeliveryTime time.Time `json:"estimated_delivery_time"`
}

// PlaceOrder handles POST /api/v1/checkout. The whole cart is converted
// into one order per restaurant in a single transaction.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	customerID, err := customerFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	delivery := order.DeliveryDetails{
		Name:         req.Delivery.Name,
		Email:        req.Delivery.Email,
		Phone:        req.Delivery.Phone,
		Address:      req.Delivery.Address,
		City:         req.Delivery.City,
		Pincode:      req.Delivery.Pincode,
		Instructions: req.Delivery.Instructions,
	}

	cmd, err := commands.NewPlaceOrderCommand(customerID, req.PaymentMethod, delivery)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]PlacedOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = PlacedOrderResponse{
			ID:                    o.ID().String(),
			OrderNumber:           o.OrderNumber(),
			RestaurantID:          o.RestaurantID().String(),
			Status:                o.Status().String(),
			TotalAmount:           o.Charges().TotalAmount,
			TaxAmount:             o.Charges().TaxAmount,
			DeliveryFee:           o.Charges().DeliveryFee,
			ItemCount:             o.TotalItems(),
			EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		}
	}

	return ctx.JSON(http.StatusCreated, struct {
		Orders []PlacedOrderResponse `json:"orders"`
	}{Orders: response})
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:orderID/transitions.
type TransitionOrderRequest struct {
	Target string `json:"target"`
}

// TransitionOrder handles POST /api/v1/orders/:orderID/transitions. The
// acting identity comes from the actor headers; whether the step is allowed
// depends on the transition table and the actor's authority.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req TransitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}{OrderID: updated.ID().String(), Status: updated.Status().String()})
}

// RateOrderRequest is the body of POST /api/v1/orders/:orderID/rating.
type RateOrderRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// RateOrder handles POST /api/v1/orders/:orderID/rating. Only the ordering
// customer may rate, only delivered orders, only once.
func (s *Server) RateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req RateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(orderID, actor, req.Rating, req.Review)
	if err != nil {
		return respondError(ctx, err)
	}

	rated, err := s.rateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, struct {
		OrderID string `json:"order_id"`
		Rating  int    `json:"rating"`
		Review  string `json:"review,omitempty"`
	}{OrderID: rated.ID().String(), Rating: *rated.Rating(), Review: rated.Review()})
}

// AvailableOrderResponse is one claimable order in the courier feed.
type AvailableOrderResponse struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	RestaurantName  string    `json:"restaurant_name"`
	DeliveryAddress string    `json:"delivery_address"`
	DeliveryCity    string    `json:"delivery_city"`
	TotalAmount     float64   `json:"total_amount"`
	ReadySince      time.Time `json:"ready_since"`
}

// GetAvailableOrders handles GET /api/v1/orders/available - the feed of
// pickup-ready, unassigned orders, oldest first.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	query := queries.NewGetAvailableOrdersQuery()

	available, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]AvailableOrderResponse, len(available))
	for i, o := range available {
		response[i] = AvailableOrderResponse{
			ID:              o.ID.String(),
			OrderNumber:     o.OrderNumber,
			RestaurantName:  o.RestaurantName,
			DeliveryAddress: o.DeliveryAddress,
			DeliveryCity:    o.DeliveryCity,
			TotalAmount:     o.TotalAmount,
			ReadySince:      o.ReadySince,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRestaurantStats handles GET /api/v1/restaurants/:restaurantID/stats.
func (s *Server) GetRestaurantStats(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("restaurantID"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id: "+err.Error())
	}

	query, err := queries.NewGetRestaurantStatsQuery(restaurantID)
	if err != nil {
		return respondError(ctx, err)
	}

	stats, err := s.getRestaurantStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, struct {
		TotalOrders   int64   `json:"total_orders"`
		PendingOrders int64   `json:"pending_orders"`
		TotalRevenue  float64 `json:"total_revenue"`
		AverageRating float64 `json:"average_rating"`
		RatedOrders   int64   `json:"rated_orders"`
	}{
		TotalOrders:   stats.TotalOrders,
		PendingOrders: stats.PendingOrders,
		TotalRevenue:  stats.TotalRevenue,
		AverageRating: stats.AverageRating,
		RatedOrders:   stats.RatedOrders,
	})
}

// GetCustomerStats handles GET /api/v1/customers/:customerID/stats.
func (s *Server) GetCustomerStats(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerID"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	query, err := queries.NewGetCustomerStatsQuery(customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	stats, err := s.getCustomerStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, struct {
		TotalOrders     int64   `json:"total_orders"`
		TotalSpent      float64 `json:"total_spent"`
		FavoriteCuisine string  `json:"favorite_cuisine"`
	}{
		TotalOrders:     stats.TotalOrders,
		TotalSpent:      stats.TotalSpent,
		FavoriteCuisine: stats.FavoriteCuisine,
	})
}

// GetDeliveryPersonStats handles GET /api/v1/delivery-persons/:deliveryPersonID/stats.
func (s *Server) GetDeliveryPersonStats(ctx echo.Context) error {
	deliveryPersonID, err := kernel.UUIDFromString(ctx.Param("deliveryPersonID"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery person id: "+err.Error())
	}

	query, err := queries.NewGetDeliveryPersonStatsQuery(deliveryPersonID)
	if err != nil {
		return respondError(ctx, err)
	}

	stats, err := s.getDeliveryPersonStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, struct {
		TotalAssigned    int64   `json:"total_assigned"`
		TotalDelivered   int64   `json:"total_delivered"`
		ActiveDeliveries int64   `json:"active_deliveries"`
		TotalEarnings    float64 `json:"total_earnings"`
		SuccessRate      float64 `json:"success_rate"`
	}{
		TotalAssigned:    stats.TotalAssigned,
		TotalDelivered:   stats.TotalDelivered,
		ActiveDeliveries: stats.ActiveDeliveries,
		TotalEarnings:    stats.TotalEarnings,
		SuccessRate:      stats.SuccessRate,
	})
}

// GetDailyStats handles GET /api/v1/stats/daily?date=YYYY-MM-DD.
// Without a date parameter it reports today.
func (s *Server) GetDailyStats(ctx echo.Context) error {
	day := time.Now().UTC()
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return badRequest(ctx, "Invalid date, expected YYYY-MM-DD: "+err.Error())
		}
		day = parsed
	}

	query, err := queries.NewGetDailyStatsQuery(day)
	if err != nil {
		return respondError(ctx, err)
	}

	stats, err := s.getDailyStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stats)
}

// GetGlobalTotals handles GET /api/v1/stats/totals - all-time platform counters.
func (s *Server) GetGlobalTotals(ctx echo.Context) error {
	query := queries.NewGetGlobalTotalsQuery()

	totals, err := s.getGlobalTotalsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, struct {
		TotalOrders     int64   `json:"total_orders"`
		DeliveredOrders int64   `json:"delivered_orders"`
		InFlightOrders  int64   `json:"in_flight_orders"`
		TotalRevenue    float64 `json:"total_revenue"`
		CustomersServed int64   `json:"customers_served"`
	}{
		TotalOrders:     totals.TotalOrders,
		DeliveredOrders: totals.DeliveredOrders,
		InFlightOrders:  totals.InFlightOrders,
		TotalRevenue:    totals.TotalRevenue,
		CustomersServed: totals.CustomersServed,
	})
}
