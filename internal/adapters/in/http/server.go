// Package http exposes the dispatch operations over REST. Every response is
// wrapped in a success envelope; failures carry the classified error message
// and a status derived from the error category.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use case handlers the server routes to.
type Handlers struct {
	RecordPosition       commands.RecordPositionCommandHandler
	UpdateVehicleStatus  commands.UpdateVehicleStatusCommandHandler
	CleanupPositions     commands.CleanupPositionsCommandHandler
	AssignDelivery       commands.AssignDeliveryCommandHandler
	UpdateDeliveryStatus commands.UpdateDeliveryStatusCommandHandler
	CreateOrder          commands.CreateOrderCommandHandler
	UpdatePayment        commands.UpdatePaymentStatusCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	ProcessMessage       commands.ProcessMessageCommandHandler

	GetAllVehicles      queries.GetAllVehiclesQueryHandler
	GetVehicle          queries.GetVehicleQueryHandler
	GetNearbyVehicles   queries.GetVehiclesNearLocationQueryHandler
	GetDeliveryInfo     queries.GetDeliveryInfoQueryHandler
	GetActiveDeliveries queries.GetActiveDeliveriesQueryHandler
	OptimizeRoute       queries.OptimizeRouteQueryHandler
	ParseOrderText      queries.ParseOrderTextQueryHandler
}

// Server wires the REST routes to the use case handlers.
type Server struct {
	handlers         Handlers
	cleanupRetention time.Duration
	warehouse        geo.Point
}

// NewServer creates the HTTP server. cleanupRetention is the default horizon
// for the GPS cleanup endpoint; warehouse is the default start point for route
// optimization requests that omit one.
func NewServer(handlers Handlers, cleanupRetention time.Duration, warehouse geo.Point,
) (*Server, error) {
	if cleanupRetention <= 0 {
		return nil, errs.NewValueIsInvalidError("cleanupRetention must be positive")
	}
	if err := warehouse.Validate(); err != nil {
		return nil, err
	}
	return &Server{
		handlers:         handlers,
		cleanupRetention: cleanupRetention,
		warehouse:        warehouse,
	}, nil
}

// RegisterRoutes attaches every route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/gps/update", s.UpdatePosition)
	e.GET("/api/gps/vehicles", s.GetVehicles)
	e.GET("/api/gps/vehicle/:vehicleId", s.GetVehicle)
	e.GET("/api/gps/nearby", s.GetNearbyVehicles)
	e.PUT("/api/gps/vehicle/:vehicleId/status", s.UpdateVehicleStatus)
	e.POST("/api/gps/cleanup", s.CleanupPositions)

	e.POST("/api/delivery/assign", s.AssignDelivery)
	e.PUT("/api/delivery/:orderNo/status", s.UpdateDeliveryStatus)
	e.GET("/api/delivery/active", s.GetActiveDeliveries)
	e.GET("/api/delivery/:orderNo", s.GetDeliveryInfo)
	e.POST("/api/delivery/complete", s.CompleteDelivery)

	e.POST("/api/order", s.CreateOrder)
	e.POST("/api/order/parse", s.ParseOrderText)
	e.PUT("/api/order/:orderNo/payment", s.UpdatePayment)
	e.DELETE("/api/order/:orderNo", s.CancelOrder)

	e.POST("/api/route/optimize", s.OptimizeRoute)
	e.POST("/api/message", s.ProcessMessage)

	e.GET("/health", s.Health)
}

type pointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type updatePositionRequest struct {
	VehicleID string  `json:"vehicleId"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Speed     float64 `json:"speed"`
	Heading   float64 `json:"heading"`
	Driver    string  `json:"driver"`
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
}

// UpdatePosition handles POST /api/gps/update.
func (s *Server) UpdatePosition(ctx echo.Context) error {
	var req updatePositionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	position, err := geo.NewPoint(req.Lat, req.Lng)
	if err != nil {
		return respondError(ctx, err)
	}

	var reportedAt time.Time
	if req.Timestamp != "" {
		reportedAt, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return badRequest(ctx, "timestamp must be RFC3339")
		}
	}

	cmd, err := commands.NewRecordPositionCommand(req.VehicleID, position,
		req.Speed, req.Heading, req.Driver, req.Status, reportedAt)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.RecordPosition.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{"vehicleId": req.VehicleID})
}

// GetVehicles handles GET /api/gps/vehicles.
func (s *Server) GetVehicles(ctx echo.Context) error {
	fleet, err := s.handlers.GetAllVehicles.Handle(ctx.Request().Context(), queries.NewGetAllVehiclesQuery())
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{"vehicles": toVehiclePayloads(fleet), "count": len(fleet)})
}

// GetVehicle handles GET /api/gps/vehicle/:vehicleId.
func (s *Server) GetVehicle(ctx echo.Context) error {
	query, err := queries.NewGetVehicleQuery(ctx.Param("vehicleId"))
	if err != nil {
		return respondError(ctx, err)
	}

	v, err := s.handlers.GetVehicle.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{"vehicle": toVehiclePayload(v)})
}

// GetNearbyVehicles handles GET /api/gps/nearby?lat=&lng=&radius=.
func (s *Server) GetNearbyVehicles(ctx echo.Context) error {
	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return badRequest(ctx, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64)
	if err != nil {
		return badRequest(ctx, "lng must be a number")
	}
	radius, err := strconv.ParseFloat(ctx.QueryParam("radius"), 64)
	if err != nil {
		return badRequest(ctx, "radius must be a number")
	}

	location, err := geo.NewPoint(lat, lng)
	if err != nil {
		return respondError(ctx, err)
	}
	query, err := queries.NewGetVehiclesNearLocationQuery(location, radius)
	if err != nil {
		return respondError(ctx, err)
	}

	nearby, err := s.handlers.GetNearbyVehicles.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	payloads := make([]echo.Map, 0, len(nearby))
	for _, n := range nearby {
		payload := toVehiclePayload(n.VehicleResponse)
		payload["distanceKm"] = n.DistanceKm
		payloads = append(payloads, payload)
	}
	return ok(ctx, echo.Map{"vehicles": payloads, "count": len(payloads)})
}

type vehicleStatusRequest struct {
	Status string `json:"status"`
}

// UpdateVehicleStatus handles PUT /api/gps/vehicle/:vehicleId/status.
func (s *Server) UpdateVehicleStatus(ctx echo.Context) error {
	var req vehicleStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateVehicleStatusCommand(ctx.Param("vehicleId"), req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.handlers.UpdateVehicleStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{"vehicleId": updated.ID(), "status": updated.Status()})
}

type cleanupRequest struct {
	RetentionHours int `json:"retentionHours"`
}

// CleanupPositions handles POST /api/gps/cleanup. Without a body the
// server's configured retention applies.
func (s *Server) CleanupPositions(ctx echo.Context) error {
	req := cleanupRequest{}
	_ = ctx.Bind(&req)

	retention := s.cleanupRetention
	if req.RetentionHours > 0 {
		retention = time.Duration(req.RetentionHours) * time.Hour
	}

	cmd, err := commands.NewCleanupPositionsCommand(retention)
	if err != nil {
		return respondError(ctx, err)
	}

	removed, err := s.handlers.CleanupPositions.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{"removed": removed})
}

type assignDeliveryRequest struct {
	OrderNo  int          `json:"orderNo"`
	Location pointRequest `json:"location"`
	Customer string       `json:"customer"`
}

// AssignDelivery handles POST /api/delivery/assign.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	var req assignDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	destination, err := geo.NewPoint(req.Location.Lat, req.Location.Lng)
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewAssignDeliveryCommand(req.OrderNo, destination, req.Customer)
	if err != nil {
		return respondError(ctx, err)
	}

	dispatch, err := s.handlers.AssignDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, services.ErrNoVehicleAvailable) {
			return ctx.JSON(http.StatusNotFound, echo.Map{
				"success":    false,
				"error":      err.Error(),
				"suggestion": services.NoVehicleSuggestion,
			})
		}
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{
		"orderNo":    dispatch.OrderNo,
		"vehicleId":  dispatch.VehicleID,
		"driver":     dispatch.Driver,
		"distanceKm": dispatch.DistanceKm,
		"etaMinutes": dispatch.ETAMinutes,
	})
}

type deliveryStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDeliveryStatus handles PUT /api/delivery/:orderNo/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	orderNo, err := strconv.Atoi(ctx.Param("orderNo"))
	if err != nil {
		return badRequest(ctx, "orderNo must be a number")
	}

	var req deliveryStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	return s.transitionDelivery(ctx, orderNo, status)
}

type completeDeliveryRequest struct {
	OrderNo int `json:"orderNo"`
}

// CompleteDelivery handles POST /api/delivery/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	var req completeDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	return s.transitionDelivery(ctx, req.OrderNo, delivery.Completed)
}

func (s *Server) transitionDelivery(ctx echo.Context, orderNo int, status delivery.Status) error {
	cmd, err := commands.NewUpdateDeliveryStatusCommand(orderNo, status)
	if err != nil {
		return respondError(ctx, err)
	}

	assignment, err := s.handlers.UpdateDeliveryStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{
		"orderNo": assignment.OrderNo(),
		"status":  assignment.Status().String(),
	})
}

// GetDeliveryInfo handles GET /api/delivery/:orderNo.
func (s *Server) GetDeliveryInfo(ctx echo.Context) error {
	orderNo, err := strconv.Atoi(ctx.Param("orderNo"))
	if err != nil {
		return badRequest(ctx, "orderNo must be a number")
	}

	query, err := queries.NewGetDeliveryInfoQuery(orderNo)
	if err != nil {
		return respondError(ctx, err)
	}

	info, err := s.handlers.GetDeliveryInfo.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{"delivery": toDeliveryPayload(info)})
}

// GetActiveDeliveries handles GET /api/delivery/active.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	active, err := s.handlers.GetActiveDeliveries.Handle(ctx.Request().Context(),
		queries.GetActiveDeliveriesQuery{})
	if err != nil {
		return respondError(ctx, err)
	}

	payloads := make([]echo.Map, 0, len(active))
	for _, info := range active {
		payloads = append(payloads, toDeliveryPayload(info))
	}
	return ok(ctx, echo.Map{"deliveries": payloads, "count": len(payloads)})
}

type orderLineRequest struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	Customer       string             `json:"customer"`
	Items          []orderLineRequest `json:"items"`
	Paid           bool               `json:"paid"`
	DeliveryPerson string             `json:"deliveryPerson"`
}

// CreateOrder handles POST /api/order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	lines := make([]commands.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		line, err := commands.NewLineRequest(item.Name, item.Unit, item.Quantity)
		if err != nil {
			return respondError(ctx, err)
		}
		lines = append(lines, line)
	}

	paymentStatus := order.Unpaid
	if req.Paid {
		paymentStatus = order.Paid
	}
	cmd, err := commands.NewCreateOrderCommand(req.Customer, lines, paymentStatus, req.DeliveryPerson)
	if err != nil {
		return respondError(ctx, err)
	}

	receipt, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{"order": toReceiptPayload(receipt)})
}

type paymentRequest struct {
	Status string `json:"status"`
}

// UpdatePayment handles PUT /api/order/:orderNo/payment. A missing status
// marks the order paid.
func (s *Server) UpdatePayment(ctx echo.Context) error {
	orderNo, err := strconv.Atoi(ctx.Param("orderNo"))
	if err != nil {
		return badRequest(ctx, "orderNo must be a number")
	}

	req := paymentRequest{}
	_ = ctx.Bind(&req)

	status := order.Paid
	if req.Status != "" {
		status, err = order.PaymentStatusFromString(req.Status)
		if err != nil {
			return respondError(ctx, err)
		}
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(orderNo, status)
	if err != nil {
		return respondError(ctx, err)
	}

	update, err := s.handlers.UpdatePayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{
		"orderNo":     update.OrderNo,
		"customer":    update.Customer,
		"totalAmount": update.TotalAmount,
		"status":      status.String(),
	})
}

// CancelOrder handles DELETE /api/order/:orderNo.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderNo, err := strconv.Atoi(ctx.Param("orderNo"))
	if err != nil {
		return badRequest(ctx, "orderNo must be a number")
	}

	cmd, err := commands.NewCancelOrderCommand(orderNo)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{
		"orderNo":       result.OrderNo,
		"customer":      result.Customer,
		"rowsRemoved":   result.RowsRemoved,
		"restoredItems": result.RestoredItems,
	})
}

type optimizeRouteRequest struct {
	Start        *pointRequest  `json:"start"`
	Destinations []pointRequest `json:"destinations"`
}

// OptimizeRoute handles POST /api/route/optimize. A request without a start
// point plans from the warehouse.
func (s *Server) OptimizeRoute(ctx echo.Context) error {
	var req optimizeRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	start := s.warehouse
	if req.Start != nil {
		var err error
		start, err = geo.NewPoint(req.Start.Lat, req.Start.Lng)
		if err != nil {
			return respondError(ctx, err)
		}
	}
	destinations := make([]geo.Point, 0, len(req.Destinations))
	for _, d := range req.Destinations {
		point, err := geo.NewPoint(d.Lat, d.Lng)
		if err != nil {
			return respondError(ctx, err)
		}
		destinations = append(destinations, point)
	}

	query, err := queries.NewOptimizeRouteQuery(start, destinations)
	if err != nil {
		return respondError(ctx, err)
	}

	route, err := s.handlers.OptimizeRoute.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	stops := make([]echo.Map, 0, len(route.Stops))
	for _, stop := range route.Stops {
		stops = append(stops, echo.Map{
			"lat":   stop.Point.Lat(),
			"lng":   stop.Point.Lng(),
			"legKm": stop.LegKm,
		})
	}
	return ok(ctx, echo.Map{
		"stops":      stops,
		"totalKm":    route.TotalKm,
		"etaMinutes": route.ETAMinutes,
	})
}

type parseOrderRequest struct {
	Text string `json:"text"`
}

// ParseOrderText handles POST /api/order/parse. Dry run: the interpreted
// candidates are returned and nothing is committed.
func (s *Server) ParseOrderText(ctx echo.Context) error {
	var req parseOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	query, err := queries.NewParseOrderTextQuery(req.Text)
	if err != nil {
		return respondError(ctx, err)
	}

	candidates, err := s.handlers.ParseOrderText.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{"candidates": candidates, "count": len(candidates)})
}

type messageRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// ProcessMessage handles POST /api/message.
func (s *Server) ProcessMessage(ctx echo.Context) error {
	var req messageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewProcessMessageCommand(req.UserID, req.Text)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.handlers.ProcessMessage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ok(ctx, echo.Map{
		"messageId": result.MessageID.String(),
		"outcomes":  result.Outcomes,
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "status": "healthy"})
}

func toVehiclePayload(v queries.VehicleResponse) echo.Map {
	return echo.Map{
		"vehicleId":  v.VehicleID,
		"lat":        v.Position.Lat(),
		"lng":        v.Position.Lng(),
		"speed":      v.SpeedKmh,
		"heading":    v.HeadingDeg,
		"driver":     v.Driver,
		"status":     v.Status,
		"observedAt": v.ObservedAt.Format(time.RFC3339),
	}
}

func toVehiclePayloads(fleet []queries.VehicleResponse) []echo.Map {
	payloads := make([]echo.Map, 0, len(fleet))
	for _, v := range fleet {
		payloads = append(payloads, toVehiclePayload(v))
	}
	return payloads
}

func toDeliveryPayload(info queries.DeliveryInfoResponse) echo.Map {
	payload := echo.Map{
		"orderNo":    info.OrderNo,
		"vehicleId":  info.VehicleID,
		"customer":   info.Customer,
		"status":     info.Status,
		"assignedAt": info.AssignedAt.Format(time.RFC3339),
		"destination": echo.Map{
			"lat": info.Destination.Lat(),
			"lng": info.Destination.Lng(),
		},
		"distanceKm": info.DistanceKm,
	}
	if info.CompletedAt != nil {
		payload["completedAt"] = info.CompletedAt.Format(time.RFC3339)
	}
	if info.Vehicle != nil {
		payload["vehicle"] = toVehiclePayload(*info.Vehicle)
		payload["remainingKm"] = info.RemainingKm
		payload["etaMinutes"] = info.ETAMinutes
	}
	return payload
}

func toReceiptPayload(receipt commands.OrderReceipt) echo.Map {
	items := make([]echo.Map, 0, len(receipt.Lines))
	for _, line := range receipt.Lines {
		items = append(items, echo.Map{
			"product":   line.Product,
			"unit":      line.Unit,
			"quantity":  line.Quantity,
			"unitPrice": line.UnitPrice,
			"lineTotal": line.LineTotal,
			"newStock":  line.NewStock,
			"warning":   line.Warning.String(),
		})
	}
	return echo.Map{
		"orderNo":     receipt.OrderNo,
		"customer":    receipt.Customer,
		"totalAmount": receipt.TotalAmount,
		"items":       items,
	}
}

func ok(ctx echo.Context, payload echo.Map) error {
	payload["success"] = true
	return ctx.JSON(http.StatusOK, payload)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": message})
}

func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	}
	return ctx.JSON(status, echo.Map{"success": false, "error": err.Error()})
}
