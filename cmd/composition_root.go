package cmd

import (
	"context"
	"log/slog"

	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/groq"
	"dispatch/internal/adapters/out/sheetrepo"
	"dispatch/internal/adapters/out/sheetstore"
	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/application/parsing"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/keylock"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CompositionRoot builds and holds every shared dependency of the service:
// the tabular store, the repositories over it, the caches and the interpreter.
// Handlers are created on demand from these shared pieces.
type CompositionRoot struct {
	configs Config
	logger  *slog.Logger

	store       *sheetstore.GormTabularStore
	stocks      *sheetrepo.SheetStockRepository
	orders      *sheetrepo.SheetOrderRepository
	positions   *sheetrepo.SheetPositionRepository
	assignments *sheetrepo.SheetAssignmentRepository
	customers   *sheetrepo.SheetCustomerRepository
	inbox       *sheetrepo.SheetInboxRepository

	vehicleCache  *caches.VehicleCache
	stockCache    *caches.StockCache
	customerCache *caches.CustomerCache

	locks       *keylock.KeyedMutex
	interpreter *parsing.Interpreter
	selector    services.VehicleSelector
	optimizer   services.RouteOptimizer
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	if err := sheetstore.Migrate(gormDB); err != nil {
		return CompositionRoot{}, err
	}
	store, err := sheetstore.NewGormTabularStore(gormDB)
	if err != nil {
		return CompositionRoot{}, err
	}

	stocks, err := sheetrepo.NewSheetStockRepository(store)
	if err != nil {
		return CompositionRoot{}, err
	}
	orders, err := sheetrepo.NewSheetOrderRepository(store)
	if err != nil {
		return CompositionRoot{}, err
	}
	positions, err := sheetrepo.NewSheetPositionRepository(store)
	if err != nil {
		return CompositionRoot{}, err
	}
	assignments, err := sheetrepo.NewSheetAssignmentRepository(store)
	if err != nil {
		return CompositionRoot{}, err
	}
	customers, err := sheetrepo.NewSheetCustomerRepository(store)
	if err != nil {
		return CompositionRoot{}, err
	}
	inbox, err := sheetrepo.NewSheetInboxRepository(store)
	if err != nil {
		return CompositionRoot{}, err
	}

	vehicleCache, err := caches.NewVehicleCache(positions, configs.GPSCacheTTL)
	if err != nil {
		return CompositionRoot{}, err
	}
	stockCache, err := caches.NewStockCache(stocks)
	if err != nil {
		return CompositionRoot{}, err
	}
	customerCache, err := caches.NewCustomerCache(customers)
	if err != nil {
		return CompositionRoot{}, err
	}

	generator, err := groq.NewClient(configs.GroqBaseURL, configs.GroqAPIKey, configs.GroqModel)
	if err != nil {
		return CompositionRoot{}, err
	}
	interpreter, err := parsing.NewInterpreter(generator, stockCache, customerCache)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:       configs,
		logger:        logger,
		store:         store,
		stocks:        stocks,
		orders:        orders,
		positions:     positions,
		assignments:   assignments,
		customers:     customers,
		inbox:         inbox,
		vehicleCache:  vehicleCache,
		stockCache:    stockCache,
		customerCache: customerCache,
		locks:         keylock.NewKeyedMutex(),
		interpreter:   interpreter,
		selector:      services.NewVehicleSelector(configs.IdleSpeedThresholdKmh),
		optimizer:     services.NewRouteOptimizer(),
	}, nil
}

// CreateHandlers builds the full handler bundle the HTTP server routes to.
func (c *CompositionRoot) CreateHandlers() (http.Handlers, error) {
	recordPosition, err := commands.NewRecordPositionCommandHandler(c.vehicleCache)
	if err != nil {
		return http.Handlers{}, err
	}
	updateVehicleStatus, err := commands.NewUpdateVehicleStatusCommandHandler(c.vehicleCache)
	if err != nil {
		return http.Handlers{}, err
	}
	cleanupPositions, err := commands.NewCleanupPositionsCommandHandler(c.vehicleCache)
	if err != nil {
		return http.Handlers{}, err
	}
	assignDelivery, err := commands.NewAssignDeliveryCommandHandler(c.vehicleCache,
		c.assignments, c.selector)
	if err != nil {
		return http.Handlers{}, err
	}
	updateDeliveryStatus, err := commands.NewUpdateDeliveryStatusCommandHandler(c.assignments,
		c.vehicleCache)
	if err != nil {
		return http.Handlers{}, err
	}
	createOrder, err := commands.NewCreateOrderCommandHandler(c.stocks, c.orders,
		c.stockCache, c.locks)
	if err != nil {
		return http.Handlers{}, err
	}
	updatePayment, err := commands.NewUpdatePaymentStatusCommandHandler(c.orders)
	if err != nil {
		return http.Handlers{}, err
	}
	cancelOrder, err := commands.NewCancelOrderCommandHandler(c.stocks, c.orders,
		c.stockCache, c.locks)
	if err != nil {
		return http.Handlers{}, err
	}
	processMessage, err := commands.NewProcessMessageCommandHandler(c.inbox, c.interpreter,
		&createOrder, &updatePayment, &cancelOrder, &assignDelivery, c.customerCache,
		c.configs.AutoProcessMaxValue, c.configs.AutoAssignDelivery, c.logger)
	if err != nil {
		return http.Handlers{}, err
	}

	getAllVehicles, err := queries.NewGetAllVehiclesQueryHandler(c.vehicleCache)
	if err != nil {
		return http.Handlers{}, err
	}
	getVehicle, err := queries.NewGetVehicleQueryHandler(c.vehicleCache)
	if err != nil {
		return http.Handlers{}, err
	}
	getNearby, err := queries.NewGetVehiclesNearLocationQueryHandler(c.vehicleCache)
	if err != nil {
		return http.Handlers{}, err
	}
	getDeliveryInfo, err := queries.NewGetDeliveryInfoQueryHandler(c.assignments, c.vehicleCache)
	if err != nil {
		return http.Handlers{}, err
	}
	getActiveDeliveries, err := queries.NewGetActiveDeliveriesQueryHandler(c.assignments,
		c.vehicleCache)
	if err != nil {
		return http.Handlers{}, err
	}
	optimizeRoute, err := queries.NewOptimizeRouteQueryHandler(c.optimizer)
	if err != nil {
		return http.Handlers{}, err
	}
	parseOrderText, err := queries.NewParseOrderTextQueryHandler(c.interpreter)
	if err != nil {
		return http.Handlers{}, err
	}

	return http.Handlers{
		RecordPosition:       recordPosition,
		UpdateVehicleStatus:  updateVehicleStatus,
		CleanupPositions:     cleanupPositions,
		AssignDelivery:       assignDelivery,
		UpdateDeliveryStatus: updateDeliveryStatus,
		CreateOrder:          createOrder,
		UpdatePayment:        updatePayment,
		CancelOrder:          cancelOrder,
		ProcessMessage:       processMessage,
		GetAllVehicles:       getAllVehicles,
		GetVehicle:           getVehicle,
		GetNearbyVehicles:    getNearby,
		GetDeliveryInfo:      getDeliveryInfo,
		GetActiveDeliveries:  getActiveDeliveries,
		OptimizeRoute:        optimizeRoute,
		ParseOrderText:       parseOrderText,
	}, nil
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	cleanupHandler, err := commands.NewCleanupPositionsCommandHandler(c.vehicleCache)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(cleanupHandler, c.configs.CleanupRetention, c.logger), nil
}

// EnsureSheets seeds the header row of every sheet that is still empty.
// Must run before any repository write: row 0 is the header, and a data row
// landing there would be invisible to every read.
func (c *CompositionRoot) EnsureSheets(ctx context.Context) error {
	return sheetrepo.EnsureHeaders(ctx, c.store)
}

// WarmUp loads every cache once so the first request does not pay the read.
func (c *CompositionRoot) WarmUp(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.vehicleCache.GetAll(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.stockCache.Get(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.customerCache.Get(ctx)
		return err
	})
	return g.Wait()
}
