package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	"github.com/BruksfildServices01/studio-scheduler/internal/config"
	appointmentDomain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	inventoryDomain "github.com/BruksfildServices01/studio-scheduler/internal/domain/inventory"
	"github.com/BruksfildServices01/studio-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/studio-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/studio-scheduler/internal/metrics"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/notify"
	ucAppointment "github.com/BruksfildServices01/studio-scheduler/internal/usecase/appointment"
	ucInventory "github.com/BruksfildServices01/studio-scheduler/internal/usecase/inventory"
)

// Runtime reúne os colaboradores de processo criados no main.
type Runtime struct {
	Cache    appointmentDomain.SlotCache
	Notifier notify.Notifier
	Audit    audit.Recorder
	Metrics  *metrics.Collector
	Log      zerolog.Logger
	Location *time.Location
}

type TxRunner interface {
	appointmentDomain.TxRunner
	inventoryDomain.LedgerTxRunner
}

// Stores são as portas de persistência usadas pelas rotas.
type Stores struct {
	Appointments appointmentDomain.Repository
	Inventory    inventoryDomain.Repository
	Tx           TxRunner
	Audit        audit.Store
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rt Runtime) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	stores := Stores{
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Inventory:    infraRepo.NewInventoryGormRepository(db),
		Tx:           infraRepo.NewTxRunner(db),
		Audit:        audit.New(db),
	}

	Mount(r, stores, cfg.JWTSecret, rt)
}

func Mount(r *gin.Engine, stores Stores, jwtSecret string, rt Runtime) {

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	ledger := ucInventory.NewLedger(rt.Metrics, rt.Log)

	deps := ucAppointment.Deps{
		Repo:     stores.Appointments,
		Tx:       stores.Tx,
		Ledger:   ledger,
		Cache:    rt.Cache,
		Notifier: rt.Notifier,
		Audit:    rt.Audit,
		Metrics:  rt.Metrics,
		Log:      rt.Log,
		Location: rt.Location,
	}

	createUC := ucAppointment.NewCreateAppointment(deps)
	availabilityUC := ucAppointment.NewGetAvailability(deps)

	items := ucInventory.NewItems(
		stores.Inventory,
		stores.Tx,
		stores.Appointments,
		rt.Notifier,
		rt.Audit,
		rt.Metrics,
		rt.Log,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		ucAppointment.NewUpdateStatus(deps),
		ucAppointment.NewDeleteAppointment(deps),
		ucAppointment.NewListAppointments(deps),
		ucAppointment.NewRevenue(deps),
		rt.Location,
	)
	publicHandler := handlers.NewPublicHandler(availabilityUC, createUC, rt.Location)
	operatingHoursHandler := handlers.NewOperatingHoursHandler(ucAppointment.NewOperatingHours(deps))
	inventoryHandler := handlers.NewInventoryHandler(items)
	auditLogsHandler := handlers.NewAuditLogsHandler(stores.Audit, stores.Appointments, rt.Location)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:businessId/availability", publicHandler.Availability)
			publicAPI.POST("/:businessId/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/company/:id", appointmentHandler.ListByCompany)
			secured.GET("/appointments/company/:id/revenue", appointmentHandler.Revenue)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// COMPANY
			// ------------------------------
			secured.GET("/company/:id/operating-hours", operatingHoursHandler.Get)
			secured.PUT("/company/:id/operating-hours", operatingHoursHandler.Update)

			secured.GET("/company/:id/inventory", inventoryHandler.List)
			secured.POST("/company/:id/inventory", inventoryHandler.Create)
			secured.PATCH("/company/:id/inventory/:itemId", inventoryHandler.Update)
			secured.DELETE("/company/:id/inventory/:itemId", inventoryHandler.Delete)
			secured.POST("/company/:id/inventory/:itemId/movements", inventoryHandler.RegisterMovement)
			secured.GET("/company/:id/inventory/:itemId/logs", inventoryHandler.ListLogs)

			secured.GET("/company/:id/audit-logs", auditLogsHandler.List)
		}
	}
}
