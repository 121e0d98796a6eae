package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/app"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/config"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/controllers"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/gateway"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/middleware"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/routes"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/services"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize tenanttrack-api:", err)
	}
	defer application.Close()

	propRepo := repositories.NewPropertyRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	payRepo := repositories.NewPaymentRepository(application.DB)
	staffRepo := repositories.NewStaffRepository(application.DB)
	maintRepo := repositories.NewMaintenanceRequestRepository(application.DB)

	var sgClient *sendgrid.Client
	if cfg.SendGridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	var twClient *twilio.RestClient
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	notifier := gateway.NewNotifier(sgClient, twClient, cfg.SendGridFromEmail, cfg.TwilioFromPhone)
	paymentGateway := gateway.NewStripeGateway(cfg.StripeSecretKey)

	scopeService := services.NewRoleScopeService(staffRepo)
	occupancyService := services.NewOccupancyService(unitRepo)
	leaseService := services.NewLeaseService(leaseRepo, tenantRepo, unitRepo, propRepo, scopeService, occupancyService, notifier)
	paymentService := services.NewPaymentService(payRepo, leaseRepo, tenantRepo, scopeService, paymentGateway, notifier)
	tenantService := services.NewTenantService(tenantRepo, unitRepo, scopeService, occupancyService)
	maintenanceService := services.NewMaintenanceService(maintRepo, tenantRepo, staffRepo, scopeService)
	propertyService := services.NewPropertyService(propRepo, unitRepo, staffRepo, occupancyService)
	expiryService := services.NewLeaseExpiryService(leaseRepo, occupancyService)

	if cfg.SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), application.DB); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
		utils.Logger.Info("Seeded test data successfully")
	}

	healthController := controllers.NewHealthController()
	leaseController := controllers.NewLeaseController(leaseService)
	paymentController := controllers.NewPaymentController(paymentService)
	tenantController := controllers.NewTenantController(tenantService)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService)
	propertyController := controllers.NewPropertyController(propertyService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.Check).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Leases, leaseController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.Leases, leaseController.Create).Methods(http.MethodPost)
	secured.HandleFunc(routes.LeaseByID, leaseController.Get).Methods(http.MethodGet)
	secured.HandleFunc(routes.LeaseByID, leaseController.Update).Methods(http.MethodPut)
	secured.HandleFunc(routes.LeaseByID, leaseController.Delete).Methods(http.MethodDelete)
	secured.HandleFunc(routes.LeaseApprove, leaseController.Approve).Methods(http.MethodPost)
	secured.HandleFunc(routes.LeaseDeny, leaseController.Deny).Methods(http.MethodPost)
	secured.HandleFunc(routes.LeaseTerminate, leaseController.Terminate).Methods(http.MethodPost)

	secured.HandleFunc(routes.Payments, paymentController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.Payments, paymentController.CreateManual).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentByID, paymentController.Get).Methods(http.MethodGet)
	secured.HandleFunc(routes.PaymentLeaseCreateIntent, paymentController.CreateLeaseIntent).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentLeaseConfirm, paymentController.ConfirmLeasePayment).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentRentCreateIntent, paymentController.CreateRentIntent).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentRentConfirm, paymentController.ConfirmRentPayment).Methods(http.MethodPost)

	secured.HandleFunc(routes.Tenants, tenantController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.Tenants, tenantController.Create).Methods(http.MethodPost)
	secured.HandleFunc(routes.TenantByID, tenantController.Get).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantByID, tenantController.Update).Methods(http.MethodPut)
	secured.HandleFunc(routes.TenantByID, tenantController.Delete).Methods(http.MethodDelete)

	secured.HandleFunc(routes.MaintenanceRequests, maintenanceController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.MaintenanceRequests, maintenanceController.Create).Methods(http.MethodPost)
	secured.HandleFunc(routes.MaintenanceRequestByID, maintenanceController.Get).Methods(http.MethodGet)
	secured.HandleFunc(routes.MaintenanceRequestByID, maintenanceController.Update).Methods(http.MethodPut)
	secured.HandleFunc(routes.MaintenanceRequestByID, maintenanceController.Delete).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Properties, propertyController.ListProperties).Methods(http.MethodGet)
	secured.HandleFunc(routes.Properties, propertyController.CreateProperty).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertyByID, propertyController.UpdateProperty).Methods(http.MethodPut)
	secured.HandleFunc(routes.PropertyByID, propertyController.DeleteProperty).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PropertyUnits, propertyController.ListUnits).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyUnits, propertyController.CreateUnit).Methods(http.MethodPost)
	secured.HandleFunc(routes.UnitByID, propertyController.UpdateUnit).Methods(http.MethodPut)
	secured.HandleFunc(routes.UnitByID, propertyController.DeleteUnit).Methods(http.MethodDelete)
	secured.HandleFunc(routes.Staff, propertyController.ListStaff).Methods(http.MethodGet)
	secured.HandleFunc(routes.Staff, propertyController.CreateStaff).Methods(http.MethodPost)
	secured.HandleFunc(routes.StaffByID, propertyController.UpdateStaff).Methods(http.MethodPut)
	secured.HandleFunc(routes.StaffByID, propertyController.DeleteStaff).Methods(http.MethodDelete)

	c := cron.New()
	_, expiryErr := c.AddFunc("10 0 * * *", func() {
		if e := expiryService.RunOnce(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled lease expiry sweep failed")
		}
	})
	if expiryErr != nil {
		utils.Logger.WithError(expiryErr).Fatal("Failed to schedule lease expiry cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", config.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("tenanttrack-api failed to start:", err)
	}
}
