package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookhive/config"
	"bookhive/cron"
	"bookhive/database"
	availabilityRepo "bookhive/database/repository/availability"
	bookingRepo "bookhive/database/repository/booking"
	profileRepo "bookhive/database/repository/profile"
	templateRepo "bookhive/database/repository/template"
	userRepoPkg "bookhive/database/repository/user"
	"bookhive/handlers"
	"bookhive/routes"
	"bookhive/services/availability"
	"bookhive/services/booking"
	"bookhive/services/notification"
	"bookhive/services/template"
	"bookhive/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx := context.Background()
	client, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			logger.Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}()
	db := client.Database(config.AppConfig.DatabaseName)

	utils.InitCache()

	// repositories.
	slotRepo := availabilityRepo.NewMongoAvailabilityRepo(db)
	bkRepo := bookingRepo.NewMongoBookingRepo(db)
	profRepo := profileRepo.NewMongoProfileRepo(db)
	usrRepo := userRepoPkg.NewMongoUserRepo(db)
	tplRepo := templateRepo.NewMongoTemplateRepo(db)

	indexCtx, cancelIndexes := context.WithTimeout(ctx, 30*time.Second)
	defer cancelIndexes()
	if err := slotRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure availability indexes: %v", err)
	}
	if err := bkRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// services.
	notifier := notification.NewAsynqDispatcher(cron.RedisQueueOpt(), logger)
	defer notifier.Close()

	bookingService := &booking.DefaultBookingService{
		Bookings: bkRepo,
		Slots:    slotRepo,
		Profiles: profRepo,
		Users:    usrRepo,
		Notifier: notifier,
		Logger:   logger,
	}
	templateService := &template.DefaultTemplateService{
		Templates: tplRepo,
		Logger:    logger,
	}
	availabilityService := &availability.DefaultAvailabilityService{
		Slots:     slotRepo,
		Bookings:  bkRepo,
		Profiles:  profRepo,
		Templates: tplRepo,
		Cache: &availability.RangeCache{
			Client: utils.GetCacheClient(),
			TTL:    time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
			Logger: logger,
		},
		Logger: logger,
	}

	// background machinery.
	worker := cron.StartNotificationWorker()
	defer worker.Shutdown()
	scheduler := cron.StartReminderScheduler(bkRepo, notifier)
	defer scheduler.Stop()

	// HTTP surface.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	hb := &handlers.HandlerBundle{
		Availability: availabilityService,
		Templates:    templateService,
		Bookings:     bookingService,
		Logger:       logger,
	}
	routes.RegisterRoutes(router, hb)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
