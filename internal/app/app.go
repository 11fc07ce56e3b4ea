package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gebeta/delivery/internal/dal/expo"
	"github.com/gebeta/delivery/internal/dal/postgres"
	"github.com/gebeta/delivery/internal/dal/rabbitmq"
	outboxrepo "github.com/gebeta/delivery/internal/dal/repositories/outbox/postgres"
	"github.com/gebeta/delivery/internal/otel"
	"github.com/gebeta/delivery/internal/service/services/cartsvc"
	"github.com/gebeta/delivery/internal/service/services/catalogsvc"
	"github.com/gebeta/delivery/internal/service/services/favoritesvc"
	"github.com/gebeta/delivery/internal/service/services/notificationsvc"
	"github.com/gebeta/delivery/internal/service/services/ordersvc"
	"github.com/gebeta/delivery/internal/service/services/paymentsvc"
	"github.com/gebeta/delivery/internal/service/services/ratingsvc"
	"github.com/gebeta/delivery/internal/service/services/usersvc"
	httptransport "github.com/gebeta/delivery/internal/transport/http"
	outboxworker "github.com/gebeta/delivery/internal/worker/outbox"
	pushworker "github.com/gebeta/delivery/internal/worker/push"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	pushWorker     *pushworker.Worker
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()

	notificationSvc := notificationsvc.MustNewNotificationService(
		notificationsvc.WithPostgresClient(postgresClient),
		notificationsvc.WithRabbitMQClient(rabbitMqClient),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithNotifier(notificationSvc),
	)

	cartSvc := cartsvc.MustNewCartService(
		cartsvc.WithPostgresClient(postgresClient),
	)

	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithPostgresClient(postgresClient),
	)

	favoriteSvc := favoritesvc.MustNewFavoriteService(
		favoritesvc.WithPostgresClient(postgresClient),
	)

	ratingSvc := ratingsvc.MustNewRatingService(
		ratingsvc.WithPostgresClient(postgresClient),
	)

	userSvc := usersvc.MustNewUserService(
		usersvc.WithPostgresClient(postgresClient),
	)

	paymentSvc := paymentsvc.MustNewPaymentService()

	transport := httptransport.NewHTTPTransport(
		cartSvc,
		orderSvc,
		catalogSvc,
		favoriteSvc,
		notificationSvc,
		ratingSvc,
		userSvc,
		paymentSvc,
	)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(
		outboxrepo.NewOutboxRepository(postgresClient.Pool()),
		rabbitMqClient,
	)

	pushWorker := pushworker.NewWorker(rabbitMqClient, expo.NewClient())

	return &App{
		transport:      transport,
		outboxWorker:   outboxWorker,
		pushWorker:     pushWorker,
		rabbitMqClient: rabbitMqClient,
		postgresClient: postgresClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting outbox worker")
		a.outboxWorker.Start(ctx)
	}()

	go func() {
		slog.Info("Starting push worker")
		if err := a.pushWorker.Run(ctx); err != nil {
			slog.Error("Push worker error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown stops components in dependency order: HTTP first so no
// new work arrives, then the workers, then the broker and database
// connections.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.outboxWorker.Stop()
	slog.Info("Outbox worker stopped gracefully")

	if err := a.pushWorker.Shutdown(); err != nil {
		slog.Error("Push worker shutdown error", "error", err)
	} else {
		slog.Info("Push worker stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	select {
	case <-ctx.Done():
		slog.Warn("Shutdown timeout exceeded")
	default:
		slog.Info("Application shutdown complete")
	}
}
