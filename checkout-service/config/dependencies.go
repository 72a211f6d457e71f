package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/storefront/checkout-system/checkout-service/application"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/checkout-service/handlers"
	"github.com/storefront/checkout-system/checkout-service/infrastructure"
	"github.com/storefront/checkout-system/shared/events"
	"github.com/storefront/checkout-system/shared/httpclient"
	sharedinfra "github.com/storefront/checkout-system/shared/infrastructure"
	"github.com/storefront/checkout-system/shared/logger"
	"github.com/storefront/checkout-system/shared/metrics"
	"github.com/storefront/checkout-system/shared/telemetry"
)

type Dependencies struct {
	// Database (nil with the memory storage driver)
	DB *sqlx.DB

	// Domain
	Catalog  domain.Catalog
	Registry *domain.Registry

	// Repositories
	CheckoutRepository domain.CheckoutRepository
	SessionRepository  domain.SessionRepository

	// Use Cases
	StartCheckout            *application.StartCheckout
	GetCheckout              *application.GetCheckout
	SelectPaymentMethod      *application.SelectPaymentMethod
	ProcessPayment           *application.ProcessPayment
	SelectNotificationMethod *application.SelectNotificationMethod
	ProcessNotification      *application.ProcessNotification
	BackCheckout             *application.BackCheckout
	AbandonCheckout          *application.AbandonCheckout
	ListSessions             *application.ListSessions
	RepeatPurchase           *application.RepeatPurchase

	// HTTP Handlers
	CheckoutHandlers *handlers.CheckoutHandlers

	// Infrastructure
	Logger         logger.Logger
	Metrics        metrics.Recorder
	EventPublisher events.Publisher
	Gateway        *infrastructure.GatewayClient
	Telemetry      *telemetry.Telemetry

	closers []func() error
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Logger = logger.NewZapLogger(config.LogLevel)
	deps.Metrics = metrics.NewPrometheusRecorder()

	tel, telShutdown, err := telemetry.InitTelemetry(ctx, telemetry.Config{
		ServiceName:    config.ServiceName,
		ServiceVersion: "1.0.0",
		OTLPEndpoint:   config.OTLP,
	})
	if err != nil {
		deps.Logger.Warn("telemetry disabled", map[string]any{"error": err.Error()})
	} else {
		deps.Telemetry = tel
		deps.closers = append(deps.closers, func() error {
			telShutdown()
			return nil
		})
	}

	// Event publisher
	switch config.Events.Driver {
	case "sns":
		publisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
		if err != nil {
			return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
		}
		deps.EventPublisher = publisher
		deps.closers = append(deps.closers, publisher.Close)
	default:
		deps.EventPublisher = events.NoopPublisher{}
	}

	// Session storage
	switch config.Storage.Driver {
	case "postgres":
		db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		deps.DB = db
		deps.closers = append(deps.closers, db.Close)
		deps.SessionRepository = infrastructure.NewPostgresSessionRepository(db)
	default:
		deps.SessionRepository = infrastructure.NewMemorySessionRepository()
	}

	// Wizard state is always in-memory; it never outlives the process
	deps.CheckoutRepository = infrastructure.NewMemoryCheckoutRepository()

	deps.Catalog = domain.DefaultCatalog()

	deps.Gateway = infrastructure.NewGatewayClient(
		config.Gateway.BaseURL,
		httpclient.New(config.GatewayTimeout()),
		deps.Logger,
		deps.Metrics,
	)

	deps.Registry = domain.NewRegistry(
		[]domain.PaymentFactory{
			infrastructure.NewCreditCardFactory(deps.Gateway),
			infrastructure.NewPayPalFactory(deps.Gateway),
			infrastructure.NewBankTransferFactory(deps.Gateway),
		},
		[]domain.NotificationFactory{
			infrastructure.NewEmailFactory(deps.Gateway),
			infrastructure.NewSmsFactory(deps.Gateway),
			infrastructure.NewPushFactory(deps.Gateway),
			infrastructure.NewWhatsappFactory(deps.Gateway),
		},
	)

	inflight := application.NewInflightCalls()

	// Use cases
	deps.StartCheckout = application.NewStartCheckout(deps.Catalog, deps.CheckoutRepository, deps.EventPublisher, deps.Metrics, deps.Logger)
	deps.GetCheckout = application.NewGetCheckout(deps.CheckoutRepository)
	deps.SelectPaymentMethod = application.NewSelectPaymentMethod(deps.CheckoutRepository, deps.Registry)
	deps.ProcessPayment = application.NewProcessPayment(deps.CheckoutRepository, deps.Registry, deps.EventPublisher, inflight, deps.Metrics, deps.Logger)
	deps.SelectNotificationMethod = application.NewSelectNotificationMethod(deps.CheckoutRepository, deps.Registry)
	deps.ProcessNotification = application.NewProcessNotification(deps.CheckoutRepository, deps.SessionRepository, deps.Registry, deps.EventPublisher, inflight, deps.Metrics, deps.Logger)
	deps.BackCheckout = application.NewBackCheckout(deps.CheckoutRepository)
	deps.AbandonCheckout = application.NewAbandonCheckout(deps.CheckoutRepository, deps.EventPublisher, inflight, deps.Logger)
	deps.ListSessions = application.NewListSessions(deps.SessionRepository)
	deps.RepeatPurchase = application.NewRepeatPurchase(deps.SessionRepository, deps.Registry, deps.EventPublisher, deps.Metrics, deps.Logger)

	// Handlers
	deps.CheckoutHandlers = handlers.NewCheckoutHandlers(
		deps.Catalog,
		deps.Registry,
		deps.StartCheckout,
		deps.GetCheckout,
		deps.SelectPaymentMethod,
		deps.ProcessPayment,
		deps.SelectNotificationMethod,
		deps.ProcessNotification,
		deps.BackCheckout,
		deps.AbandonCheckout,
		deps.ListSessions,
		deps.RepeatPurchase,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error
	for _, close := range d.closers {
		if err := close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}
	return nil
}
