package storefront

import (
	"time"

	"github.com/google/wire"

	cartHTTP "github.com/tair/littleones/internal/cart/delivery/http"
	catalogHTTP "github.com/tair/littleones/internal/catalog/delivery/http"
	catalog "github.com/tair/littleones/internal/catalog/domain"
	"github.com/tair/littleones/internal/catalog/repository"
	catalogQuery "github.com/tair/littleones/internal/catalog/usecase/query"
	checkoutHTTP "github.com/tair/littleones/internal/checkout/delivery/http"
	checkoutCommand "github.com/tair/littleones/internal/checkout/usecase/command"
	checkoutQuery "github.com/tair/littleones/internal/checkout/usecase/query"
	contactHTTP "github.com/tair/littleones/internal/contact/delivery/http"
	contactCommand "github.com/tair/littleones/internal/contact/usecase/command"
	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/internal/session"
	"github.com/tair/littleones/kafka"
	"github.com/tair/littleones/pkg/middleware"
)

// Delays are the simulated backend latencies
type Delays struct {
	Checkout   time.Duration
	Contact    time.Duration
	Newsletter time.Duration
}

// Dependencies are the process-level objects built by main
type Dependencies struct {
	Catalog    *repository.Catalog
	Sessions   *session.Manager
	Recorder   *notify.Recorder
	Notifier   notify.Notifier
	Publisher  kafka.EventPublisher
	Limiter    *middleware.RateLimiter
	Cache      *middleware.ResponseCache
	Delays     Delays
	Checks     []HealthCheck
	Middleware middleware.Config
}

// ProvideProductRepository exposes the catalog through its repository interface
func ProvideProductRepository(c *repository.Catalog) catalog.ProductRepository {
	return c
}

// Query Handlers Providers
func ProvideListProductsHandler(repo catalog.ProductRepository) *catalogQuery.ListProductsHandler {
	return catalogQuery.NewListProductsHandler(repo)
}

func ProvideGetProductHandler(c *repository.Catalog) *catalogQuery.GetProductHandler {
	return catalogQuery.NewGetProductHandler(c, repository.RelatedCount)
}

// Command Handlers Providers
func ProvidePlaceOrderHandler(d Delays, publisher kafka.EventPublisher, notifier notify.Notifier) *checkoutCommand.PlaceOrderHandler {
	return checkoutCommand.NewPlaceOrderHandler(d.Checkout, publisher, notifier)
}

func ProvideSubmitMessageHandler(d Delays, publisher kafka.EventPublisher, notifier notify.Notifier) *contactCommand.SubmitMessageHandler {
	return contactCommand.NewSubmitMessageHandler(d.Contact, publisher, notifier)
}

func ProvideSubscribeHandler(d Delays, publisher kafka.EventPublisher, notifier notify.Notifier) *contactCommand.SubscribeHandler {
	return contactCommand.NewSubscribeHandler(d.Newsletter, publisher, notifier)
}

// Wire sets
var DependencySet = wire.NewSet(
	wire.FieldsOf(new(*Dependencies), "Catalog", "Sessions", "Recorder", "Notifier", "Publisher", "Limiter", "Cache", "Delays", "Checks", "Middleware"),
	ProvideProductRepository,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListProductsHandler,
	ProvideGetProductHandler,
	checkoutQuery.NewGetCheckoutHandler,
	checkoutQuery.NewGetCartHandler,
)

var CommandHandlerSet = wire.NewSet(
	ProvidePlaceOrderHandler,
	ProvideSubmitMessageHandler,
	ProvideSubscribeHandler,
)

var DeliverySet = wire.NewSet(
	catalogHTTP.NewCatalogHandler,
	cartHTTP.NewCartHandler,
	checkoutHTTP.NewCheckoutHandler,
	contactHTTP.NewContactHandler,
	NewHandler,
	wire.Struct(new(Handlers), "*"),
)

var AllHandlersSet = wire.NewSet(
	DependencySet,
	QueryHandlerSet,
	CommandHandlerSet,
	DeliverySet,
)
