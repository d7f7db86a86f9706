package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/sr"

	"github.com/easyup/storeapi/config"
	"github.com/easyup/storeapi/internal/adapter/cache"
	"github.com/easyup/storeapi/internal/adapter/httphandler"
	"github.com/easyup/storeapi/internal/adapter/kafka"
	"github.com/easyup/storeapi/internal/adapter/storage"
	"github.com/easyup/storeapi/internal/core/port"
	"github.com/easyup/storeapi/internal/core/service"
	"github.com/easyup/storeapi/pkg/schema"
)

type repositories struct {
	products port.ProductsRepository
	cart     port.CartRepository
	users    port.UserDirectory
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqldb      storage.SQLDB
	repos      repositories
	events     kafka.ClientEventsProducer
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initEventsProducer()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb

	var products port.ProductsRepository = storage.NewProductsRepository(sqldb)
	if addr := app.cfg.Cache.Addr; addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		products = cache.NewProductsCache(products, rdb, app.cfg.Cache.TTL)
	}

	app.repos.products = products
	app.repos.cart = storage.NewCartRepository(sqldb)
	app.repos.users = storage.NewUsersRepository(sqldb)
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.ClientEvents + "-value"
	serde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.ClientEvents,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.events = producer
}

func (app *App) initHTTPServer() {
	catalog := service.NewCatalogService(app.repos.products, app.events)
	cart := service.NewCartService(app.repos.cart, catalog, app.events)

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, catalog)
	httphandler.RegisterCart(mux, cart, app.repos.users)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.events.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
