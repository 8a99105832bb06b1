package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/flatshop/shop-service-go/internal/cart"
	"github.com/flatshop/shop-service-go/internal/checkout"
	"github.com/flatshop/shop-service-go/internal/config"
	"github.com/flatshop/shop-service-go/internal/events"
	httpapi "github.com/flatshop/shop-service-go/internal/http"
	"github.com/flatshop/shop-service-go/internal/logger"
	"github.com/flatshop/shop-service-go/internal/order"
	"github.com/flatshop/shop-service-go/internal/product"
	"github.com/flatshop/shop-service-go/internal/storage"
	"github.com/flatshop/shop-service-go/internal/user"
)

func main() {
	cfg := config.Load()
	log := logger.New("shop-service", cfg.LogLevel)

	for _, path := range []string{cfg.ProductDataPath, cfg.CartDataPath, cfg.OrderDataPath, cfg.UserDataPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.Error("create data dir", "path", path, "error", err)
			os.Exit(1)
		}
	}

	productRepo := product.NewRepository(storage.New[product.Product](cfg.ProductDataPath))
	cartRepo := cart.NewRepository(storage.New[cart.Cart](cfg.CartDataPath))
	orderRepo := order.NewRepository(storage.New[order.Order](cfg.OrderDataPath))
	userRepo := user.NewRepository(storage.New[user.User](cfg.UserDataPath))

	var pub checkout.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			log.Error("dial rabbitmq", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		p, err := events.NewPublisher(conn)
		if err != nil {
			log.Error("create publisher", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		pub = p
	}

	checkoutSvc := checkout.NewService(cartRepo, orderRepo, userRepo, pub, log)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:   log,
		Products: productRepo,
		Carts:    cartRepo,
		Orders:   orderRepo,
		Users:    userRepo,
		Checkout: checkoutSvc,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("shop-service listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
