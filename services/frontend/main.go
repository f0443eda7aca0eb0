package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"
	"github.com/ramtechno90/Menu-app/pkg"

	"github.com/ramtechno90/Menu-app/services/frontend/internal/cart"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/frontend"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/menu"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/remote"
)

const (
	appNamespace = "FRONTEND"
	appName      = "frontend"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	settings, err := frontend.LoadSettings(config)
	if err != nil {
		log.Fatalf("%s(%s) invalid settings: %v", appName, appVersion, err)
	}
	if settings.BistroURL == "" {
		log.Fatalf("%s(%s) services.bistro.url is required", appName, appVersion)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	bistroClient := remote.NewClient(settings.BistroURL, remote.Options{
		Timeout:     settings.BistroTimeout,
		ReadRetries: settings.BistroReadRetries,
	})

	deps := frontend.Deps{
		Orders:  orders.NewOrderDataAccess(bistroClient),
		Configs: orders.NewConfigDataAccess(bistroClient),
		Cart:    cart.NewCartDataAccess(bistroClient),
		Menu:    menu.NewMenuDataAccess(bistroClient),
	}

	lifecycles := []interface{}{}

	// Paid notifications are fanned out on NATS only when enabled.
	if settings.NATSEnabled {
		pub, err := pkg.NewNATSPublisher(settings.NATSURL)
		if err != nil {
			log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
		}
		deps.Publisher = pub
		lifecycles = append(lifecycles, apt.LifecycleHooks{
			OnStop: func(context.Context) error {
				return pub.Close()
			},
		})
	}

	service := frontend.NewService(deps, settings, logger)
	lifecycles = append([]interface{}{service}, lifecycles...)

	handler := frontend.NewHandler(service, logger)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", handler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
