package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"golang.org/x/sync/errgroup"

	"github.com/freekieb7/httpcore/filesystem"
	"github.com/freekieb7/httpcore/handler"
	"github.com/freekieb7/httpcore/http"
)

const name = "httpcore"

type config struct {
	Addr            string
	PublicPath      string
	DataPath        string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
	LogLevel        slog.Level
	Telemetry       bool
}

func main() {
	app := cli.NewApp()
	app.Name = name
	app.Usage = "Serve static pages and the shipping web service over HTTP/1.1"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "addr",
			Value:  "127.0.0.1:3000",
			Usage:  "Address to listen on",
			EnvVar: "HTTPCORE_ADDR",
		},
		cli.StringFlag{
			Name:   "public-path",
			Value:  "public",
			Usage:  "Directory holding the static pages",
			EnvVar: "PUBLIC_PATH",
		},
		cli.StringFlag{
			Name:   "data-path",
			Value:  "data",
			Usage:  "Directory holding the web service data",
			EnvVar: "DATA_PATH",
		},
		cli.DurationFlag{
			Name:   "read-timeout",
			Value:  http.DefaultReadTimeout,
			Usage:  "Deadline for reading a request and writing its response",
			EnvVar: "HTTPCORE_READ_TIMEOUT",
		},
		cli.DurationFlag{
			Name:   "shutdown-timeout",
			Value:  10 * time.Second,
			Usage:  "How long to wait for in-flight connections on shutdown",
			EnvVar: "HTTPCORE_SHUTDOWN_TIMEOUT",
		},
		cli.StringFlag{
			Name:   "log-level",
			Value:  "info",
			Usage:  "Log level (debug, info, warn, error)",
			EnvVar: "HTTPCORE_LOG_LEVEL",
		},
		cli.BoolFlag{
			Name:   "otel",
			Usage:  "Export traces, metrics and logs over OTLP (configured by the OTEL_* variables)",
			EnvVar: "HTTPCORE_OTEL",
		},
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := configFromContext(c)
		if err != nil {
			return err
		}
		return run(context.Background(), cfg)
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func configFromContext(c *cli.Context) (config, error) {
	cfg := config{
		Addr:            c.String("addr"),
		PublicPath:      c.String("public-path"),
		DataPath:        c.String("data-path"),
		ReadTimeout:     c.Duration("read-timeout"),
		ShutdownTimeout: c.Duration("shutdown-timeout"),
		Telemetry:       c.Bool("otel"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func run(ctx context.Context, cfg config) (err error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if cfg.Telemetry {
		var shutdown func(context.Context) error
		shutdown, err = setupOTelSDK(ctx)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, shutdown(context.Background()))
		}()

		logger = otelslog.NewLogger(name)
	}
	slog.SetDefault(logger)

	public := filesystem.NewLocalFileSystem(cfg.PublicPath)
	data := filesystem.NewLocalFileSystem(cfg.DataPath)

	router := http.NewRouter(
		handler.StaticPageHandler{Public: public},
		handler.WebServiceHandler{Data: data, Public: public},
		handler.PageNotFoundHandler{Public: public},
	)
	router.Logger = logger
	router.Use(http.RecoverMiddleware(logger))

	server := http.NewServer(name, router)
	server.Logger = logger
	server.ReadTimeout = cfg.ReadTimeout

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe(gctx, cfg.Addr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "server", name)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
