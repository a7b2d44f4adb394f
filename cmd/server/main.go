package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"rbkv/api/grpcserver"
	"rbkv/config"
	"rbkv/infra/kafka"
	"rbkv/infra/logutil"
	"rbkv/jobs/broadcaster"
	"rbkv/service"
)

func main() {
	path := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.Load(*path); err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(2)
		}
	}

	log, err := logutil.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// ---------------- Metrics ----------------

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// ---------------- Service ----------------

	svc := service.New(service.Options{
		MaxEntries:     cfg.Store.MaxEntries,
		OutboxCapacity: cfg.Store.OutboxCapacity,
	}, service.NewMetrics(reg), log)

	// ---------------- Background Jobs ----------------

	if cfg.Broadcast.Enabled {
		b := cfg.Broadcast
		sender, err := kafka.Open(b.Driver, b.Brokers, b.Topic)
		if err != nil {
			return err
		}
		defer sender.Close()

		bc := broadcaster.New(svc, sender, b.Interval.Duration, b.Batch, log.Named("broadcaster"))
		go bc.Run(ctx)
	} else {
		// nothing drains the outbox, so acknowledge events as they land
		go discardOutbox(ctx, svc)
	}

	// ---------------- HTTP ----------------

	var metricsSrv *http.Server
	if cfg.Server.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		metricsSrv = &http.Server{
			Addr:              cfg.Server.MetricsListen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		return errors.Wrapf(err, "listen %s", cfg.Server.Listen)
	}
	grpcSrv := grpc.NewServer(grpc.UnaryInterceptor(grpcserver.LoggingInterceptor(log.Named("grpc"))))
	grpcserver.Register(grpcSrv, grpcserver.NewServer(svc, log.Named("grpc")))

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		grpcSrv.GracefulStop()
		if metricsSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}
	}()

	log.Info("rbkv running",
		zap.String("listen", cfg.Server.Listen),
		zap.String("metrics", cfg.Server.MetricsListen),
		zap.Bool("broadcast", cfg.Broadcast.Enabled),
	)
	return grpcSrv.Serve(lis)
}

func discardOutbox(ctx context.Context, svc *service.KVService) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.Ack(svc.Revision())
		}
	}
}
