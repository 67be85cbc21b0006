// Command serve frees the web server's TCP port and launches the
// application server, exiting with the server's exit code.
//
// Usage:
//
//	serve -port 8002 -dir /srv/farmactiva uvicorn app.main:app --host 0.0.0.0 --port 8002
//
// Reclamation is best-effort: if a holder survives, the server's own
// bind failure is what surfaces.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmactiva/schemactl/bootstrap"
	"github.com/farmactiva/schemactl/internal/logging"
	"github.com/farmactiva/schemactl/metrics"
	"github.com/farmactiva/schemactl/pkg/version"
)

func main() {
	var (
		port        = flag.Uint("port", 8002, "TCP port to reclaim before starting the server")
		dir         = flag.String("dir", "", "Working directory for the server process")
		wait        = flag.Bool("wait", false, "Poll until the port is free after reclaiming")
		waitTimeout = flag.Duration("wait-timeout", 10*time.Second, "How long -wait polls before giving up")
		metricsAddr = flag.String("metrics-addr", "", "Expose prometheus metrics on this address (e.g. :9090)")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
	)

	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no server command. Usage: serve [flags] command [args...]")
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := logging.New(os.Stderr, level)
	collector := metrics.NewCollector("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *metricsAddr != "" {
		server := metrics.NewServer(*metricsAddr)
		server.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	logger.Info(ctx, "schemactl serve", "version", version.Version, "port", *port)

	launcher := bootstrap.NewLauncher(bootstrap.LauncherConfig{
		Port:    uint32(*port),
		Command: args[0],
		Args:    args[1:],
		Dir:     *dir,
		Reclaimer: bootstrap.NewReclaimer(bootstrap.ReclaimerConfig{
			Logger:    logger,
			Collector: collector,
		}),
		WaitReady:    *wait,
		ReadyTimeout: *waitTimeout,
		Logger:       logger,
		Collector:    collector,
	})

	code, err := launcher.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}
