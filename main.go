package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	daytime "github.com/elastic/daytimed/cli"
	"github.com/elastic/daytimed/agent"
	"github.com/elastic/daytimed/cli/fileio"
	"github.com/elastic/daytimed/models"
	"github.com/elastic/daytimed/out"
	"github.com/elastic/daytimed/shutdown"
	"github.com/elastic/daytimed/sock"
	"github.com/elastic/daytimed/status"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "daytimed",
		Usage:     "tells the system date and time to telnet clients",
		ArgsUsage: "<port>",
		Action: func(c *cli.Context) error {
			logger := newLogger()
			defer logger.Sync()

			cfg, err := models.LoadConfig(models.ConfigFile)
			if err != nil {
				logger.Errorw("invalid configuration", "err", err)
				return cli.Exit("", 1)
			}

			d := newDaemon(cfg, out.NewConsole(c.App.Writer), logger)
			stop := d.shutdown.Notify()
			defer stop()
			if code := d.run(c.Args().Slice()); code != 0 {
				return cli.Exit("", code)
			}
			return nil
		},
	}
}

// daemon ties together the lifetime of the process:
// startup checks, serving clients and tearing down.
type daemon struct {
	cfg        models.Config
	console    *out.Console
	logger     *zap.SugaredLogger
	log        *fileio.ActivityLog
	shutdown   *shutdown.Signal
	classifier *status.Classifier
	// called with the bound port once the server is listening
	listening func(port int)
}

func newDaemon(cfg models.Config, console *out.Console, logger *zap.SugaredLogger) *daemon {
	log := fileio.NewActivityLog(cfg.LogFile, logger)
	sig := shutdown.New()
	return &daemon{
		cfg:        cfg,
		console:    console,
		logger:     logger,
		log:        log,
		shutdown:   sig,
		classifier: status.NewClassifier(log, logger, sig, cfg.SessionErrorsFatal),
	}
}

// run serves clients on the port given in args until shutdown, and returns the exit code.
func (d *daemon) run(args []string) int {
	d.log.Record("Open Program")

	port, err := daytime.ResolvePort(args)
	if !d.classifier.Classify(err, status.Port) {
		return 1
	}

	d.log.Record(fmt.Sprintf("Socket Started - port number: %d", port))
	listener, err := sock.Open(port, d.cfg.Backlog, d.classifier, d.shutdown)
	if err != nil {
		return 1
	}
	d.console.Info("Server started on %d...", port)
	if d.listening != nil {
		d.listening(listener.Port())
	}

	tracer := d.startTracer()
	server := daytime.NewServer(listener, d.shutdown, d.classifier, d.log, d.console).
		WithTracer(tracer).
		WithReadBuffer(d.cfg.ReadBuffer)
	if err := server.Serve(); err != nil {
		d.logger.Infow("stopped accepting connections", "err", err)
	}

	if cause := d.shutdown.Cause(); cause != "" {
		d.console.Notice("Graceful Exit with %s", cause)
		d.log.Record("Graceful Exit with " + cause)
	}

	err = listener.Close()
	if err == nil {
		d.console.Notice("Server closed.")
	}
	d.classifier.Classify(err, status.SocketClose)
	tracer.Close()

	d.log.Record("Close Program")
	return 0
}

// startTracer returns nil, tracing nothing, unless an APM Server is configured.
func (d *daemon) startTracer() *agent.Tracer {
	if d.cfg.ApmServerUrl == "" {
		return nil
	}
	tracer, err := agent.NewTracer(out.NewApmLogger(d.logger), d.cfg.ApmServerUrl, d.cfg.ApmSecretToken, d.cfg.ServiceName)
	if err != nil {
		d.logger.Errorw("tracing disabled", "err", err)
		return nil
	}
	d.logger.Infow("tracing sessions", "apm_server_url", d.cfg.ApmServerUrl)
	return tracer
}
