package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/quiltkit/quiltd/pkg/bridge"
	"github.com/quiltkit/quiltd/pkg/config"
	"github.com/quiltkit/quiltd/pkg/events"
)

var (
	store    *config.Store
	hub      *events.Hub
	provider *bridge.Provider
)

// Options configures Run.
type Options struct {
	SocketPath       string // unix socket the daemon serves on
	BridgeSocketPath string // unix socket of the vendor bridge service
	ResyncCron       string // optional cron spec for periodic bridge re-sync
	AllowNonRoot     bool
}

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/config", getConfig)
	router.GET("/quilt", getQuilt)
	router.GET("/calibration", getCalibration)
	router.PUT("/calibration", setCalibration) // Should not be called by user.
	router.GET("/tile-height", getTileHeight)
	router.PUT("/tile-height", setTileHeight)
	router.GET("/num-views", getNumViews)
	router.PUT("/num-views", setNumViews)
	router.GET("/inline-view", getInlineView)
	router.PUT("/inline-view", setInlineView)
	router.GET("/depthiness", getDepthiness)
	router.PUT("/depthiness", setDepthiness)
	router.GET("/fovy", getFovy)
	router.PUT("/fovy", setFovy)
	router.GET("/trackball", getTrackball)
	router.PUT("/trackball", setTrackball)
	router.GET("/target", getTarget)
	router.PUT("/target", setTarget)
	router.POST("/refresh", refreshCalibration)
	router.GET("/events", getEvents)
	router.GET("/version", getVersion)

	return router
}

// Run starts the daemon and blocks until SIGINT/SIGTERM.
func Run(opts Options) error {
	hub = events.NewHub()
	store = config.New(hub)
	provider = bridge.NewProvider(opts.BridgeSocketPath)

	router := setupRoutes()

	logrus.WithFields(store.LogrusFields()).Info("config store initialized")

	// Observability tap: log every configuration change.
	hub.Subscribe(func(e events.Event) {
		ev, err := events.DecodeAs[events.ConfigChangedEvent](e)
		if err != nil {
			return
		}
		logrus.WithField("field", ev.Field).Debug("configuration changed")
	})

	// Initial calibration sync, asynchronous by design: the daemon is fully
	// usable with the placeholder record while the bridge answers.
	go func() {
		if err := provider.Sync(store); err != nil {
			logrus.WithError(err).Warnf("initial calibration sync failed (%s)", provider.Describe())
		}
	}()

	var sched *Scheduler
	if opts.ResyncCron != "" {
		sched = NewScheduler(
			func() error { return provider.Sync(store) },
			func(data any) { logrus.Errorf("scheduled bridge sync: %v", data) },
		)
		if err := sched.Schedule(opts.ResyncCron); err != nil {
			return pkgerrors.Wrap(err, "invalid resync cron expression")
		}
		sched.Start()
		next, _ := sched.Status()
		logrus.Infof("bridge re-sync scheduled, next run at %s", next.Format(time.DateTime))
	}

	srv := &http.Server{
		Handler: router,
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", opts.SocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if opts.AllowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", opts.SocketPath)
		if err := os.Chmod(opts.SocketPath, 0777); err != nil {
			logrus.Fatal(err)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	if sched != nil {
		logrus.Info("stopping re-sync scheduler")
		sched.Stop()
	}

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}
