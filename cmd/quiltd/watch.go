package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quiltkit/quiltd/pkg/events"
)

// NewWatchCommand .
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		GroupID: gBasic,
		Short:   "Stream configuration change events from the daemon",
		Long: `Stream configuration change events from the daemon until interrupted.

Every mutation of a render parameter or of the calibration record produces
exactly one event; no batching is performed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logrus.Info("watching for configuration changes, ctrl-c to stop")

			return apiClient.WatchEvents(ctx, func(ev events.Event) {
				payload, err := events.DecodeAs[events.ConfigChangedEvent](ev)
				if err != nil {
					logrus.WithError(err).Warn("undecodable event")
					return
				}
				cmd.Printf("%s %s %s\n",
					time.Unix(payload.Ts, 0).Format(time.TimeOnly),
					ev.Name,
					payload.Field,
				)
			})
		},
	}
}
