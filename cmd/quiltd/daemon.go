package main

import (
	"github.com/spf13/cobra"

	"github.com/quiltkit/quiltd/pkg/daemon"
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	opts := daemon.Options{}

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the quiltd daemon in the foreground",
		Long: `Run the quiltd daemon in the foreground.

The daemon connects to the vendor bridge service once at startup to obtain
the attached display's calibration. Until (and unless) the bridge answers,
a built-in placeholder calibration is served, so renderers can always start.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Serve on the same --socket the client commands dial.
			opts.SocketPath = unixSocketPath
			return daemon.Run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.BridgeSocketPath, "bridge-socket", bridgeSocketPath, "unix socket of the vendor display bridge service")
	flags.StringVar(&opts.ResyncCron, "resync", "", "cron expression for periodic calibration re-sync (default: sync once at startup only)")
	flags.BoolVar(&opts.AllowNonRoot, "allow-non-root-access", false, "allow non-root users to access the daemon socket")

	return cmd
}
