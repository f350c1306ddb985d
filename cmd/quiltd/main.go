package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quiltkit/quiltd/pkg/client"
	"github.com/quiltkit/quiltd/pkg/version"
)

var (
	logLevel         = "info"
	unixSocketPath   = "/var/run/quiltd.sock"
	bridgeSocketPath = "/var/run/lkg-bridge.sock"
)

var (
	gBasic        = "Basic:"
	gParameters   = "Parameters:"
	commandGroups = []string{
		gBasic,
		gParameters,
	}
)

// apiClient is rebuilt in PersistentPreRunE once --socket has been parsed.
var apiClient = client.NewClient(unixSocketPath)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: quiltd daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'quiltd daemon' (as root), or point --socket at the right path.")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or run the daemon with '--allow-non-root-access' to grant permissions to your user")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiltd",
		Short: "quiltd serves lenticular display calibration and quilt render parameters",
		Long: `quiltd owns the configuration of a lenticular multi-view display: the
calibration record reported by the vendor bridge service, the adjustable
render parameters, and the quilt/framebuffer geometry derived from both.

Renderers read the derived geometry over the daemon API and subscribe to
change events; this CLI is the human-facing client.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			apiClient = client.NewClient(unixSocketPath)
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&unixSocketPath, "socket", unixSocketPath, "unix socket of the quiltd daemon")

	for _, g := range commandGroups {
		cmd.AddGroup(&cobra.Group{ID: g, Title: g})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewStatusCommand(),
		NewQuiltCommand(),
		NewRefreshCommand(),
		NewWatchCommand(),
		NewTileHeightCommand(),
		NewNumViewsCommand(),
		NewInlineViewCommand(),
		NewDepthinessCommand(),
		NewFovyCommand(),
		NewTargetCommand(),
		NewTrackballCommand(),
	)

	return cmd
}

// NewVersionCommand .
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s\n", version.Version)

			if daemonVersion, err := apiClient.GetVersion(); err == nil {
				if daemonVersion != version.Version {
					logrus.WithFields(logrus.Fields{
						"clientVersion": version.Version,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon. quiltd may not work as expected.")
				}
			}
		},
	}
}
