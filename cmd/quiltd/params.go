package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quiltkit/quiltd/pkg/config"
)

// NewTileHeightCommand .
func NewTileHeightCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tile-height [pixels]",
		GroupID: gParameters,
		Short:   "Get or set the per-view tile height",
		Long: `Get or set the per-view tile height in pixels.

Tile width, framebuffer size and the quilt grid are all derived from this
value together with the display aspect; see 'quiltd quilt'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				snap, err := apiClient.GetConfig()
				if err != nil {
					return fmt.Errorf("failed to get config: %v", err)
				}
				cmd.Println(snap.TileHeight)
				return nil
			}

			v, err := parseIntArg(args, "tile height")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetTileHeight(v)
			if err != nil {
				return fmt.Errorf("failed to set tile height: %v", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set tile height to %d", v)

			return nil
		},
	}
}

// NewNumViewsCommand .
func NewNumViewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "num-views [count]",
		GroupID: gParameters,
		Short:   "Get or set the number of rendered views",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				snap, err := apiClient.GetConfig()
				if err != nil {
					return fmt.Errorf("failed to get config: %v", err)
				}
				cmd.Println(snap.NumViews)
				return nil
			}

			v, err := parseIntArg(args, "view count")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetNumViews(v)
			if err != nil {
				return fmt.Errorf("failed to set num views: %v", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set num views to %d", v)

			return nil
		},
	}
}

// NewInlineViewCommand .
func NewInlineViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "inline-view [mode]",
		GroupID: gParameters,
		Short:   "Get or set the inline view mode",
		Long: `Get or set the inline view mode: 0 shows the raw view grid, 1 the
lenticular-swizzled output, 2 a single centered view.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				snap, err := apiClient.GetConfig()
				if err != nil {
					return fmt.Errorf("failed to get config: %v", err)
				}
				cmd.Println(snap.InlineView)
				return nil
			}

			v, err := parseIntArg(args, "inline view mode")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetInlineView(v)
			if err != nil {
				return fmt.Errorf("failed to set inline view: %v", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set inline view to %d", v)

			return nil
		},
	}
}

// NewDepthinessCommand .
func NewDepthinessCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "depthiness [factor]",
		GroupID: gParameters,
		Short:   "Get or set the depthiness multiplier",
		Long: `Get or set the depthiness multiplier.

Depthiness scales the view cone and with it the perceived depth. 1.0 is the
device's native cone; larger values exaggerate depth at the cost of artifacts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				snap, err := apiClient.GetConfig()
				if err != nil {
					return fmt.Errorf("failed to get config: %v", err)
				}
				cmd.Println(snap.Depthiness)
				return nil
			}

			v, err := parseFloatArg(args, "depthiness")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetDepthiness(v)
			if err != nil {
				return fmt.Errorf("failed to set depthiness: %v", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set depthiness to %g", v)

			return nil
		},
	}
}

// NewFovyCommand .
func NewFovyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "fovy [radians]",
		GroupID: gParameters,
		Short:   "Get or set the vertical field of view in radians",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				snap, err := apiClient.GetConfig()
				if err != nil {
					return fmt.Errorf("failed to get config: %v", err)
				}
				cmd.Println(snap.Fovy)
				return nil
			}

			v, err := parseFloatArg(args, "fovy")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetFovy(v)
			if err != nil {
				return fmt.Errorf("failed to set fovy: %v", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set fovy to %g", v)

			return nil
		},
	}
}

// NewTargetCommand .
func NewTargetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "target [x y z diam]",
		GroupID: gParameters,
		Short:   "Get or set the camera target position and diameter",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				snap, err := apiClient.GetConfig()
				if err != nil {
					return fmt.Errorf("failed to get config: %v", err)
				}
				cmd.Printf("%g %g %g %g\n", snap.TargetX, snap.TargetY, snap.TargetZ, snap.TargetDiam)
				return nil
			}

			if len(args) != 4 {
				return fmt.Errorf("invalid number of arguments, want: x y z diam")
			}

			var t config.Target
			for i, dst := range []*float64{&t.X, &t.Y, &t.Z, &t.Diam} {
				v, err := parseFloatArg(args[i:i+1], "target component")
				if err != nil {
					return err
				}
				*dst = v
			}

			ret, err := apiClient.SetTarget(t)
			if err != nil {
				return fmt.Errorf("failed to set target: %v", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set target to (%g, %g, %g) diam %g", t.X, t.Y, t.Z, t.Diam)

			return nil
		},
	}
}

// NewTrackballCommand .
func NewTrackballCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "trackball [x y]",
		GroupID: gParameters,
		Short:   "Get or set the trackball rotation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				snap, err := apiClient.GetConfig()
				if err != nil {
					return fmt.Errorf("failed to get config: %v", err)
				}
				cmd.Printf("%g %g\n", snap.TrackballX, snap.TrackballY)
				return nil
			}

			if len(args) != 2 {
				return fmt.Errorf("invalid number of arguments, want: x y")
			}

			var t config.Trackball
			for i, dst := range []*float64{&t.X, &t.Y} {
				v, err := parseFloatArg(args[i:i+1], "trackball component")
				if err != nil {
					return err
				}
				*dst = v
			}

			ret, err := apiClient.SetTrackball(t)
			if err != nil {
				return fmt.Errorf("failed to set trackball: %v", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set trackball to (%g, %g)", t.X, t.Y)

			return nil
		},
	}
}

// NewRefreshCommand .
func NewRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "refresh",
		GroupID: gBasic,
		Short:   "Re-query the bridge service for device calibration now",
		RunE: func(_ *cobra.Command, _ []string) error {
			ret, err := apiClient.Refresh()
			if err != nil {
				return fmt.Errorf("failed to refresh calibration: %v", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully refreshed calibration")

			return nil
		},
	}
}
