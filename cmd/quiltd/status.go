package main

import (
	"github.com/spf13/cobra"
)

// NewStatusCommand .
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current display configuration",
		Long:    `Get the device calibration, render parameters and derived quilt geometry.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := apiClient.GetConfig()
			if err != nil {
				return err
			}

			cal := snap.Calibration

			cmd.Println(bold("Device calibration:"))
			cmd.Printf("  Config version: %s\n", bold("%s", cal.ConfigVersion))
			cmd.Printf("  Screen: %s\n", bold("%gx%g @ %g DPI", cal.ScreenW.Value, cal.ScreenH.Value, cal.DPI.Value))
			cmd.Printf("  View cone: %s\n", bold("%g°", cal.ViewCone.Value))
			cmd.Printf("  Pitch / slope / center: %s\n", bold("%g / %g / %g", cal.Pitch.Value, cal.Slope.Value, cal.Center.Value))

			cmd.Println()

			cmd.Println(bold("Render parameters:"))
			cmd.Printf("  Tile height: %s\n", bold("%d px", snap.TileHeight))
			cmd.Printf("  Views: %s\n", bold("%d", snap.NumViews))
			cmd.Printf("  Depthiness: %s\n", bold("%g", snap.Depthiness))
			cmd.Printf("  Fovy: %s\n", bold("%g rad", snap.Fovy))
			cmd.Printf("  Inline view: %s\n", bold("%d", snap.InlineView))
			cmd.Printf("  Target: %s\n", bold("(%g, %g, %g) diam %g", snap.TargetX, snap.TargetY, snap.TargetZ, snap.TargetDiam))
			cmd.Printf("  Trackball: %s\n", bold("(%g, %g)", snap.TrackballX, snap.TrackballY))

			cmd.Println()

			d := snap.Derived
			cmd.Println(bold("Derived quilt geometry:"))
			cmd.Printf("  Tile: %s\n", bold("%dx%d px", d.TileWidth, snap.TileHeight))
			cmd.Printf("  Quilt grid: %s\n", bold("%dx%d tiles", d.QuiltWidth, d.QuiltHeight))
			cmd.Printf("  Framebuffer: %s\n", bold("%dx%d px", d.FramebufferWidth, d.FramebufferHeight))
			cmd.Printf("  View cone: %s\n", bold("%.4f rad", d.ViewCone))
			cmd.Printf("  Tilt / pitch / subp: %s\n", bold("%.6f / %.6f / %.8f", d.Tilt, d.Pitch, d.Subp))

			return nil
		},
	}
}

// NewQuiltCommand .
func NewQuiltCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "quilt",
		GroupID: gBasic,
		Short:   "Get the derived quilt geometry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := apiClient.GetQuilt()
			if err != nil {
				return err
			}

			cmd.Printf("tile width:         %d\n", d.TileWidth)
			cmd.Printf("quilt grid:         %dx%d\n", d.QuiltWidth, d.QuiltHeight)
			cmd.Printf("framebuffer:        %dx%d\n", d.FramebufferWidth, d.FramebufferHeight)
			cmd.Printf("aspect:             %g\n", d.Aspect)
			cmd.Printf("view cone (rad):    %g\n", d.ViewCone)
			cmd.Printf("tilt:               %g\n", d.Tilt)
			cmd.Printf("pitch:              %g\n", d.Pitch)
			cmd.Printf("subp:               %g\n", d.Subp)

			return nil
		},
	}
}
