package config

import "github.com/quiltkit/quiltd/pkg/calibration"

// Snapshot is the full JSON view served by GET /config: the mutable
// parameters, the current calibration record, and the derived geometry
// computed at snapshot time.
type Snapshot struct {
	TileHeight int     `json:"tileHeight"`
	NumViews   int     `json:"numViews"`
	TrackballX float64 `json:"trackballX"`
	TrackballY float64 `json:"trackballY"`
	TargetX    float64 `json:"targetX"`
	TargetY    float64 `json:"targetY"`
	TargetZ    float64 `json:"targetZ"`
	TargetDiam float64 `json:"targetDiam"`
	Fovy       float64 `json:"fovy"`
	Depthiness float64 `json:"depthiness"`
	InlineView int     `json:"inlineView"`

	Calibration calibration.Record `json:"calibration"`
	Derived     Derived            `json:"derived"`
}

// Derived is the computed geometry block, also served alone by GET /quilt.
type Derived struct {
	Aspect            float64 `json:"aspect"`
	TileWidth         int     `json:"tileWidth"`
	FramebufferWidth  int     `json:"framebufferWidth"`
	FramebufferHeight int     `json:"framebufferHeight"`
	QuiltWidth        int     `json:"quiltWidth"`
	QuiltHeight       int     `json:"quiltHeight"`
	ViewCone          float64 `json:"viewCone"`
	Tilt              float64 `json:"tilt"`
	Subp              float64 `json:"subp"`
	Pitch             float64 `json:"pitch"`
}

// Trackball is the orbit-rotation payload for GET/PUT /trackball.
type Trackball struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Target is the camera-target payload for GET/PUT /target.
type Target struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Diam float64 `json:"diam"`
}

// Snapshot returns a consistent copy of the whole store.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	p := s.p
	cal := s.cal
	s.mu.RUnlock()

	return Snapshot{
		TileHeight:  p.TileHeight,
		NumViews:    p.NumViews,
		TrackballX:  p.TrackballX,
		TrackballY:  p.TrackballY,
		TargetX:     p.TargetX,
		TargetY:     p.TargetY,
		TargetZ:     p.TargetZ,
		TargetDiam:  p.TargetDiam,
		Fovy:        p.Fovy,
		Depthiness:  p.Depthiness,
		InlineView:  p.InlineView,
		Calibration: cal,
		Derived:     s.DerivedValues(),
	}
}

// DerivedValues computes every derived getter once and packs the results.
func (s *Store) DerivedValues() Derived {
	return Derived{
		Aspect:            s.Aspect(),
		TileWidth:         s.TileWidth(),
		FramebufferWidth:  s.FramebufferWidth(),
		FramebufferHeight: s.FramebufferHeight(),
		QuiltWidth:        s.QuiltWidth(),
		QuiltHeight:       s.QuiltHeight(),
		ViewCone:          s.ViewCone(),
		Tilt:              s.Tilt(),
		Subp:              s.Subp(),
		Pitch:             s.Pitch(),
	}
}
