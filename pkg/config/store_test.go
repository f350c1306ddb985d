package config

import (
	"math"
	"testing"
	"time"

	"github.com/quiltkit/quiltd/pkg/calibration"
	"github.com/quiltkit/quiltd/pkg/events"
)

func TestDefaultDerivedGeometry(t *testing.T) {
	s := New(nil)

	// Placeholder screen is square, so aspect is exactly 1 and tileWidth
	// equals tileHeight.
	if got := s.Aspect(); got != 1.0 {
		t.Fatalf("expected aspect 1.0, got %g", got)
	}
	if got := s.TileWidth(); got != 320 {
		t.Fatalf("expected tileWidth 320, got %d", got)
	}

	// 320*320*2 = 204800 pixels, sqrt ~ 452.6, next power of two is 512.
	if got := s.FramebufferWidth(); got != 512 {
		t.Fatalf("expected framebufferWidth 512, got %d", got)
	}

	// floor(512/320) = 1 column, ceil(2/1) = 2 rows, 2*320=640 -> 1024.
	if got := s.QuiltWidth(); got != 1 {
		t.Fatalf("expected quiltWidth 1, got %d", got)
	}
	if got := s.QuiltHeight(); got != 2 {
		t.Fatalf("expected quiltHeight 2, got %d", got)
	}
	if got := s.FramebufferHeight(); got != 1024 {
		t.Fatalf("expected framebufferHeight 1024, got %d", got)
	}
}

func TestFramebufferWidthIsMinimalPowerOfTwo(t *testing.T) {
	s := New(nil)

	cases := []struct {
		tileHeight int
		numViews   int
	}{
		{320, 2},
		{320, 45},
		{512, 8},
		{256, 1},
		{400, 32},
		{800, 4},
	}

	for _, c := range cases {
		s.SetTileHeight(c.tileHeight)
		s.SetNumViews(c.numViews)

		tw := s.TileWidth()
		fbw := s.FramebufferWidth()
		lower := math.Max(math.Sqrt(float64(tw)*float64(c.tileHeight)*float64(c.numViews)), float64(tw))

		if fbw&(fbw-1) != 0 {
			t.Fatalf("tileHeight=%d numViews=%d: framebufferWidth %d is not a power of two", c.tileHeight, c.numViews, fbw)
		}
		if float64(fbw) < lower {
			t.Fatalf("tileHeight=%d numViews=%d: framebufferWidth %d below lower bound %g", c.tileHeight, c.numViews, fbw, lower)
		}
		if fbw > 1 && float64(fbw/2) >= lower {
			t.Fatalf("tileHeight=%d numViews=%d: framebufferWidth %d is not minimal", c.tileHeight, c.numViews, fbw)
		}

		if got := s.QuiltWidth() * s.QuiltHeight(); got < c.numViews {
			t.Fatalf("tileHeight=%d numViews=%d: quilt %dx%d holds only %d views", c.tileHeight, c.numViews, s.QuiltWidth(), s.QuiltHeight(), got)
		}
	}
}

func TestPow2Ceil(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{1, 1},
		{1.5, 2},
		{452.6, 512},
		{512, 512},
		{640, 1024},
		{math.NaN(), 1},
		{math.Inf(1), math.MaxInt64},
		{3e19, math.MaxInt64},
	}
	for _, c := range cases {
		if got := pow2Ceil(c.in); got != c.want {
			t.Fatalf("pow2Ceil(%g): expected %d, got %d", c.in, c.want, got)
		}
	}
}

func TestExtremeParametersDoNotWedgeStore(t *testing.T) {
	s := New(nil)
	s.SetTileHeight(int(3e18))
	s.SetNumViews(100)

	done := make(chan int, 1)
	go func() { done <- s.FramebufferWidth() }()

	select {
	case got := <-done:
		if got <= 0 {
			t.Fatalf("expected positive framebufferWidth, got %d", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("FramebufferWidth did not return on extreme parameters")
	}

	// The store must still accept mutations afterwards.
	s.SetTileHeight(320)
	s.SetNumViews(2)
	if got := s.FramebufferWidth(); got != 512 {
		t.Fatalf("expected framebufferWidth 512 after reset, got %d", got)
	}
}

func TestViewConeScalesWithDepthiness(t *testing.T) {
	s := New(nil)
	s.SetDepthiness(2.5)

	want := 40.0 * 2.5 / 180.0 * math.Pi
	if got := s.ViewCone(); got != want {
		t.Fatalf("expected viewCone %g, got %g", want, got)
	}
}

func TestTiltSignFollowsFlipImageX(t *testing.T) {
	s := New(nil)

	// Placeholder: 250 / (250 * -5) = -0.2.
	if got := s.Tilt(); got != -0.2 {
		t.Fatalf("expected tilt -0.2, got %g", got)
	}

	rec := calibration.Placeholder()
	rec.FlipImageX.Value = 1
	s.SetCalibration(rec)

	if got := s.Tilt(); got != 0.2 {
		t.Fatalf("expected flipped tilt 0.2, got %g", got)
	}
}

func TestPitchAndSubp(t *testing.T) {
	s := New(nil)

	wantPitch := 45.0 * (250.0 / 338.0) * math.Cos(math.Atan(1.0/-5.0))
	if got := s.Pitch(); got != wantPitch {
		t.Fatalf("expected pitch %g, got %g", wantPitch, got)
	}

	if got := s.Subp(); got != 1.0/750.0 {
		t.Fatalf("expected subp %g, got %g", 1.0/750.0, got)
	}
}

func TestDerivedGettersAreIdempotent(t *testing.T) {
	s := New(nil)
	s.SetTileHeight(400)
	s.SetNumViews(45)

	first := s.DerivedValues()
	second := s.DerivedValues()
	if first != second {
		t.Fatalf("derived values drifted between reads: %+v vs %+v", first, second)
	}
}

func TestEachMutationPublishesOneEvent(t *testing.T) {
	hub := events.NewHub()
	s := New(hub)

	var got []string
	hub.Subscribe(func(e events.Event) {
		p, err := events.DecodeAs[events.ConfigChangedEvent](e)
		if err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		got = append(got, p.Field)
	})

	s.SetTileHeight(256)
	s.SetNumViews(9)
	s.SetDepthiness(1.0)
	s.SetTrackballX(0.5)
	s.SetCalibration(calibration.Placeholder())

	want := []string{"tileHeight", "numViews", "depthiness", "trackballX", "calibration"}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected field %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCalibrationIsCopiedBothWays(t *testing.T) {
	s := New(nil)

	// Mutating a record obtained from the store must not affect the store.
	out := s.Calibration()
	out.Pitch.Value = 999
	if got := s.Calibration().Pitch.Value; got != 45 {
		t.Fatalf("store calibration mutated through returned copy: pitch %g", got)
	}

	// Mutating the caller's record after assignment must not affect the store.
	in := calibration.Placeholder()
	in.DPI.Value = 324
	s.SetCalibration(in)
	in.DPI.Value = 1
	if got := s.Calibration().DPI.Value; got != 324 {
		t.Fatalf("store calibration aliases caller record: DPI %g", got)
	}
}

func TestDefaultsMatchReferenceModel(t *testing.T) {
	s := New(nil)

	if got := s.TileHeight(); got != 320 {
		t.Fatalf("expected default tileHeight 320, got %d", got)
	}
	if got := s.NumViews(); got != 2 {
		t.Fatalf("expected default numViews 2, got %d", got)
	}
	if got := s.TargetY(); got != 1.6 {
		t.Fatalf("expected default targetY 1.6, got %g", got)
	}
	if got := s.TargetZ(); got != -0.5 {
		t.Fatalf("expected default targetZ -0.5, got %g", got)
	}
	if got := s.TargetDiam(); got != 2.0 {
		t.Fatalf("expected default targetDiam 2.0, got %g", got)
	}
	if got := s.Fovy(); got != 13.0/180.0*math.Pi {
		t.Fatalf("expected default fovy %g, got %g", 13.0/180.0*math.Pi, got)
	}
	if got := s.Depthiness(); got != 1.25 {
		t.Fatalf("expected default depthiness 1.25, got %g", got)
	}
	if got := s.InlineView(); got != 1 {
		t.Fatalf("expected default inlineView 1, got %d", got)
	}
	if got := s.Calibration(); got != calibration.Placeholder() {
		t.Fatalf("expected placeholder calibration, got %+v", got)
	}
}
