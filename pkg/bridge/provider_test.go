package bridge

import (
	"errors"
	"testing"

	"github.com/quiltkit/quiltd/pkg/calibration"
	"github.com/quiltkit/quiltd/pkg/config"
	"github.com/quiltkit/quiltd/pkg/events"
)

func newTestProvider(resp *calibration.DevicesResponse, err error) *Provider {
	p := &Provider{}
	p.fetch = func() (*calibration.DevicesResponse, error) { return resp, err }
	return p
}

func deviceWithPitch(pitch float64) calibration.Device {
	rec := calibration.Placeholder()
	rec.Pitch.Value = pitch
	return calibration.Device{Calibration: rec}
}

func TestSyncAppliesFirstDevice(t *testing.T) {
	hub := events.NewHub()
	store := config.New(hub)

	calibrationEvents := 0
	hub.Subscribe(func(e events.Event) {
		p, err := events.DecodeAs[events.ConfigChangedEvent](e)
		if err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		if p.Field == "calibration" {
			calibrationEvents++
		}
	})

	p := newTestProvider(&calibration.DevicesResponse{
		Devices: []calibration.Device{deviceWithPitch(52.5), deviceWithPitch(99)},
	}, nil)

	if err := p.Sync(store); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if got := store.Calibration().Pitch.Value; got != 52.5 {
		t.Fatalf("expected first device's pitch 52.5, got %g", got)
	}
	if calibrationEvents != 1 {
		t.Fatalf("expected exactly 1 calibration event, got %d", calibrationEvents)
	}
}

func TestSyncNoDevicesKeepsPlaceholder(t *testing.T) {
	store := config.New(nil)

	p := newTestProvider(&calibration.DevicesResponse{}, nil)

	err := p.Sync(store)
	if !errors.Is(err, ErrNoDeviceFound) {
		t.Fatalf("expected ErrNoDeviceFound, got %v", err)
	}
	if got := store.Calibration(); got != calibration.Placeholder() {
		t.Fatalf("calibration changed on empty device list: %+v", got)
	}
}

func TestSyncFetchErrorKeepsCalibration(t *testing.T) {
	store := config.New(nil)
	rec := calibration.Placeholder()
	rec.ConfigVersion = "3.0"
	store.SetCalibration(rec)

	fetchErr := errors.New("connection refused")
	p := newTestProvider(nil, fetchErr)

	err := p.Sync(store)
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}
	if got := store.Calibration().ConfigVersion; got != "3.0" {
		t.Fatalf("calibration changed on fetch error: %s", got)
	}
}

func TestSyncStoreStaysUsableAfterFailure(t *testing.T) {
	store := config.New(nil)

	p := newTestProvider(&calibration.DevicesResponse{}, nil)
	_ = p.Sync(store)

	// Store keeps serving derived geometry from the placeholder.
	if got := store.TileWidth(); got != 320 {
		t.Fatalf("expected tileWidth 320 after failed sync, got %d", got)
	}
	if got := store.FramebufferWidth(); got != 512 {
		t.Fatalf("expected framebufferWidth 512 after failed sync, got %d", got)
	}
}
