package bridge

import (
	"encoding/json"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/quiltkit/quiltd/pkg/calibration"
	"github.com/quiltkit/quiltd/pkg/config"
)

// Provider adapts the bridge service's device list into calibration updates
// on the config store. It never retries on its own; callers decide cadence
// (the daemon runs one sync at startup and optionally schedules more).
type Provider struct {
	client *Client

	// fetch is a seam for tests; defaults to the HTTP client.
	fetch func() (*calibration.DevicesResponse, error)
}

func NewProvider(socketPath string) *Provider {
	p := &Provider{client: NewClient(socketPath)}
	p.fetch = p.fetchDevices
	return p
}

func (p *Provider) fetchDevices() (*calibration.DevicesResponse, error) {
	body, err := p.client.Get("/v1/devices")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to query device list")
	}

	var resp calibration.DevicesResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal device list")
	}
	return &resp, nil
}

// Sync queries the bridge service once and applies the first reported
// device's calibration to the store, which publishes a change event. All
// failure paths leave the store untouched and are logged here; the returned
// error is informational for callers that surface it (the HTTP refresh
// endpoint does, the startup goroutine only logs).
func (p *Provider) Sync(store *config.Store) error {
	resp, err := p.fetch()
	if err != nil {
		logrus.WithError(err).Error("bridge sync failed, keeping current calibration")
		return err
	}

	n := len(resp.Devices)
	if n == 0 {
		logrus.WithError(ErrNoDeviceFound).Error("bridge reported no devices, keeping current calibration")
		return ErrNoDeviceFound
	}
	if n > 1 {
		logrus.Warnf("bridge reported %d devices, using the first", n)
	}

	dev := resp.Devices[0]
	store.SetCalibration(dev.Calibration)

	logrus.WithFields(logrus.Fields{
		"id":              dev.ID,
		"hardwareVersion": dev.HardwareVersion,
		"configVersion":   dev.Calibration.ConfigVersion,
	}).Info("device calibration applied")

	return nil
}

// Describe returns a short human-readable summary of the sync target.
func (p *Provider) Describe() string {
	return fmt.Sprintf("bridge service at %s", p.client.socketPath)
}
