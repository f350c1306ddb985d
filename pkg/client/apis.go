package client

import (
	"bufio"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	internalclient "github.com/quiltkit/quiltd/internal/client"
	"github.com/quiltkit/quiltd/pkg/calibration"
	"github.com/quiltkit/quiltd/pkg/config"
	"github.com/quiltkit/quiltd/pkg/events"
)

// Client is the typed API surface of the quiltd daemon.
type Client struct {
	c *internalclient.Client
}

func NewClient(socketPath string) *Client {
	return &Client{c: internalclient.NewClient(socketPath)}
}

func (c *Client) GetConfig() (*config.Snapshot, error) {
	ret, err := c.c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to get config")
	}
	var snap config.Snapshot
	if err := json.Unmarshal([]byte(ret), &snap); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal config")
	}
	return &snap, nil
}

func (c *Client) GetQuilt() (*config.Derived, error) {
	ret, err := c.c.Get("/quilt")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to get quilt geometry")
	}
	var d config.Derived
	if err := json.Unmarshal([]byte(ret), &d); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal quilt geometry")
	}
	return &d, nil
}

func (c *Client) GetCalibration() (*calibration.Record, error) {
	ret, err := c.c.Get("/calibration")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to get calibration")
	}
	var rec calibration.Record
	if err := json.Unmarshal([]byte(ret), &rec); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal calibration")
	}
	return &rec, nil
}

func (c *Client) SetTileHeight(v int) (string, error) {
	return c.c.Put("/tile-height", strconv.Itoa(v))
}

func (c *Client) SetNumViews(v int) (string, error) {
	return c.c.Put("/num-views", strconv.Itoa(v))
}

func (c *Client) SetInlineView(v int) (string, error) {
	return c.c.Put("/inline-view", strconv.Itoa(v))
}

func (c *Client) SetDepthiness(v float64) (string, error) {
	return c.c.Put("/depthiness", strconv.FormatFloat(v, 'g', -1, 64))
}

func (c *Client) SetFovy(v float64) (string, error) {
	return c.c.Put("/fovy", strconv.FormatFloat(v, 'g', -1, 64))
}

func (c *Client) SetTrackball(t config.Trackball) (string, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return c.c.Put("/trackball", string(payload))
}

func (c *Client) SetTarget(t config.Target) (string, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return c.c.Put("/target", string(payload))
}

// Refresh asks the daemon to re-query the bridge service now.
func (c *Client) Refresh() (string, error) {
	return c.c.Post("/refresh", "")
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to get daemon version")
	}
	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrap(err, "failed to unmarshal daemon version")
	}
	return v, nil
}

// WatchEvents streams daemon events until ctx is done or the stream breaks,
// invoking fn for each event. The stream is the daemon's SSE endpoint; only
// `event:` and `data:` lines matter here.
func (c *Client) WatchEvents(ctx context.Context, fn func(events.Event)) error {
	body, err := c.c.StreamGet(ctx, "/events")
	if err != nil {
		return pkgerrors.Wrap(err, "failed to open event stream")
	}
	defer func() { _ = body.Close() }()

	var ev events.Event
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			ev.Name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			ev.Data = []byte(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		case line == "":
			if ev.Name != "" || len(ev.Data) > 0 {
				fn(ev)
				ev = events.Event{}
			}
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return pkgerrors.Wrap(err, "event stream broken")
	}
	return nil
}
