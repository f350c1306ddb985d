package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quiltkit/quiltd/pkg/config"
	"github.com/quiltkit/quiltd/pkg/events"
)

func setupTestDaemon() *httptest.Server {
	hub = events.NewHub()
	store = config.New(hub)
	return httptest.NewServer(setupRoutes())
}

func TestSetTileHeightRoute(t *testing.T) {
	srv := setupTestDaemon()
	defer srv.Close()

	req, _ := http.NewRequest("PUT", srv.URL+"/tile-height", strings.NewReader("256"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	if got := store.TileHeight(); got != 256 {
		t.Fatalf("expected tileHeight 256, got %d", got)
	}
}

func TestSetTileHeightRejectsGarbage(t *testing.T) {
	srv := setupTestDaemon()
	defer srv.Close()

	req, _ := http.NewRequest("PUT", srv.URL+"/tile-height", strings.NewReader("not-a-number"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	if got := store.TileHeight(); got != 320 {
		t.Fatalf("tileHeight changed on rejected payload: %d", got)
	}
}

func TestGetQuiltRoute(t *testing.T) {
	srv := setupTestDaemon()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/quilt")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var d config.Derived
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		t.Fatalf("failed to decode quilt geometry: %v", err)
	}
	if d.TileWidth != 320 || d.FramebufferWidth != 512 || d.QuiltWidth != 1 || d.QuiltHeight != 2 || d.FramebufferHeight != 1024 {
		t.Fatalf("unexpected default geometry: %+v", d)
	}
}

func TestGetConfigRoute(t *testing.T) {
	srv := setupTestDaemon()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/config")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var snap config.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.Calibration.ConfigVersion != "1.0" {
		t.Fatalf("expected placeholder calibration, got %q", snap.Calibration.ConfigVersion)
	}
	if snap.NumViews != 2 || snap.TileHeight != 320 {
		t.Fatalf("unexpected default parameters: %+v", snap)
	}
}
