package bridge

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
)

// Client talks to the vendor's display bridge service over its unix socket.
// The wire format of the service is owned by the vendor; this client only
// moves bytes and maps transport failures to sentinel errors.
type Client struct {
	socketPath string
	httpClient *http.Client
}

func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
					conn, err := net.Dial("unix", socketPath)
					if err != nil {
						if os.IsNotExist(err) {
							return nil, ErrBridgeNotRunning
						}
						if os.IsPermission(err) {
							return nil, ErrPermissionDenied
						}
						logrus.Errorf("failed to connect to bridge socket: %v", err)
						return nil, err
					}
					return conn, err
				},
			},
		},
	}
}

// Get sends a GET to the bridge service and returns the response body.
func (c *Client) Get(path string) (string, error) {
	logrus.WithFields(logrus.Fields{
		"path": path,
		"unix": c.socketPath,
	}).Debug("querying bridge service")

	resp, err := c.httpClient.Get("http://unix" + path)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	body := string(b)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("got %d: %s", resp.StatusCode, body)
	}

	return body, nil
}
