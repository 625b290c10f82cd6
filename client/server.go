package client

import (
	"context"
	"net/http"
)

type hostnameRequest struct {
	Hostname string `json:"hostname"`
}

type portRequest struct {
	Port int `json:"port"`
}

type metricsStatus struct {
	MetricsEnabled bool `json:"metricsEnabled"`
}

// GetServerInformation fetches the server configuration snapshot.
func (c *Client) GetServerInformation(ctx context.Context) (*ServerInfo, error) {
	info := &ServerInfo{}
	if err := c.do(ctx, http.MethodGet, "/server", nil, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) SetServerName(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPut, "/name", &nameRequest{Name: name}, nil)
}

// SetHostname changes the hostname embedded in access urls of keys
// created afterwards. Existing keys are untouched.
func (c *Client) SetHostname(ctx context.Context, hostname string) error {
	return c.do(ctx, http.MethodPut, "/server/hostname-for-access-keys", &hostnameRequest{Hostname: hostname}, nil)
}

// SetPortForNewAccessKeys changes the port newly created keys listen on.
func (c *Client) SetPortForNewAccessKeys(ctx context.Context, port int) error {
	return c.do(ctx, http.MethodPut, "/server/port-for-new-access-keys", &portRequest{Port: port}, nil)
}

// SetDataLimitForAllKeys applies one shared transfer cap to every key.
func (c *Client) SetDataLimitForAllKeys(ctx context.Context, limitBytes uint64) error {
	return c.do(ctx, http.MethodPut, "/server/access-key-data-limit",
		&limitRequest{Limit: DataLimit{Bytes: limitBytes}}, nil)
}

func (c *Client) DeleteDataLimitForAllKeys(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/server/access-key-data-limit", nil, nil)
}

func (c *Client) GetMetricsStatus(ctx context.Context) (bool, error) {
	var status metricsStatus
	if err := c.do(ctx, http.MethodGet, "/metrics/enabled", nil, &status); err != nil {
		return false, err
	}
	return status.MetricsEnabled, nil
}

func (c *Client) SetMetricsStatus(ctx context.Context, enabled bool) error {
	return c.do(ctx, http.MethodPut, "/metrics/enabled", &metricsStatus{MetricsEnabled: enabled}, nil)
}

// GetTransferredData reports cumulative bytes transferred per key id.
func (c *Client) GetTransferredData(ctx context.Context) (*TransferReport, error) {
	report := &TransferReport{}
	if err := c.do(ctx, http.MethodGet, "/metrics/transfer", nil, report); err != nil {
		return nil, err
	}
	return report, nil
}
