package client

import (
	"errors"
	"fmt"
)

var (
	ErrNoFingerprint  = errors.New("certificate fingerprint required")
	ErrBadFingerprint = errors.New("certificate fingerprint must be a sha256 hex string")
	ErrCertMismatch   = errors.New("server certificate does not match pinned fingerprint")
)

// ServerError is any non-2xx management API response, or a 2xx response
// whose body does not decode into the expected shape.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("outline server error: status %d: %s", e.StatusCode, e.Body)
}

// ConnectivityError is a transport-level failure, including a TLS
// handshake rejected by the certificate pin. The request never reached
// the management API.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return "outline server unreachable: " + e.Err.Error()
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// DataLimit caps cumulative transfer in bytes. A nil *DataLimit means
// unlimited, the field is omitted on the wire.
type DataLimit struct {
	Bytes uint64 `json:"bytes"`
}

// AccessKey is a provisioned credential on the remote server. Local
// copies are snapshots, any mutating call invalidates them.
type AccessKey struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Password  string     `json:"password,omitempty"`
	Port      int        `json:"port,omitempty"`
	Method    string     `json:"method,omitempty"`
	AccessURL string     `json:"accessUrl"`
	DataLimit *DataLimit `json:"dataLimit,omitempty"`
}

// ServerInfo mirrors the /server configuration document.
type ServerInfo struct {
	Name                  string     `json:"name"`
	ServerID              string     `json:"serverId,omitempty"`
	MetricsEnabled        bool       `json:"metricsEnabled"`
	CreatedTimestampMs    int64      `json:"createdTimestampMs,omitempty"`
	Version               string     `json:"version,omitempty"`
	PortForNewAccessKeys  int        `json:"portForNewAccessKeys"`
	HostnameForAccessKeys string     `json:"hostnameForAccessKeys"`
	AccessKeyDataLimit    *DataLimit `json:"accessKeyDataLimit,omitempty"`
}

// TransferReport maps access key ids to cumulative transferred bytes.
type TransferReport struct {
	BytesTransferredByUserId map[string]uint64 `json:"bytesTransferredByUserId"`
}
