package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeServer is an in-memory stand-in for the shadowbox management API,
// served over TLS with the self-signed certificate httptest generates.
type fakeServer struct {
	mu       sync.Mutex
	nextID   int
	keys     []*AccessKey
	info     ServerInfo
	transfer map[string]uint64
	ts       *httptest.Server
}

func newFakeServer(t *testing.T) *fakeServer {
	f := &fakeServer{
		info: ServerInfo{
			Name:                  "fake outline",
			ServerID:              "3b6b9ae1-7625-4b5e-a3f8-6d1a52a9a1d2",
			MetricsEnabled:        false,
			CreatedTimestampMs:    time.Now().UnixMilli(),
			Version:               "1.8.1",
			PortForNewAccessKeys:  12345,
			HostnameForAccessKeys: "203.0.113.10",
		},
		transfer: map[string]uint64{},
	}
	f.ts = httptest.NewTLSServer(f)
	t.Cleanup(f.ts.Close)
	return f
}

func (f *fakeServer) fingerprint() string {
	return Fingerprint(f.ts.Certificate())
}

func (f *fakeServer) newTestClient(t *testing.T) *Client {
	c, err := NewClient(Options{
		APIURL:     f.ts.URL,
		CertSHA256: f.fingerprint(),
		Timeout:    10 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func (f *fakeServer) createKey(name string) *AccessKey {
	key := &AccessKey{
		ID:       strconv.Itoa(f.nextID),
		Name:     name,
		Password: "secret" + strconv.Itoa(f.nextID),
		Port:     f.info.PortForNewAccessKeys,
		Method:   "chacha20-ietf-poly1305",
	}
	key.AccessURL = fmt.Sprintf("ss://dummy@%s:%d/?outline=1", f.info.HostnameForAccessKeys, key.Port)
	f.nextID++
	f.keys = append(f.keys, key)
	return key
}

func (f *fakeServer) findKey(id string) (int, *AccessKey) {
	for i, key := range f.keys {
		if key.ID == id {
			return i, key
		}
	}
	return -1, nil
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/access-keys":
		f.serveKeys(w, r)
	case strings.HasPrefix(path, "/access-keys/"):
		f.serveKey(w, r, strings.TrimPrefix(path, "/access-keys/"))
	case path == "/server" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, f.info)
	case path == "/name" && r.Method == http.MethodPut:
		var req struct {
			Name string `json:"name"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		f.info.Name = req.Name
		w.WriteHeader(http.StatusNoContent)
	case path == "/server/hostname-for-access-keys" && r.Method == http.MethodPut:
		var req struct {
			Hostname string `json:"hostname"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if len(req.Hostname) == 0 {
			writeError(w, http.StatusBadRequest, "InvalidHostname")
			return
		}
		f.info.HostnameForAccessKeys = req.Hostname
		w.WriteHeader(http.StatusNoContent)
	case path == "/server/port-for-new-access-keys" && r.Method == http.MethodPut:
		var req struct {
			Port int `json:"port"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Port < 1 || req.Port > 65535 {
			writeError(w, http.StatusBadRequest, "InvalidPort")
			return
		}
		f.info.PortForNewAccessKeys = req.Port
		w.WriteHeader(http.StatusNoContent)
	case path == "/server/access-key-data-limit":
		switch r.Method {
		case http.MethodPut:
			var req struct {
				Limit DataLimit `json:"limit"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			f.info.AccessKeyDataLimit = &DataLimit{Bytes: req.Limit.Bytes}
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			f.info.AccessKeyDataLimit = nil
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case path == "/metrics/enabled":
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]bool{"metricsEnabled": f.info.MetricsEnabled})
		case http.MethodPut:
			var req struct {
				MetricsEnabled bool `json:"metricsEnabled"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			f.info.MetricsEnabled = req.MetricsEnabled
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case path == "/metrics/transfer" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"bytesTransferredByUserId": f.transfer})
	default:
		writeError(w, http.StatusNotFound, "NotFound")
	}
}

func (f *fakeServer) serveKeys(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		keys := f.keys
		if keys == nil {
			keys = []*AccessKey{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"accessKeys": keys})
	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
		}
		if r.ContentLength > 0 && !decodeBody(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusCreated, f.createKey(req.Name))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeServer) serveKey(w http.ResponseWriter, r *http.Request, rest string) {
	id, sub, _ := strings.Cut(rest, "/")
	i, key := f.findKey(id)
	if key == nil {
		writeError(w, http.StatusNotFound, "NotFound")
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, key)
	case sub == "" && r.Method == http.MethodDelete:
		f.keys = append(f.keys[:i], f.keys[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
	case sub == "name" && r.Method == http.MethodPut:
		var req struct {
			Name string `json:"name"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		key.Name = req.Name
		w.WriteHeader(http.StatusNoContent)
	case sub == "data-limit" && r.Method == http.MethodPut:
		var req struct {
			Limit DataLimit `json:"limit"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		key.DataLimit = &DataLimit{Bytes: req.Limit.Bytes}
		w.WriteHeader(http.StatusNoContent)
	case sub == "data-limit" && r.Method == http.MethodDelete:
		key.DataLimit = nil
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusNotFound, "NotFound")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidBody")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"code": code})
}
