package client

import (
	"context"
	"net/http"
	"net/url"
)

type accessKeyList struct {
	AccessKeys []AccessKey `json:"accessKeys"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type limitRequest struct {
	Limit DataLimit `json:"limit"`
}

// GetKeys lists every access key on the server, in server order.
func (c *Client) GetKeys(ctx context.Context) ([]AccessKey, error) {
	var list accessKeyList
	if err := c.do(ctx, http.MethodGet, "/access-keys/", nil, &list); err != nil {
		return nil, err
	}
	return list.AccessKeys, nil
}

// CreateKey provisions a new access key. The server assigns the id; an
// empty name leaves the key unnamed.
func (c *Client) CreateKey(ctx context.Context, name string) (*AccessKey, error) {
	var in any
	if len(name) != 0 {
		in = &nameRequest{Name: name}
	}
	key := &AccessKey{}
	if err := c.do(ctx, http.MethodPost, "/access-keys", in, key); err != nil {
		return nil, err
	}
	return key, nil
}

// GetKey fetches a single access key. Ids are opaque to the client and
// passed through as-is, an unknown id surfaces as a ServerError.
func (c *Client) GetKey(ctx context.Context, id string) (*AccessKey, error) {
	key := &AccessKey{}
	if err := c.do(ctx, http.MethodGet, "/access-keys/"+url.PathEscape(id), nil, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (c *Client) RenameKey(ctx context.Context, id, name string) error {
	return c.do(ctx, http.MethodPut, "/access-keys/"+url.PathEscape(id)+"/name", &nameRequest{Name: name}, nil)
}

func (c *Client) DeleteKey(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/access-keys/"+url.PathEscape(id), nil, nil)
}

// AddDataLimit caps the key's cumulative transfer at limitBytes.
func (c *Client) AddDataLimit(ctx context.Context, id string, limitBytes uint64) error {
	return c.do(ctx, http.MethodPut, "/access-keys/"+url.PathEscape(id)+"/data-limit",
		&limitRequest{Limit: DataLimit{Bytes: limitBytes}}, nil)
}

// DeleteDataLimit lifts the key's transfer cap.
func (c *Client) DeleteDataLimit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/access-keys/"+url.PathEscape(id)+"/data-limit", nil, nil)
}
