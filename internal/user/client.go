package user

import (
	"context"

	"github.com/mamadbah2/Nexus/internal/api"
)

// Client is the user-profile slice of the backend API.
type Client interface {
	Get(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Profile, error)
	UploadAvatar(ctx context.Context, id, fileName, mimeType string, data []byte) (*Profile, error)
}

type client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) Client {
	return &client{api: apiClient}
}

func (c *client) Get(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	if err := c.api.Get(ctx, "/api/users/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *client) Update(ctx context.Context, id string, req UpdateRequest) (*Profile, error) {
	var p Profile
	if err := c.api.Put(ctx, "/api/users/"+id, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *client) UploadAvatar(ctx context.Context, id, fileName, mimeType string, data []byte) (*Profile, error) {
	fields := map[string]string{"contentType": mimeType}

	var p Profile
	err := c.api.PostMultipart(ctx, "/api/users/"+id+"/avatar", fields, "file", fileName, data, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
