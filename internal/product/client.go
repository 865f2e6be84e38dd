package product

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/mamadbah2/Nexus/internal/api"
)

const (
	defaultPageSize      = 20
	defaultSortBy        = "id"
	defaultSortDirection = "DESC"
)

// Client is the product-catalog slice of the backend API.
type Client interface {
	List(ctx context.Context, params QueryParams) (*Page, error)
	Search(ctx context.Context, search SearchParams, params QueryParams) (*Page, error)
	Suggest(ctx context.Context, query string) ([]string, error)
	Get(ctx context.Context, id string) (*Product, error)
	Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*Transcription, error)
}

type client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) Client {
	return &client{api: apiClient}
}

func (c *client) List(ctx context.Context, params QueryParams) (*Page, error) {
	var page Page
	if err := c.api.Get(ctx, "/api/products", queryValues(params), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *client) Search(ctx context.Context, search SearchParams, params QueryParams) (*Page, error) {
	values := queryValues(params)
	if q := strings.TrimSpace(search.Query); q != "" {
		values.Set("query", q)
	}
	if search.MinPrice != nil {
		values.Set("minPrice", strconv.FormatFloat(*search.MinPrice, 'f', -1, 64))
	}
	if search.MaxPrice != nil {
		values.Set("maxPrice", strconv.FormatFloat(*search.MaxPrice, 'f', -1, 64))
	}

	var page Page
	if err := c.api.Get(ctx, "/api/products/search", values, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *client) Suggest(ctx context.Context, query string) ([]string, error) {
	values := url.Values{}
	values.Set("query", query)

	var suggestions []string
	if err := c.api.Get(ctx, "/api/products/suggest", values, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (c *client) Get(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := c.api.Get(ctx, "/api/products/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Transcribe posts a voice recording to the STT service. The file name
// extension follows the recording's MIME type; browsers produce webm by
// default, Safari audio/mp4.
func (c *client) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*Transcription, error) {
	ext := "webm"
	switch {
	case strings.Contains(mimeType, "mp4"):
		ext = "mp4"
	case strings.Contains(mimeType, "wav"):
		ext = "wav"
	case strings.Contains(mimeType, "ogg"):
		ext = "ogg"
	}

	fields := map[string]string{"language": language}

	var result Transcription
	err := c.api.PostMultipart(ctx, "/api/stt/transcribe", fields, "file", "recording."+ext, audio, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func queryValues(params QueryParams) url.Values {
	if params.Page < 0 {
		params.Page = 0
	}
	if params.Size <= 0 {
		params.Size = defaultPageSize
	}
	if params.SortBy == "" {
		params.SortBy = defaultSortBy
	}
	if params.SortDirection == "" {
		params.SortDirection = defaultSortDirection
	}

	values := url.Values{}
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("size", strconv.Itoa(params.Size))
	values.Set("sortBy", params.SortBy)
	values.Set("sortDirection", params.SortDirection)
	return values
}
