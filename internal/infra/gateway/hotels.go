package gateway

import (
	"context"

	"stayhub/internal/pkg/config"
)

// HotelDirectoryClient resolves hotel metadata for the detail view.
type HotelDirectoryClient struct {
	*client
	base string
}

func NewHotelDirectoryClient(cfg config.UpstreamConfig) *HotelDirectoryClient {
	return &HotelDirectoryClient{
		client: newClient(cfg),
		base:   cfg.HotelDirectoryURL,
	}
}

type hotelPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (g *HotelDirectoryClient) FetchHotel(ctx context.Context, id int64) (string, string, error) {
	var payload hotelPayload
	if _, err := g.getJSON(ctx, joinURL(g.base, "/hotels/%d", id), &payload); err != nil {
		return "", "", err
	}
	return payload.Name, payload.Location, nil
}
