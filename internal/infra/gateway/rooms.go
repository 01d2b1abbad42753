package gateway

import (
	"context"
	"log/slog"
	"math"
	"net/http"

	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"
)

// RoomCatalogClient talks to the room catalog service. Prices come back in
// currency units and are converted to cents at the boundary.
type RoomCatalogClient struct {
	*client
	base string
}

func NewRoomCatalogClient(cfg config.UpstreamConfig) *RoomCatalogClient {
	return &RoomCatalogClient{
		client: newClient(cfg),
		base:   cfg.RoomCatalogURL,
	}
}

type roomPayload struct {
	ID           int64   `json:"id"`
	HotelID      int64   `json:"hotel_id"`
	Type         string  `json:"type"`
	Price        float64 `json:"price"`
	Availability bool    `json:"availability"`
}

func (g *RoomCatalogClient) Exists(ctx context.Context, id int64) bool {
	status, err := g.getJSON(ctx, joinURL(g.base, "/rooms/%d", id), nil)
	if err != nil {
		if status != http.StatusNotFound {
			slog.Warn("room catalog lookup failed", "room_id", id, "error", err)
		}
		return false
	}
	return true
}

func (g *RoomCatalogClient) Fetch(ctx context.Context, id int64) (*commands.RoomSnapshot, error) {
	payload, err := g.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return &commands.RoomSnapshot{
		ID:           payload.ID,
		HotelID:      payload.HotelID,
		Type:         payload.Type,
		PriceCents:   toCents(payload.Price),
		Availability: payload.Availability,
	}, nil
}

// FetchRoom serves the read-side detail aggregation.
func (g *RoomCatalogClient) FetchRoom(ctx context.Context, id int64) (string, int64, int64, error) {
	payload, err := g.fetch(ctx, id)
	if err != nil {
		return "", 0, 0, err
	}
	return payload.Type, payload.HotelID, toCents(payload.Price), nil
}

// MarkUnavailable is a best-effort post-booking update, not transactional
// with the reservation write.
func (g *RoomCatalogClient) MarkUnavailable(ctx context.Context, id int64) error {
	body := map[string]any{"availability": false}
	_, err := g.sendJSON(ctx, http.MethodPut, joinURL(g.base, "/rooms/%d/availability", id), body, nil)
	return err
}

func (g *RoomCatalogClient) fetch(ctx context.Context, id int64) (*roomPayload, error) {
	var payload roomPayload
	if _, err := g.getJSON(ctx, joinURL(g.base, "/rooms/%d", id), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func toCents(units float64) int64 {
	return int64(math.Round(units * 100))
}
