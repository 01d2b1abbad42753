package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"
)

// UserDirectoryClient talks to the user directory service.
type UserDirectoryClient struct {
	*client
	base string
}

func NewUserDirectoryClient(cfg config.UpstreamConfig) *UserDirectoryClient {
	return &UserDirectoryClient{
		client: newClient(cfg),
		base:   cfg.UserDirectoryURL,
	}
}

type userPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Exists treats any non-success outcome, including a transport failure, as
// "user does not exist". The booking attempt fails; nothing is retried here.
func (g *UserDirectoryClient) Exists(ctx context.Context, id int64) bool {
	status, err := g.getJSON(ctx, joinURL(g.base, "/users/%d", id), nil)
	if err != nil {
		if status != http.StatusNotFound {
			slog.Warn("user directory lookup failed", "user_id", id, "error", err)
		}
		return false
	}
	return true
}

func (g *UserDirectoryClient) Fetch(ctx context.Context, id int64) (*commands.UserSnapshot, error) {
	var payload userPayload
	if _, err := g.getJSON(ctx, joinURL(g.base, "/users/%d", id), &payload); err != nil {
		return nil, err
	}
	return &commands.UserSnapshot{
		ID:    payload.ID,
		Name:  payload.Name,
		Email: payload.Email,
	}, nil
}
