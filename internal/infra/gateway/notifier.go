package gateway

import (
	"context"
	"net/http"

	"stayhub/internal/pkg/config"
)

// NotifierClient posts booking notifications. Notification delivery is
// fire-and-forget from the workflow's point of view.
type NotifierClient struct {
	*client
	base string
}

// NewNotifierClient returns nil when no notifier endpoint is configured;
// the workflow treats a nil notifier as "notifications disabled".
func NewNotifierClient(cfg config.UpstreamConfig) *NotifierClient {
	if cfg.NotifierURL == "" {
		return nil
	}
	return &NotifierClient{
		client: newClient(cfg),
		base:   cfg.NotifierURL,
	}
}

func (g *NotifierClient) Notify(ctx context.Context, email, message string) error {
	body := map[string]string{
		"email":   email,
		"message": message,
	}
	_, err := g.sendJSON(ctx, http.MethodPost, g.base+"/notify", body, nil)
	return err
}
