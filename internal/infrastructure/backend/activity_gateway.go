package backend

import (
	"context"
	"fmt"
	"net/http"

	"activityroster/internal/domain/entities"
	"activityroster/internal/ports/output"
)

var _ output.ActivityGateway = (*ActivityGateway)(nil)

// ActivityGateway implements output.ActivityGateway over the backend's
// three HTTP endpoints.
type ActivityGateway struct {
	c *Client
}

func NewActivityGateway(c *Client) *ActivityGateway {
	return &ActivityGateway{c: c}
}

func (g *ActivityGateway) ListActivities(ctx context.Context) ([]entities.Activity, error) {
	resp, err := g.c.do(ctx, http.MethodGet, "/activities", "")
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, fmt.Errorf("list activities: %w", rejectionFromJSON(resp.status, resp.body))
	}
	return activitiesFromJSON(resp.body)
}

func (g *ActivityGateway) Signup(ctx context.Context, reg entities.Registration) (string, error) {
	return g.mutate(ctx, http.MethodPost, reg)
}

func (g *ActivityGateway) Unregister(ctx context.Context, reg entities.Registration) (string, error) {
	return g.mutate(ctx, http.MethodDelete, reg)
}

func (g *ActivityGateway) mutate(ctx context.Context, method string, reg entities.Registration) (string, error) {
	resp, err := g.c.do(ctx, method, signupPath(reg.Activity), emailQuery(reg.Email))
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", rejectionFromJSON(resp.status, resp.body)
	}
	msg, err := messageFromJSON(resp.body)
	if err != nil {
		return "", fmt.Errorf("%s signup: %w", method, err)
	}
	return msg, nil
}
