package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"activityroster/internal/domain/entities"
)

type fakeGateway struct {
	mu          sync.Mutex
	activities  []entities.Activity
	listErr     error
	signupMsg   string
	signupErr   error
	removeMsg   string
	removeErr   error
	listCalls   int
	signupCalls []entities.Registration
	removeCalls []entities.Registration
}

func (g *fakeGateway) ListActivities(context.Context) ([]entities.Activity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.activities, nil
}

func (g *fakeGateway) Signup(_ context.Context, reg entities.Registration) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.signupCalls = append(g.signupCalls, reg)
	return g.signupMsg, g.signupErr
}

func (g *fakeGateway) Unregister(_ context.Context, reg entities.Registration) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeCalls = append(g.removeCalls, reg)
	return g.removeMsg, g.removeErr
}

// keyTranslator echoes the key followed by sorted template data.
type keyTranslator struct{}

func (keyTranslator) T(_ string, key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return key + "(" + strings.Join(parts, ",") + ")"
}

type fakeRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (r *fakeRecorder) RecordAction(action, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action+":"+outcome)
}
