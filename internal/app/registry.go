package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ozcitizen/backend/internal/domain/question"
	"github.com/ozcitizen/backend/internal/store"
)

// Registry keeps one loaded Controller per device.
type Registry struct {
	kv     store.KV
	bank   *question.Bank
	clock  Clock
	logger *slog.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(kv store.KV, bank *question.Bank, clock Clock, logger *slog.Logger) *Registry {
	return &Registry{
		kv:          kv,
		bank:        bank,
		clock:       clock,
		logger:      logger,
		controllers: make(map[string]*Controller),
	}
}

// Get returns the controller for device, loading it on first use.
func (r *Registry) Get(ctx context.Context, device string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[device]; ok {
		return c
	}
	c := NewController(device, r.kv, r.bank, r.clock, r.logger)
	c.Load(ctx)
	r.controllers[device] = c
	return c
}

func (r *Registry) Bank() *question.Bank { return r.bank }
