// Package kernel owns the Kernel: lifecycle, bootstrap configuration,
// plugin registry, and the typed event bus that ties the rest of the
// core together.
package kernel

import (
	"fmt"
	"sync"
	"time"

	"github.com/vfirsov/kernel/contracts"
)

// kernel implements contracts.Kernel. Grounded on the teacher's
// cmd/sidecar/main.go process-lifecycle wiring (signal handling,
// graceful shutdown), generalized into a reusable type instead of
// being inlined in main so cmd/kernel/main.go only does process glue.
type kernel struct {
	mu        sync.Mutex
	cfg       contracts.KernelConfig
	running   bool
	startedAt time.Time
	plugins   map[string]contracts.Plugin
	order     []string
	bus       *eventBus
}

// NewKernel creates a Kernel with the given bootstrap configuration.
func NewKernel(cfg contracts.KernelConfig) contracts.Kernel {
	return &kernel{
		cfg:     cfg,
		plugins: make(map[string]contracts.Plugin),
		bus:     newEventBus(),
	}
}

func (k *kernel) Start() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.running {
		return contracts.ErrKernelAlreadyRunning
	}
	k.running = true
	k.startedAt = time.Now()
	return nil
}

func (k *kernel) Stop() error {
	k.mu.Lock()
	if !k.running {
		k.mu.Unlock()
		return contracts.ErrKernelNotRunning
	}
	order := make([]string, len(k.order))
	copy(order, k.order)
	plugins := make(map[string]contracts.Plugin, len(k.plugins))
	for k2, v := range k.plugins {
		plugins[k2] = v
	}
	k.running = false
	k.mu.Unlock()

	for _, name := range order {
		if lp, ok := plugins[name].(contracts.PluginWithLifecycle); ok {
			_ = lp.Stop()
		}
	}
	return nil
}

func (k *kernel) HealthCheck() map[string]error {
	k.mu.Lock()
	order := make([]string, len(k.order))
	copy(order, k.order)
	plugins := make(map[string]contracts.Plugin, len(k.plugins))
	for k2, v := range k.plugins {
		plugins[k2] = v
	}
	k.mu.Unlock()

	results := make(map[string]error, len(order))
	for _, name := range order {
		if lp, ok := plugins[name].(contracts.PluginWithLifecycle); ok {
			results[name] = lp.HealthCheck()
		} else {
			results[name] = nil
		}
	}
	return results
}

func (k *kernel) SetMode(mode contracts.KernelMode) {
	k.mu.Lock()
	k.cfg.Mode = mode
	k.mu.Unlock()

	k.Dispatch("config.reload", contracts.KernelConfig{Mode: mode})
}

func (k *kernel) ReloadConfig(partial contracts.KernelConfig) {
	k.mu.Lock()
	if partial.Name != "" {
		k.cfg.Name = partial.Name
	}
	if partial.Version != "" {
		k.cfg.Version = partial.Version
	}
	if partial.Mode != 0 {
		k.cfg.Mode = partial.Mode
	}
	if partial.TokenBudget.MaxPerHour != 0 {
		k.cfg.TokenBudget.MaxPerHour = partial.TokenBudget.MaxPerHour
	}
	k.mu.Unlock()

	k.Dispatch("config.reload", partial)
}

func (k *kernel) GetStatus() contracts.KernelStatus {
	k.mu.Lock()
	defer k.mu.Unlock()

	var uptime int64
	if k.running {
		uptime = int64(time.Since(k.startedAt).Seconds())
	}
	return contracts.KernelStatus{
		Name:          k.cfg.Name,
		Version:       k.cfg.Version,
		Mode:          k.cfg.Mode,
		Running:       k.running,
		PluginCount:   len(k.plugins),
		UptimeSeconds: uptime,
	}
}

func (k *kernel) RegisterPlugin(p contracts.Plugin) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	name := p.Name()
	if _, exists := k.plugins[name]; exists {
		return fmt.Errorf("%w: %s", contracts.ErrPluginDuplicate, name)
	}
	k.plugins[name] = p
	k.order = append(k.order, name)
	return nil
}

func (k *kernel) On(event string, handler contracts.EventHandler) { k.bus.On(event, handler) }
func (k *kernel) Off(event string)                                { k.bus.Off(event) }
func (k *kernel) Dispatch(event string, data any)                 { k.bus.Dispatch(event, data) }
