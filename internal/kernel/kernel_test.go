package kernel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfirsov/kernel/contracts"
)

type fakePlugin struct {
	name      string
	stopErr   error
	healthErr error
	stopped   bool
}

func (f *fakePlugin) Name() string { return f.name }
func (f *fakePlugin) Stop() error  { f.stopped = true; return f.stopErr }
func (f *fakePlugin) HealthCheck() error {
	return f.healthErr
}

func TestKernel_StartIsNotIdempotent(t *testing.T) {
	k := NewKernel(contracts.KernelConfig{Name: "k", Version: "1.0.0"})
	require.NoError(t, k.Start())
	assert.ErrorIs(t, k.Start(), contracts.ErrKernelAlreadyRunning)
}

func TestKernel_StopRequiresRunning(t *testing.T) {
	k := NewKernel(contracts.KernelConfig{Name: "k", Version: "1.0.0"})
	assert.ErrorIs(t, k.Stop(), contracts.ErrKernelNotRunning)
}

func TestKernel_RegisterPluginRejectsDuplicateNames(t *testing.T) {
	k := NewKernel(contracts.KernelConfig{Name: "k", Version: "1.0.0"})
	require.NoError(t, k.RegisterPlugin(&fakePlugin{name: "memory"}))
	err := k.RegisterPlugin(&fakePlugin{name: "memory"})
	assert.ErrorIs(t, err, contracts.ErrPluginDuplicate)
}

func TestKernel_StopCallsLifecyclePluginStop(t *testing.T) {
	k := NewKernel(contracts.KernelConfig{Name: "k", Version: "1.0.0"})
	p := &fakePlugin{name: "memory"}
	require.NoError(t, k.RegisterPlugin(p))
	require.NoError(t, k.Start())

	require.NoError(t, k.Stop())
	assert.True(t, p.stopped)
}

func TestKernel_HealthCheckReflectsPluginErrors(t *testing.T) {
	k := NewKernel(contracts.KernelConfig{Name: "k", Version: "1.0.0"})
	p := &fakePlugin{name: "flaky", healthErr: errors.New("unreachable")}
	require.NoError(t, k.RegisterPlugin(p))

	results := k.HealthCheck()
	assert.ErrorContains(t, results["flaky"], "unreachable")
}

func TestKernel_GetStatusReportsPluginCountAndMode(t *testing.T) {
	k := NewKernel(contracts.KernelConfig{Name: "k", Version: "1.0.0", Mode: contracts.ModeStandard})
	require.NoError(t, k.RegisterPlugin(&fakePlugin{name: "a"}))
	require.NoError(t, k.Start())

	status := k.GetStatus()
	assert.Equal(t, "k", status.Name)
	assert.Equal(t, contracts.ModeStandard, status.Mode)
	assert.Equal(t, 1, status.PluginCount)
	assert.True(t, status.Running)
}

func TestKernel_ReloadConfigDispatchesEvent(t *testing.T) {
	k := NewKernel(contracts.KernelConfig{Name: "k", Version: "1.0.0"})
	fired := false
	k.On("config.reload", func(event string, data any) { fired = true })

	k.ReloadConfig(contracts.KernelConfig{Version: "2.0.0"})
	assert.True(t, fired)
	assert.Equal(t, "2.0.0", k.GetStatus().Version)
}

func TestKernel_SetModeUpdatesStatus(t *testing.T) {
	k := NewKernel(contracts.KernelConfig{Name: "k", Version: "1.0.0"})
	k.SetMode(contracts.ModeFreeTime)
	assert.Equal(t, contracts.ModeFreeTime, k.GetStatus().Mode)
}
