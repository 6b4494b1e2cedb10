package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()

	t.Run("SkipsDisabled", func(t *testing.T) {
		mgr := NewManager()
		on := &stubFeature{name: "export", enabled: true}
		off := &stubFeature{name: "debug", enabled: false}
		mgr.Register(on)
		mgr.Register(off)

		require.NoError(t, mgr.LoadAll(app))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
	})

	t.Run("PropagatesError", func(t *testing.T) {
		mgr := NewManager()
		mgr.Register(&stubFeature{name: "export", enabled: true, loadErr: errors.New("boom")})

		err := mgr.LoadAll(app)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "export")
	})
}
