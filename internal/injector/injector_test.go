package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/coulomb/internal/config"
	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/observability/log"
)

func TestInitializeLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "warn"

	logger, cleanup, err := InitializeLogger(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, log.LevelWarn, logger.Level())
}

func TestInitializeServer(t *testing.T) {
	cfg := config.Default()
	cfg.Preset = interaction.PresetDesktop
	cfg.Log.Level = "silent"

	srv, cleanup, err := InitializeServer(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, srv.Handler())
	assert.Zero(t, srv.SessionCount())
}

func TestInitializeServerRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"

	_, _, err := InitializeServer(cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Log.Level = "silent"
	cfg.Preset = "mobile"
	_, _, err = InitializeServer(cfg)
	assert.ErrorIs(t, err, interaction.ErrUnknownPreset)
}
