//go:build !integration

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/pos-checkout-service/config"
)

func TestInitializeApp_RequiresDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.Database = config.DatabaseConfig{Enabled: false}

	engine, cleanup, err := InitializeApp(cfg)

	assert.ErrorIs(t, err, ErrDatabaseDisabled)
	assert.Nil(t, engine)
	assert.Nil(t, cleanup)
}

func TestInitializeDatabase_Disabled(t *testing.T) {
	components, err := InitializeDatabase(config.DatabaseConfig{Enabled: false})

	assert.ErrorIs(t, err, ErrDatabaseDisabled)
	assert.Nil(t, components)
}

func TestDatabaseComponents_CloseNil(t *testing.T) {
	var components *DatabaseComponents
	assert.NotPanics(t, func() {
		components.Close(t.Context())
	})
}
