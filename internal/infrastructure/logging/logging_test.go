package logging_test

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planforge/aps-go/internal/infrastructure/config"
	"github.com/planforge/aps-go/internal/infrastructure/logging"
)

func TestSetup_LevelGatesDebugMessages(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "aps.log")
	closer, err := logging.Setup(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: path,
	})
	require.NoError(t, err)
	defer closer.Close()
	defer log.SetOutput(os.Stderr)

	// Act
	logging.Debugf("suppressed %d", 1)
	logging.Infof("emitted %d", 2)

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "emitted 2")
}

func TestSetup_FileOutputRequiresAPath(t *testing.T) {
	_, err := logging.Setup(config.LoggingConfig{Level: "info", Output: "file"})

	assert.Error(t, err)
}
