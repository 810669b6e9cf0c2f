package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	t.Cleanup(func() { Version, Dirty = "dev", "false" })

	Version = "1.2.0"
	assert.Equal(t, "1.2.0", String())

	Dirty = "true"
	assert.Equal(t, "1.2.0-dirty", String())
	assert.True(t, Get().Dirty)
}

func TestFull(t *testing.T) {
	full := Full()
	assert.Contains(t, full, "pastefix dev")
	assert.Contains(t, full, runtime.Version())
	assert.Contains(t, full, runtime.GOOS+"/"+runtime.GOARCH)
	assert.NotContains(t, full, "Dirty")
}
