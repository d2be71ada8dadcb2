package resource

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(context.Background(), 50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(context.Background(), 40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	assert.False(t, c.TryAcquireMemory(20))
	assert.Equal(t, int64(90), c.MemoryUsage())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireMemory(ctx, 20), context.DeadlineExceeded)

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(context.Background(), 20))
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(context.Background(), 1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Readers(t *testing.T) {
	c := NewController(Config{MaxReaders: 2})

	require.NoError(t, c.AcquireReader(context.Background()))
	require.NoError(t, c.AcquireReader(context.Background()))

	assert.False(t, c.TryAcquireReader())

	c.ReleaseReader()
	assert.True(t, c.TryAcquireReader())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(context.Background(), 100))
	assert.True(t, c.TryAcquireMemory(100))
	c.ReleaseMemory(100)
	assert.Equal(t, int64(0), c.MemoryUsage())

	require.NoError(t, c.AcquireReader(context.Background()))
	c.ReleaseReader()

	require.NoError(t, c.AcquireIO(context.Background(), 1024))
}

func TestLimitedReader(t *testing.T) {
	c := NewController(Config{})
	r := NewLimitedReader(context.Background(), c, strings.NewReader("3\n\nO 0 0 0\n"))

	var buf bytes.Buffer
	_, err := buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "3\n\nO 0 0 0\n", buf.String())
}

func TestLimitedWriter(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	var buf bytes.Buffer
	w := NewLimitedWriter(context.Background(), c, &buf)

	n, err := w.Write([]byte("row"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "row", buf.String())
}
