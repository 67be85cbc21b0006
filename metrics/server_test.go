package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServer_StartAndShutdown(t *testing.T) {
	server := NewServer("127.0.0.1:0")

	server.Start()
	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, server.Err())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(ctx))
}

func TestServer_BadAddressSurfacesError(t *testing.T) {
	server := NewServer("999.999.999.999:0")

	server.Start()
	time.Sleep(100 * time.Millisecond)

	assert.Error(t, server.Err())
}
