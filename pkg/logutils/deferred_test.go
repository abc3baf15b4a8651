package logutils

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferred_HoldsUntilFlush(t *testing.T) {
	d := &Deferred{}
	l := zerolog.New(d)

	l.Warn().Str("draft", "petition.pdf").Msg("open draft")
	assert.Positive(t, d.Len())

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Contains(t, out.String(), `"draft":"petition.pdf"`)
	assert.Zero(t, d.Len())

	out.Reset()
	require.NoError(t, d.Flush(&out))
	assert.Empty(t, out.String())
}

func TestDeferred_ConcurrentWrites(t *testing.T) {
	d := &Deferred{}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Write([]byte("x"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, d.Len())
}
