package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnogodumalon/habits/internal/livingapps"
)

type countingLoader struct {
	calls atomic.Int32
	err   error
}

func (l *countingLoader) Load(context.Context) error {
	l.calls.Add(1)
	return l.err
}

func nextResult(t *testing.T, r *Refresher) RefreshResultMsg {
	t.Helper()
	select {
	case msg := <-r.resultCh:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refresh result")
		return RefreshResultMsg{}
	}
}

func TestRefresherLoadsOnStartAndOnDemand(t *testing.T) {
	loader := &countingLoader{}
	r := New(loader, 0)

	// Start's command is not run here; results are read off the channel.
	require.NotNil(t, r.Start())
	defer r.Stop()

	msg := nextResult(t, r)
	assert.NoError(t, msg.Error)
	assert.Equal(t, int32(1), loader.calls.Load())

	r.Refresh()
	nextResult(t, r)
	assert.Equal(t, int32(2), loader.calls.Load())

	assert.Nil(t, r.Start(), "second Start is a no-op")
}

func TestRefresherTicks(t *testing.T) {
	loader := &countingLoader{}
	r := New(loader, 10*time.Millisecond)
	r.Start()
	defer r.Stop()

	nextResult(t, r)
	nextResult(t, r)
	assert.GreaterOrEqual(t, loader.calls.Load(), int32(2))
}

func TestRefresherReportsAuthErrors(t *testing.T) {
	authErr := &livingapps.AuthError{Status: &livingapps.StatusError{StatusCode: 401}}
	loader := &countingLoader{err: authErr}
	r := New(loader, 0)
	r.Start()
	defer r.Stop()

	msg := nextResult(t, r)
	assert.True(t, errors.Is(msg.Error, authErr))
	assert.True(t, msg.AuthError)
}

func TestWaitForNextResult(t *testing.T) {
	r := New(&countingLoader{}, 0)
	r.sendResult(RefreshResultMsg{At: time.Unix(1, 0)})

	msg := r.WaitForNextResult()()
	assert.Equal(t, RefreshResultMsg{At: time.Unix(1, 0)}, msg)
}
