package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "invoice:cust-1", Key("invoice", "cust-1"))
}

func TestLocalLocker_ExclusiveUntilReleased(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	first, err := locker.Obtain(ctx, "invoice:c1", DefaultTTL)
	require.NoError(t, err)

	busyCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = locker.Obtain(busyCtx, "invoice:c1", DefaultTTL)
	assert.ErrorIs(t, err, ErrNotObtained)

	other, err := locker.Obtain(ctx, "invoice:c2", DefaultTTL)
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, first.Release(ctx))
	require.NoError(t, first.Release(ctx), "double release is a no-op")

	again, err := locker.Obtain(ctx, "invoice:c1", DefaultTTL)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}
