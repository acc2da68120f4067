package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/netly-app/netly/internal/cache"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

func newTestOTPService(t *testing.T) (*OTPService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return NewOTPService(store, 5*time.Minute), mr
}

func TestOTPIssueAndVerify(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)
	require.Regexp(t, `^[1-9]\d{5}$`, code)

	require.NoError(t, svc.Verify(ctx, "a@example.com", code))
}

func TestOTPVerifyConsumesCode(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "a@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Verify(ctx, "a@example.com", code))

	err = svc.Verify(ctx, "a@example.com", code)
	require.ErrorIs(t, err, appErr.ErrOTPInvalid)
}

func TestOTPWrongCodeDoesNotConsume(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "a@example.com")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Verify(ctx, "a@example.com", "000000"), appErr.ErrOTPInvalid)
	require.NoError(t, svc.Verify(ctx, "a@example.com", code))
}

func TestOTPReissueInvalidatesOldCode(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	first, err := svc.Issue(ctx, "a@example.com")
	require.NoError(t, err)
	second, err := svc.Issue(ctx, "a@example.com")
	require.NoError(t, err)

	if first != second {
		require.ErrorIs(t, svc.Verify(ctx, "a@example.com", first), appErr.ErrOTPInvalid)
	}
	require.NoError(t, svc.Verify(ctx, "a@example.com", second))
}

func TestOTPVerifyNeverIssued(t *testing.T) {
	svc, _ := newTestOTPService(t)
	err := svc.Verify(context.Background(), "nobody@example.com", "123456")
	require.ErrorIs(t, err, appErr.ErrOTPInvalid)
}

func TestOTPExpires(t *testing.T) {
	svc, mr := newTestOTPService(t)
	ctx := context.Background()

	code, err := svc.Issue(ctx, "a@example.com")
	require.NoError(t, err)

	mr.FastForward(6 * time.Minute)
	require.ErrorIs(t, svc.Verify(ctx, "a@example.com", code), appErr.ErrOTPInvalid)
}

func TestOTPPending(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	pending, err := svc.Pending(ctx, "a@example.com")
	require.NoError(t, err)
	require.False(t, pending)

	_, err = svc.Issue(ctx, "a@example.com")
	require.NoError(t, err)

	pending, err = svc.Pending(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, pending)
}
