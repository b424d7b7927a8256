package payments

import (
	"context"
	"testing"

	"estatehub_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeGateway struct {
	status Status
	err    error
	calls  int
}

func (f *fakeGateway) GetStatus(_ context.Context, _ string) (Status, error) {
	f.calls++
	return f.status, f.err
}

func newTestCache(t *testing.T, next Gateway) (*CachedGateway, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewCachedGateway(next, rdb, logger.New("test")), mr
}

func TestCachedGateway_CachesTerminalStatus(t *testing.T) {
	gw := &fakeGateway{status: StatusSuccess}
	cache, mr := newTestCache(t, gw)

	for i := 0; i < 3; i++ {
		status, err := cache.GetStatus(context.Background(), "ref-123")
		if err != nil {
			t.Fatalf("GetStatus call %d error: %v", i, err)
		}
		if status != StatusSuccess {
			t.Fatalf("GetStatus call %d = %q, want %q", i, status, StatusSuccess)
		}
	}

	if gw.calls != 1 {
		t.Errorf("gateway called %d times, want 1", gw.calls)
	}
	if got, err := mr.Get(cacheKeyPrefix + "ref-123"); err != nil || got != string(StatusSuccess) {
		t.Errorf("cached value = %q (err %v), want %q", got, err, StatusSuccess)
	}
}

func TestCachedGateway_DoesNotCachePending(t *testing.T) {
	gw := &fakeGateway{status: StatusPending}
	cache, mr := newTestCache(t, gw)

	for i := 0; i < 2; i++ {
		status, err := cache.GetStatus(context.Background(), "ref-456")
		if err != nil {
			t.Fatalf("GetStatus call %d error: %v", i, err)
		}
		if status != StatusPending {
			t.Fatalf("GetStatus call %d = %q, want %q", i, status, StatusPending)
		}
	}

	if gw.calls != 2 {
		t.Errorf("gateway called %d times, want 2 (pending must not be cached)", gw.calls)
	}
	if mr.Exists(cacheKeyPrefix + "ref-456") {
		t.Errorf("pending status was written to the cache")
	}
}

func TestCachedGateway_FailedIsTerminal(t *testing.T) {
	gw := &fakeGateway{status: StatusFailed}
	cache, _ := newTestCache(t, gw)

	if _, err := cache.GetStatus(context.Background(), "ref-789"); err != nil {
		t.Fatalf("first GetStatus error: %v", err)
	}
	if _, err := cache.GetStatus(context.Background(), "ref-789"); err != nil {
		t.Fatalf("second GetStatus error: %v", err)
	}

	if gw.calls != 1 {
		t.Errorf("gateway called %d times, want 1", gw.calls)
	}
}
