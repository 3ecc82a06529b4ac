package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/async"
	"github.com/tenantkit/tenantkit/tenant"
)

// orgRecord exercises deep-copy hand-off between scopes.
type orgRecord struct {
	ID   string
	Tags []string
}

func (o *orgRecord) Clone() any {
	tags := make([]string, len(o.Tags))
	copy(tags, o.Tags)
	return &orgRecord{ID: o.ID, Tags: tags}
}

func tenantContext(identifier string) context.Context {
	scope := tenant.NewScope()
	scope.Set(tenant.DefaultKey, identifier)
	return tenant.NewContext(context.Background(), scope)
}

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()

		future := async.Go(context.Background(), 21, func(ctx context.Context, n int) (int, error) {
			return n * 2, nil
		})

		result, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("computation failed")
		future := async.Go(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
			return 0, wantErr
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("pre-canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		invoked := false
		future := async.Go(ctx, 0, func(ctx context.Context, _ int) (int, error) {
			invoked = true
			return 1, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, invoked)
	})
}

func TestGoTenantHandOff(t *testing.T) {
	t.Parallel()

	t.Run("identity follows the goroutine", func(t *testing.T) {
		t.Parallel()

		ctx := tenantContext("acme")
		future := async.Go(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (string, error) {
			id, ok := tenant.IdentifierFromContext(ctx)
			require.True(t, ok)
			return id, nil
		})

		id, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("child scope is independent", func(t *testing.T) {
		t.Parallel()

		scope := tenant.NewScope()
		scope.Set(tenant.DefaultKey, "acme")
		ctx := tenant.NewContext(context.Background(), scope)

		future := async.Go(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (struct{}, error) {
			child, ok := tenant.ScopeFrom(ctx)
			require.True(t, ok)
			child.Set(tenant.DefaultKey, "mallory")
			return struct{}{}, nil
		})
		_, err := future.Await()
		require.NoError(t, err)

		// The parent's entry is untouched by the child's overwrite.
		v, ok := scope.Get(tenant.DefaultKey)
		require.True(t, ok)
		assert.Equal(t, "acme", v)
	})

	t.Run("cloned values do not share state", func(t *testing.T) {
		t.Parallel()

		original := &orgRecord{ID: "acme", Tags: []string{"pro"}}
		scope := tenant.NewScope()
		scope.Set(tenant.DefaultKey, original)
		ctx := tenant.NewContext(context.Background(), scope)

		future := async.Go(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (*orgRecord, error) {
			v, ok := tenant.Value(ctx)
			require.True(t, ok)
			record := v.(*orgRecord)
			record.Tags = append(record.Tags, "mutated")
			return record, nil
		})
		_, err := future.Await()
		require.NoError(t, err)

		assert.Equal(t, []string{"pro"}, original.Tags, "goroutine mutation must not reach the parent")
	})

	t.Run("no scope passes context through", func(t *testing.T) {
		t.Parallel()

		future := async.Go(context.Background(), struct{}{}, func(ctx context.Context, _ struct{}) (bool, error) {
			_, ok := tenant.ScopeFrom(ctx)
			return ok, nil
		})

		hasScope, err := future.Await()
		require.NoError(t, err)
		assert.False(t, hasScope)
	})
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("completes in time", func(t *testing.T) {
		t.Parallel()

		future := async.Go(context.Background(), 0, func(ctx context.Context, _ int) (string, error) {
			return "done", nil
		})

		result, err := future.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, "done", result)
	})

	t.Run("times out", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		future := async.Go(context.Background(), 0, func(ctx context.Context, _ int) (string, error) {
			<-release
			return "late", nil
		})

		_, err := future.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	future := async.Go(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
		<-release
		return 1, nil
	})

	assert.False(t, future.IsComplete())
	close(release)

	_, err := future.Await()
	require.NoError(t, err)
	assert.True(t, future.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("collects results in order", func(t *testing.T) {
		t.Parallel()

		double := func(ctx context.Context, n int) (int, error) { return n * 2, nil }
		futures := []*async.Future[int]{
			async.Go(context.Background(), 1, double),
			async.Go(context.Background(), 2, double),
			async.Go(context.Background(), 3, double),
		}

		results, err := async.WaitAll(futures...)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 6}, results)
	})

	t.Run("reports first error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("second failed")
		futures := []*async.Future[int]{
			async.Go(context.Background(), 1, func(ctx context.Context, n int) (int, error) { return n, nil }),
			async.Go(context.Background(), 2, func(ctx context.Context, n int) (int, error) { return 0, wantErr }),
		}

		results, err := async.WaitAll(futures...)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, []int{1, 0}, results)
	})

	t.Run("fan-out keeps tenant identity", func(t *testing.T) {
		t.Parallel()

		ctx := tenantContext("acme")
		whoami := func(ctx context.Context, _ int) (string, error) {
			id, _ := tenant.IdentifierFromContext(ctx)
			return id, nil
		}

		futures := []*async.Future[string]{
			async.Go(ctx, 0, whoami),
			async.Go(ctx, 0, whoami),
			async.Go(ctx, 0, whoami),
		}

		results, err := async.WaitAll(futures...)
		require.NoError(t, err)
		assert.Equal(t, []string{"acme", "acme", "acme"}, results)
	})
}
