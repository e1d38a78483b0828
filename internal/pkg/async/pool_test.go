package async

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCollectsAllResults(t *testing.T) {
	tasks := []Task{
		{Name: "a", Execute: func(ctx context.Context) (interface{}, error) { return 1, nil }},
		{Name: "b", Execute: func(ctx context.Context) (interface{}, error) { return 2, nil }},
		{Name: "c", Execute: func(ctx context.Context) (interface{}, error) { return nil, errors.New("boom") }},
	}

	results := Run(context.Background(), 2, tasks)

	require.Len(t, results, 3)
	assert.Equal(t, 1, results["a"].Data)
	assert.NoError(t, results["a"].Err)
	assert.Equal(t, 2, results["b"].Data)
	assert.EqualError(t, results["c"].Err, "boom")
}

func TestRunBoundsConcurrency(t *testing.T) {
	started := make(chan struct{}, 8)
	release := make(chan struct{})

	var tasks []Task
	for i := 0; i < 4; i++ {
		tasks = append(tasks, Task{
			Name: string(rune('a' + i)),
			Execute: func(ctx context.Context) (interface{}, error) {
				started <- struct{}{}
				<-release
				return nil, nil
			},
		})
	}

	done := make(chan map[string]Result)
	go func() { done <- Run(context.Background(), 2, tasks) }()

	<-started
	<-started
	select {
	case <-started:
		t.Fatal("more than two tasks running concurrently")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	results := <-done
	assert.Len(t, results, 4)
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task{
		{Name: "a", Execute: func(ctx context.Context) (interface{}, error) { return 1, nil }},
		{Name: "b", Execute: func(ctx context.Context) (interface{}, error) { return 2, nil }},
	}

	results := Run(ctx, 2, tasks)

	require.Len(t, results, 2)
	assert.ErrorIs(t, results["a"].Err, context.Canceled)
	assert.ErrorIs(t, results["b"].Err, context.Canceled)
}
