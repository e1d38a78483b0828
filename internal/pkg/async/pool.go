// Package async runs a fixed batch of named tasks on a bounded worker
// pool and collects every result. Built for read fan-out: the caller
// inspects the result map and decides whether a single failure sinks
// the whole batch.
package async

import (
	"context"
	"sync"
)

type Task struct {
	Name    string
	Execute func(ctx context.Context) (interface{}, error)
}

type Result struct {
	Name string
	Data interface{}
	Err  error
}

// Run executes tasks on at most workerCount goroutines and returns one
// Result per task, keyed by name. Tasks not yet started when ctx is
// canceled report ctx.Err(), so the returned map always covers every
// task.
func Run(ctx context.Context, workerCount int, tasks []Task) map[string]Result {
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}

	taskCh := make(chan Task)
	resultCh := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				if err := ctx.Err(); err != nil {
					resultCh <- Result{Name: task.Name, Err: err}
					continue
				}
				data, err := task.Execute(ctx)
				resultCh <- Result{Name: task.Name, Data: data, Err: err}
			}
		}()
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)
	wg.Wait()
	close(resultCh)

	results := make(map[string]Result, len(tasks))
	for result := range resultCh {
		results[result.Name] = result
	}
	return results
}
