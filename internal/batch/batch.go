// Package batch drives several independent grounding runs concurrently
// over a shared worker pool. Concurrency is safe here because each Query
// owns its own GroundTarget (and therefore its own definition cache) and
// each Run call allocates its own Engine and arena — nothing is shared
// across queries except the read-only Database.
package batch

import (
	"context"
	"sync"

	"github.com/avery-ng/probground/internal/parallel"
	"github.com/avery-ng/probground/pkg/ground"
)

// Query is one independent goal to ground.
type Query struct {
	Name     string
	Database ground.Database
	Target   ground.GroundTarget
	Config   ground.Config
	Goal     ground.NodeID
	Args     ground.Context

	// RegisterBuiltins, if set, is invoked against the query's engine
	// before Execute runs, so each query can wire up the built-ins its
	// database's Call nodes were compiled to expect.
	RegisterBuiltins func(*ground.Engine)
}

// Result pairs a Query's name with the outcome of grounding it.
type Result struct {
	Name    string
	Results []ground.ExecResult
	Stats   *ground.Stats
	Err     error
}

// Run grounds every query concurrently over a worker pool sized to
// maxWorkers (0 or negative defaults to runtime.NumCPU, per
// parallel.NewWorkerPool), returning one Result per query in the same
// order the queries were given.
func Run(ctx context.Context, maxWorkers int, queries []Query) []Result {
	pool := parallel.NewWorkerPool(maxWorkers)
	defer pool.Shutdown()

	results := make([]Result, len(queries))
	var wg sync.WaitGroup

	for i, q := range queries {
		i, q := i, q
		wg.Add(1)
		submitErr := pool.Submit(ctx, func() {
			defer wg.Done()
			results[i] = runOne(q)
		})
		if submitErr != nil {
			wg.Done()
			results[i] = Result{Name: q.Name, Err: submitErr}
		}
	}

	wg.Wait()
	return results
}

func runOne(q Query) Result {
	engine := ground.NewEngine(q.Database, q.Target, q.Config)
	if q.RegisterBuiltins != nil {
		q.RegisterBuiltins(engine)
	} else {
		ground.RegisterStandardBuiltins(engine)
	}
	res, err := engine.Execute(q.Goal, q.Args)
	return Result{Name: q.Name, Results: res, Stats: engine.Stats(), Err: err}
}
