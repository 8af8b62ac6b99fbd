package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of evaluating one graph file.
type Result struct {
	Path  string
	Value any
	Err   error
}

// Evaluate loads every graph file and has the service compute it, running
// up to Config.Workers requests at once. Results are returned in the order
// of paths; a failing file does not stop the others.
func (a *App) Evaluate(ctx context.Context, paths []string) ([]Result, error) {
	if a.client == nil {
		return nil, ErrNoService
	}
	ctx = a.Context(ctx)
	a.logger.Debug("Evaluate started.", "files", len(paths), "workers", a.config.Workers)

	results := make([]Result, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = a.evaluateFile(gCtx, path)
			return gCtx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("evaluation interrupted: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	a.logger.Info("Evaluation finished.", "files", len(paths), "failed", failed)
	return results, nil
}

func (a *App) evaluateFile(ctx context.Context, path string) Result {
	graph, err := a.LoadGraph(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	value, err := a.client.GetInfo(ctx, graph)
	if err != nil {
		a.logger.Warn("Evaluation failed.", "path", path, "error", err)
		return Result{Path: path, Err: err}
	}
	return Result{Path: path, Value: value}
}
