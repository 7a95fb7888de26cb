package document

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/folio/layout"
)

// Job is one independent render for GenerateAll.
type Job struct {
	Name       string
	Parts      []layout.Element
	Strategy   Strategy
	Canvas     layout.Canvas
	Typesetter layout.Typesetter
}

// GenerateAll renders jobs concurrently, at most limit at a time (no limit
// when limit <= 0). Jobs must not share content trees or canvases. The
// first failure cancels jobs that have not started yet.
func GenerateAll(ctx context.Context, jobs []Job, limit int, s Settings) ([]*Report, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	reports := make([]*Report, len(jobs))
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			js := s
			js.Logger = s.logger().With("job", job.Name)
			rep, err := GenerateMerged(job.Canvas, job.Typesetter, job.Parts, job.Strategy, js)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
