package worker

import (
	"context"
	"sync"

	"github.com/claimlens/claimlens/internal/model"
)

// Verifier is the single pipeline operation the batch pool drives.
type Verifier interface {
	Verify(ctx context.Context, req model.VerifyRequest) (*model.FactCheckReport, error)
}

// BatchResult pairs one input claim with its outcome. Exactly one of
// Report and Err is set.
type BatchResult struct {
	Index  int                    `json:"index"`
	Text   string                 `json:"text"`
	Report *model.FactCheckReport `json:"report,omitempty"`
	Err    string                 `json:"error,omitempty"`
}

// BatchPool verifies many claims with bounded parallelism. One claim
// failing never affects the others.
type BatchPool struct {
	verifier Verifier
	workers  int
}

// NewBatchPool creates a pool running at most workers verifications
// concurrently.
func NewBatchPool(verifier Verifier, workers int) *BatchPool {
	if workers <= 0 {
		workers = 4
	}
	return &BatchPool{verifier: verifier, workers: workers}
}

// Run verifies every claim and returns results in input order. A
// cancelled context stops dispatching new work; claims already running
// finish under their own budgets.
func (p *BatchPool) Run(ctx context.Context, publishingContext string, texts []string) []BatchResult {
	results := make([]BatchResult, len(texts))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.verifyOne(ctx, publishingContext, i, texts[i])
			}
		}()
	}

	for i := range texts {
		select {
		case jobs <- i:
		case <-ctx.Done():
			results[i] = BatchResult{Index: i, Text: texts[i], Err: ctx.Err().Error()}
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (p *BatchPool) verifyOne(ctx context.Context, publishingContext string, i int, text string) BatchResult {
	result := BatchResult{Index: i, Text: text}

	report, err := p.verifier.Verify(ctx, model.VerifyRequest{
		Text:              text,
		PublishingContext: publishingContext,
	})
	if err != nil {
		result.Err = err.Error()
		return result
	}

	result.Report = report
	return result
}
