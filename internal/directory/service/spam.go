package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SpamCounter counts spam reports for a single phone.
type SpamCounter interface {
	CountSpamReportsByPhone(ctx context.Context, phone string) (int, error)
}

// BatchSpamCounter is an optional store capability for counting many phones in
// one round trip.
type BatchSpamCounter interface {
	CountSpamReportsByPhones(ctx context.Context, phones []string) (map[string]int, error)
}

// SpamScorer computes spam likelihood: the raw number of reports against a
// phone. No decay or weighting.
type SpamScorer struct {
	counter SpamCounter
	limit   int
}

func NewSpamScorer(counter SpamCounter, concurrency int) *SpamScorer {
	if concurrency <= 0 {
		concurrency = defaultScoreConcurrency
	}
	return &SpamScorer{counter: counter, limit: concurrency}
}

func (s *SpamScorer) ScoreFor(ctx context.Context, phone string) (int, error) {
	return s.counter.CountSpamReportsByPhone(ctx, phone)
}

// ScoresFor scores every phone. Missing phones in a batch answer count as
// zero. Any failed lookup fails the whole call.
func (s *SpamScorer) ScoresFor(ctx context.Context, phones []string) (map[string]int, error) {
	scores := make(map[string]int, len(phones))
	if len(phones) == 0 {
		return scores, nil
	}

	if batch, ok := s.counter.(BatchSpamCounter); ok {
		counts, err := batch.CountSpamReportsByPhones(ctx, phones)
		if err != nil {
			return nil, err
		}
		for _, phone := range phones {
			scores[phone] = counts[phone]
		}
		return scores, nil
	}

	results := make([]int, len(phones))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, phone := range phones {
		g.Go(func() error {
			n, err := s.counter.CountSpamReportsByPhone(gctx, phone)
			if err != nil {
				return err
			}
			results[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, phone := range phones {
		scores[phone] = results[i]
	}
	return scores, nil
}
