package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/schoolcare/counselor-dashboard/internal/api/metrics"
	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

// Fetcher reads the three SIS collections as one unit.
type Fetcher struct {
	sis ports.SISClient
	log zerolog.Logger
}

// NewFetcher returns a Fetcher backed by the given SIS client.
func NewFetcher(sis ports.SISClient, log zerolog.Logger) *Fetcher {
	return &Fetcher{sis: sis, log: log}
}

// Fetch reads counselors, students and messages concurrently. If any read
// fails the whole batch fails: three empty collections are returned together
// with the error, never a partial result. On success, counselors referenced
// only by messages are synthesized and appended.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Collections, error) {
	var (
		counselors []domain.Counselor
		students   []domain.Student
		messages   []domain.Message
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if counselors, err = f.sis.ListCounselors(gctx); err != nil {
			metrics.FetchFailuresTotal.WithLabelValues("counselors").Inc()
			return fmt.Errorf("counselors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if students, err = f.sis.ListStudents(gctx); err != nil {
			metrics.FetchFailuresTotal.WithLabelValues("students").Inc()
			return fmt.Errorf("students: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if messages, err = f.sis.ListMessages(gctx); err != nil {
			metrics.FetchFailuresTotal.WithLabelValues("messages").Inc()
			return fmt.Errorf("messages: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		f.log.Error().Err(err).Msg("failed to fetch admin data")
		return domain.EmptyCollections(), fmt.Errorf("fetch admin data: %w", err)
	}

	out := domain.Collections{
		Counselors: MergeCounselors(counselors, messages),
		Students:   nonNil(students),
		Messages:   nonNil(messages),
	}
	return out, nil
}

// MergeCounselors appends a synthesized counselor for every username a
// message references that is not already present. Each username is added at
// most once per call.
func MergeCounselors(counselors []domain.Counselor, messages []domain.Message) []domain.Counselor {
	merged := make([]domain.Counselor, 0, len(counselors))
	merged = append(merged, counselors...)

	known := make(map[string]struct{}, len(counselors))
	for _, c := range counselors {
		known[c.Username] = struct{}{}
	}

	synthesized := 0
	for _, m := range messages {
		if m.Counselor == "" {
			continue
		}
		if _, ok := known[m.Counselor]; ok {
			continue
		}
		known[m.Counselor] = struct{}{}
		merged = append(merged, domain.SynthesizeCounselor(m.Counselor))
		synthesized++
	}
	metrics.SynthesizedCounselors.Set(float64(synthesized))

	return merged
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
