package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/internal/loader"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

type stubAnalyzer struct {
	failFor map[string]bool
	calls   []string
}

func (s *stubAnalyzer) Analyze(_ context.Context, handle string) (*contracts.Scorecard, error) {
	s.calls = append(s.calls, handle)
	if s.failFor[handle] {
		return nil, errors.New("boom")
	}
	return &contracts.Scorecard{Handle: handle, TotalCalls: 1}, nil
}

func storeWith(t *testing.T, handles ...string) *loader.MemoryStore {
	t.Helper()
	store := loader.NewMemoryStore()
	for _, h := range handles {
		require.NoError(t, store.Upsert(context.Background(), &contracts.Scorecard{Handle: h}))
	}
	return store
}

func TestRefreshScorecardsJob_Run(t *testing.T) {
	store := storeWith(t, "alice", "bob")
	analyzer := &stubAnalyzer{}
	job := NewRefreshScorecardsJob(analyzer, store, "0 0 6 * * *", logger.NewNop())

	assert.Equal(t, "refresh_scorecards", job.Name())
	assert.Equal(t, "0 0 6 * * *", job.Schedule())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []string{"alice", "bob"}, analyzer.calls)
}

func TestRefreshScorecardsJob_SkipsFailures(t *testing.T) {
	store := storeWith(t, "alice", "bob")
	analyzer := &stubAnalyzer{failFor: map[string]bool{"alice": true}}
	job := NewRefreshScorecardsJob(analyzer, store, "@daily", logger.NewNop())

	require.NoError(t, job.Run(context.Background()))
	assert.Len(t, analyzer.calls, 2)
}

func TestRefreshScorecardsJob_AllFail(t *testing.T) {
	store := storeWith(t, "alice")
	analyzer := &stubAnalyzer{failFor: map[string]bool{"alice": true}}
	job := NewRefreshScorecardsJob(analyzer, store, "@daily", logger.NewNop())

	assert.Error(t, job.Run(context.Background()))
}

func TestRefreshScorecardsJob_EmptyStore(t *testing.T) {
	job := NewRefreshScorecardsJob(&stubAnalyzer{}, loader.NewMemoryStore(), "@daily", logger.NewNop())
	assert.NoError(t, job.Run(context.Background()))
}
