package normalize

import (
	"time"

	"github.com/cahrendt0815/alphahandle/internal/contracts"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// Normalizer flattens extracted signals into one recommendation per
// (post, ticker) pair. It owns no I/O; the clock is injected so output
// is deterministic under test.
type Normalizer struct {
	extractor contracts.Extractor
	now       func() time.Time
	logger    *logger.Logger
}

// New builds a normalizer using the wall clock.
func New(extractor contracts.Extractor, log *logger.Logger) *Normalizer {
	return NewWithClock(extractor, log, time.Now)
}

// NewWithClock builds a normalizer with an explicit clock.
func NewWithClock(extractor contracts.Extractor, log *logger.Logger, now func() time.Time) *Normalizer {
	return &Normalizer{extractor: extractor, now: now, logger: log}
}

// Normalize runs extraction over each post and flattens the results.
// Posts that yield no signals are skipped; the output preserves post
// order, then signal order within a post.
func (n *Normalizer) Normalize(posts []contracts.RawPost) []contracts.Recommendation {
	normalizedAt := n.now().UTC()

	var recs []contracts.Recommendation
	for _, post := range posts {
		signals := n.extractor.Extract(post.Text)
		if len(signals) == 0 {
			continue
		}
		for _, sig := range signals {
			recs = append(recs, contracts.Recommendation{
				PostID:       post.ID,
				AuthorHandle: post.AuthorHandle,
				Ticker:       sig.Ticker,
				Intent:       sig.Intent,
				Price:        sig.Price,
				Confidence:   sig.Confidence,
				MentionedAt:  post.CreatedAt,
				SourceText:   post.Text,
				SourceURL:    post.URL,
				NormalizedAt: normalizedAt,
			})
		}
	}

	n.logger.WithFields(map[string]interface{}{
		"posts":           len(posts),
		"recommendations": len(recs),
	}).Debug("normalized posts")

	return recs
}
