package contracts

import "time"

// Recommendation is one flattened (post, ticker) record produced by the
// normalizer. Immutable once created; consumed only by the aggregator.
type Recommendation struct {
	PostID       string      `json:"post_id"`
	AuthorHandle string      `json:"author_handle"`
	Ticker       string      `json:"ticker"`
	Intent       TradeIntent `json:"stance"`
	Price        *float64    `json:"price,omitempty"`
	Confidence   float64     `json:"confidence"`
	MentionedAt  time.Time   `json:"mentioned_at"`
	SourceText   string      `json:"source_text"`
	SourceURL    string      `json:"source_url"`
	NormalizedAt time.Time   `json:"normalized_at"`
}
