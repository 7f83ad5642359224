package contracts

// Action is the trade action inferred from a post.
type Action string

const (
	ActionBuy  Action = "Buy"
	ActionSell Action = "Sell"
	ActionHold Action = "Hold"
)

// Direction is the position direction inferred from a post.
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// TradeIntent combines the action and direction inferred from post text.
type TradeIntent struct {
	Action    Action    `json:"type"`
	Direction Direction `json:"direction"`
}

// Signal is one extracted (ticker, stance, optional price) tuple.
// Zero or more are produced per post; signals are never persisted on
// their own.
type Signal struct {
	Ticker     string      `json:"ticker"`
	Intent     TradeIntent `json:"stance"`
	Price      *float64    `json:"price,omitempty"`
	Confidence float64     `json:"confidence"`
}

// Extractor turns raw post text into signals. Implementations are
// pluggable; a higher-fidelity extractor can replace the keyword one
// without touching downstream stages.
type Extractor interface {
	Extract(text string) []Signal
}
