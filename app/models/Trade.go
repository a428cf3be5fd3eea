package models

// TradeBundle is one side of a bilateral offer.
type TradeBundle struct {
	Rubles        int   `json:"rubles"`
	Properties    []int `json:"properties"`
	ReleaseTokens int   `json:"release_tokens"`
	Favours       int   `json:"favours"`
}

// TradeOffer is a pending bilateral negotiation. Offers are immutable
// once proposed and are removed from the active set on resolution.
type TradeOffer struct {
	Id         string      `json:"id"`
	FromId     string      `json:"from_id"`
	ToId       string      `json:"to_id"`
	Offering   TradeBundle `json:"offering"`
	Requesting TradeBundle `json:"requesting"`
}
