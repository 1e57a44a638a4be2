package request

type CreateAssetRequest struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	Segment string `json:"segment"`
	Type    string `json:"type"`
}

type UpdateAssetRequest struct {
	Ticker  *string `json:"ticker,omitempty"`
	Name    *string `json:"name,omitempty"`
	Segment *string `json:"segment,omitempty"`
	Type    *string `json:"type,omitempty"`
}
