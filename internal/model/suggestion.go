package model

// SuggestionRequest describes the person to suggest gifts for, as sent by
// the client.
type SuggestionRequest struct {
	PersonName    string         `json:"personName"`
	Relationship  string         `json:"relationship"`
	Budget        float64        `json:"budget"`
	Notes         string         `json:"notes,omitempty"`
	ExistingGifts []ExistingGift `json:"existingGifts,omitempty"`
}

// ExistingGift is a compact view of a gift already tracked for the person,
// used to steer the model away from repeats.
type ExistingGift struct {
	Title  string  `json:"title"`
	Price  float64 `json:"price,omitempty"`
	Status string  `json:"status,omitempty"`
	Notes  string  `json:"notes,omitempty"`
}

// GiftSuggestion is one AI-generated gift idea.
type GiftSuggestion struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	EstimatedPrice float64 `json:"estimatedPrice"`
	Reason         string  `json:"reason"`
}
