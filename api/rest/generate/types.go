package generate

// Request represents the request body for a generation
type Request struct {
	Prompt string `json:"prompt" binding:"required"`
	Style  string `json:"style"`
	Size   string `json:"size"`
}

// Response represents a completed generation
type Response struct {
	URL              string `json:"url"`
	Model            string `json:"model"`
	RemainingCredits int    `json:"remaining_credits"`
	Bucket           string `json:"bucket"`
}
