package model

// Quote is the quote-of-the-moment. Fallback is set when it came from the
// built-in list instead of the remote provider.
type Quote struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Fallback bool   `json:"fallback"`
}
