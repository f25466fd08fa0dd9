package types

// Sentiment is a document-level result from a remote language provider.
type Sentiment struct {
	Magnitude float32 `firestore:"magnitude" json:"magnitude"`
	Score     float32 `firestore:"score" json:"score"`
}

// SentimentVector maps each scored question to its polarity for one respondent.
// Text questions fall in [-1, 1]; ordinal questions are one of -1, 0, 1.
type SentimentVector map[string]float64

// Total is the TotalSentimentScore of the vector.
func (v SentimentVector) Total() float64 {
	var sum float64
	for _, s := range v {
		sum += s
	}
	return sum
}
