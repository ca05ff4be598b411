package types

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// EmotionalAnalysis is a lexicon-derived estimate of the emotional state
// behind a piece of text. It is a pure function of its inputs; two calls
// with the same text yield identical results.
type EmotionalAnalysis struct {
	DominantEmotion string             `json:"dominantEmotion"`
	Confidence      float64            `json:"confidence"`
	Emotions        map[string]float64 `json:"emotions"`
	Sentiment       Sentiment          `json:"sentiment"`
	Arousal         float64            `json:"arousal"`
	Valence         float64            `json:"valence"`
	Suggestions     []string           `json:"suggestions"`
}
