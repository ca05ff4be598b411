package emotion

import (
	"sort"
	"strings"
	"unicode"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/types"
)

const genericSuggestion = "No strong emotional signal detected; a neutral tone is appropriate."

// Analyzer scores text against the static lexicon. Analyze is a pure
// function of its inputs; identical calls produce identical results.
type Analyzer struct {
	tuning func() config.TuningConfig
}

func NewAnalyzer(tuning func() config.TuningConfig) *Analyzer {
	return &Analyzer{tuning: tuning}
}

// Analyze estimates the emotional state behind userInput plus any prior
// email content. requestedTone, when set, enables the tone-mismatch check.
func (a *Analyzer) Analyze(userInput, originalEmail, requestedTone string) types.EmotionalAnalysis {
	tuning := a.tuning()

	tokens := tokenize(userInput + " " + originalEmail)

	scores := map[string]float64{}
	var valenceSum, arousalSum float64
	hits := 0
	for _, tok := range tokens {
		entry, ok := lexicon[tok]
		if !ok {
			continue
		}
		scores[entry.Emotion] += 1.0 / float64(len(tokens))
		valenceSum += entry.Valence
		arousalSum += entry.Arousal
		hits++
	}

	if hits == 0 {
		return types.EmotionalAnalysis{
			DominantEmotion: "neutral",
			Confidence:      0.5,
			Emotions:        map[string]float64{"neutral": 1.0},
			Sentiment:       types.SentimentNeutral,
			Arousal:         0.5,
			Valence:         0,
			Suggestions:     []string{genericSuggestion},
		}
	}

	dominant, dominantScore := argmax(scores)

	var posMass, negMass float64
	for emo, score := range scores {
		switch {
		case positiveEmotions[emo]:
			posMass += score
		case negativeEmotions[emo]:
			negMass += score
		}
	}

	sentiment := types.SentimentNeutral
	switch {
	case posMass > negMass*tuning.SentimentHysteresis:
		sentiment = types.SentimentPositive
	case negMass > posMass*tuning.SentimentHysteresis:
		sentiment = types.SentimentNegative
	}

	confidence := dominantScore * tuning.ConfidenceScale
	if confidence > 1.0 {
		confidence = 1.0
	}

	analysis := types.EmotionalAnalysis{
		DominantEmotion: dominant,
		Confidence:      confidence,
		Emotions:        scores,
		Sentiment:       sentiment,
		Arousal:         arousalSum / float64(hits),
		Valence:         valenceSum / float64(hits),
	}
	analysis.Suggestions = buildSuggestions(analysis, requestedTone)
	return analysis
}

// buildSuggestions evaluates the advice rules in fixed order and truncates
// to the first three matches.
func buildSuggestions(a types.EmotionalAnalysis, requestedTone string) []string {
	var out []string

	if a.Confidence < 0.4 {
		out = append(out, "Emotional signal is weak; re-read the message before committing to a tone.")
	}

	switch a.Sentiment {
	case types.SentimentNegative:
		out = append(out, "Acknowledge the sender's concerns before moving to solutions.")
	case types.SentimentPositive:
		out = append(out, "The sender is in a positive frame; match their warmth briefly.")
	}

	if a.Arousal > 0.7 {
		out = append(out, "High emotional intensity detected; keep the reply calm and measured.")
	} else if a.Arousal < 0.3 {
		out = append(out, "Low energy detected; a warmer opening may help engagement.")
	}

	if requestedTone != "" {
		if warning, ok := toneMismatch[a.DominantEmotion+"-"+strings.ToLower(requestedTone)]; ok {
			out = append(out, warning)
		}
	}

	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}

// argmax returns the highest-scoring emotion; ties resolve to the
// lexicographically first name so output is deterministic.
func argmax(scores map[string]float64) (string, float64) {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestScore := "", -1.0
	for _, name := range names {
		if scores[name] > bestScore {
			best, bestScore = name, scores[name]
		}
	}
	return best, bestScore
}
