package emotion

// lexiconEntry describes one word's affective value. Valence is in [-1,1],
// arousal in [0,1].
type lexiconEntry struct {
	Emotion string
	Valence float64
	Arousal float64
}

// positiveEmotions and negativeEmotions partition the lexicon's emotion
// labels for sentiment aggregation. "neutral" belongs to neither.
var positiveEmotions = map[string]bool{
	"joy":        true,
	"gratitude":  true,
	"excitement": true,
	"relief":     true,
}

var negativeEmotions = map[string]bool{
	"sadness":     true,
	"anger":       true,
	"fear":        true,
	"frustration": true,
	"anxiety":     true,
}

// lexicon is the static word table consulted during analysis. It is small
// on purpose: the analyzer is a cheap local estimate, not a model.
var lexicon = map[string]lexiconEntry{
	// joy
	"happy":     {Emotion: "joy", Valence: 0.8, Arousal: 0.6},
	"glad":      {Emotion: "joy", Valence: 0.7, Arousal: 0.5},
	"delighted": {Emotion: "joy", Valence: 0.9, Arousal: 0.7},
	"great":     {Emotion: "joy", Valence: 0.6, Arousal: 0.5},
	"wonderful": {Emotion: "joy", Valence: 0.9, Arousal: 0.6},
	"love":      {Emotion: "joy", Valence: 0.9, Arousal: 0.7},

	// gratitude
	"thanks":     {Emotion: "gratitude", Valence: 0.7, Arousal: 0.4},
	"thank":      {Emotion: "gratitude", Valence: 0.7, Arousal: 0.4},
	"grateful":   {Emotion: "gratitude", Valence: 0.8, Arousal: 0.4},
	"appreciate": {Emotion: "gratitude", Valence: 0.7, Arousal: 0.4},

	// excitement
	"excited":   {Emotion: "excitement", Valence: 0.8, Arousal: 0.9},
	"thrilled":  {Emotion: "excitement", Valence: 0.9, Arousal: 0.9},
	"amazing":   {Emotion: "excitement", Valence: 0.8, Arousal: 0.8},
	"fantastic": {Emotion: "excitement", Valence: 0.8, Arousal: 0.8},

	// relief
	"relieved": {Emotion: "relief", Valence: 0.6, Arousal: 0.3},
	"finally":  {Emotion: "relief", Valence: 0.4, Arousal: 0.4},
	"resolved": {Emotion: "relief", Valence: 0.5, Arousal: 0.3},

	// sadness
	"sad":          {Emotion: "sadness", Valence: -0.7, Arousal: 0.3},
	"unhappy":      {Emotion: "sadness", Valence: -0.6, Arousal: 0.3},
	"disappointed": {Emotion: "sadness", Valence: -0.6, Arousal: 0.4},
	"sorry":        {Emotion: "sadness", Valence: -0.4, Arousal: 0.3},
	"regret":       {Emotion: "sadness", Valence: -0.5, Arousal: 0.3},

	// anger
	"angry":        {Emotion: "anger", Valence: -0.8, Arousal: 0.9},
	"furious":      {Emotion: "anger", Valence: -0.9, Arousal: 0.9},
	"outrageous":   {Emotion: "anger", Valence: -0.8, Arousal: 0.8},
	"unacceptable": {Emotion: "anger", Valence: -0.7, Arousal: 0.7},

	// fear
	"afraid":  {Emotion: "fear", Valence: -0.6, Arousal: 0.7},
	"scared":  {Emotion: "fear", Valence: -0.7, Arousal: 0.8},
	"worried": {Emotion: "fear", Valence: -0.5, Arousal: 0.6},

	// frustration
	"frustrated":  {Emotion: "frustration", Valence: -0.6, Arousal: 0.7},
	"frustrating": {Emotion: "frustration", Valence: -0.6, Arousal: 0.7},
	"annoyed":     {Emotion: "frustration", Valence: -0.5, Arousal: 0.6},
	"stuck":       {Emotion: "frustration", Valence: -0.4, Arousal: 0.5},
	"broken":      {Emotion: "frustration", Valence: -0.5, Arousal: 0.5},

	// anxiety
	"anxious":  {Emotion: "anxiety", Valence: -0.5, Arousal: 0.8},
	"nervous":  {Emotion: "anxiety", Valence: -0.4, Arousal: 0.7},
	"stressed": {Emotion: "anxiety", Valence: -0.5, Arousal: 0.8},
	"deadline": {Emotion: "anxiety", Valence: -0.3, Arousal: 0.6},
	"overdue":  {Emotion: "anxiety", Valence: -0.4, Arousal: 0.6},
}

// toneMismatch maps "{dominantEmotion}-{requestedTone}" to a warning shown
// when the requested tone fights the detected emotional state.
var toneMismatch = map[string]string{
	"anger-enthusiastic":    "The sender sounds angry; an enthusiastic tone may read as dismissive.",
	"anger-casual":          "The sender sounds angry; a casual tone may escalate the situation.",
	"sadness-enthusiastic":  "The sender sounds down; an upbeat tone may feel tone-deaf.",
	"sadness-casual":        "The sender sounds down; consider a more empathetic register.",
	"frustration-casual":    "The sender sounds frustrated; acknowledge the issue before lightening the tone.",
	"anxiety-casual":        "The sender sounds anxious; a casual tone may not feel reassuring.",
	"joy-formal":            "The sender sounds upbeat; a strictly formal tone may feel cold.",
	"gratitude-formal":      "The sender is being warm; heavy formality may create distance.",
	"excitement-formal":     "The sender sounds excited; matching some of that energy may land better.",
}
