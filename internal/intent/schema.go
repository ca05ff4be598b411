package intent

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// classificationSchema validates the JSON object the remote classifier is
// asked to emit. Anything that fails validation is treated as a provider
// failure and handed to the fallback path.
const classificationSchema = `{
  "type": "object",
  "required": ["intent", "confidence"],
  "properties": {
    "intent": {
      "type": "string",
      "enum": ["follow_up", "thank_you", "apology", "summarize", "reply", "rewrite", "schedule", "other"]
    },
    "confidence": {"type": "number"},
    "suggestedLLM": {
      "type": "string",
      "enum": ["openai", "claude", "gemini", "cohere"]
    },
    "context": {
      "type": "object",
      "properties": {
        "urgency": {"type": "string", "enum": ["low", "normal", "high"]},
        "complexity": {"type": "string", "enum": ["simple", "moderate", "complex"]},
        "emotionalTone": {"type": "string"},
        "needsRealTimeInfo": {"type": "boolean"}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(classificationSchema)

func validateClassification(doc string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var reasons []string
	for _, e := range result.Errors() {
		reasons = append(reasons, e.String())
	}
	return fmt.Errorf("classification payload invalid: %s", strings.Join(reasons, "; "))
}
