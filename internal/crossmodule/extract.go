package crossmodule

import (
	"regexp"
	"strings"
)

// Targeted extraction regexes. Extraction is best-effort: a field that does
// not match is simply absent from the payload, never an error.
var (
	emailPattern       = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	datePattern        = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{2,4}|(?i:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* \d{1,2}(?:, \d{4})?)\b`)
	currencyPattern    = regexp.MustCompile(`[$€£]\s?\d+(?:[.,]\d{2,3})*|\b\d+(?:[.,]\d{2})?\s?(?:USD|EUR|GBP)\b`)
	orderNumberPattern = regexp.MustCompile(`(?i)\b(?:order|confirmation|tracking|booking|reference)\s*(?:number|no\.?|#|id)?[:\s]\s*([A-Z0-9]*\d[A-Z0-9\-]+)`)
	jobTitlePattern    = regexp.MustCompile(`(?i)(?:position|role|opening)\s+(?:of|as|for)\s+([A-Za-z][A-Za-z /]{2,40})`)
	destinationPattern = regexp.MustCompile(`(?i)\bto\s+([A-Z][a-zA-Z]+(?:\s[A-Z][a-zA-Z]+)?)`)
)

// Extraction is the structured payload pulled out of free text. Empty
// fields mean the corresponding pattern found nothing.
type Extraction struct {
	Email       string `json:"email,omitempty"`
	Date        string `json:"date,omitempty"`
	Amount      string `json:"amount,omitempty"`
	OrderNumber string `json:"orderNumber,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// Extract runs every pattern against the text and returns whatever matched.
func Extract(text string) Extraction {
	ex := Extraction{
		Email:  emailPattern.FindString(text),
		Date:   datePattern.FindString(text),
		Amount: currencyPattern.FindString(text),
	}
	if m := orderNumberPattern.FindStringSubmatch(text); len(m) > 1 {
		ex.OrderNumber = m[1]
	}
	if m := jobTitlePattern.FindStringSubmatch(text); len(m) > 1 {
		ex.JobTitle = strings.TrimSpace(m[1])
	}
	ex.Destination = extractDestination(text)
	return ex
}

// extractDestination returns a city following "to" only when the city is in
// the supported destination list. Unknown cities yield an empty string.
func extractDestination(text string) string {
	for _, m := range destinationPattern.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(m[1])
		for _, city := range supportedDestinations {
			if strings.EqualFold(candidate, city) {
				return city
			}
			// "to New York City" style suffixes: accept a prefix match on
			// multi-word city names.
			if strings.HasPrefix(strings.ToLower(candidate), strings.ToLower(city)) {
				return city
			}
		}
	}
	return ""
}

// Payload flattens the extraction into the string map carried on a
// cross-module action.
func (e Extraction) Payload() map[string]string {
	p := map[string]string{}
	if e.Email != "" {
		p["email"] = e.Email
	}
	if e.Date != "" {
		p["date"] = e.Date
	}
	if e.Amount != "" {
		p["amount"] = e.Amount
	}
	if e.OrderNumber != "" {
		p["orderNumber"] = e.OrderNumber
	}
	if e.JobTitle != "" {
		p["jobTitle"] = e.JobTitle
	}
	if e.Destination != "" {
		p["destination"] = e.Destination
	}
	return p
}
