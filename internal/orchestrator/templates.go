package orchestrator

import (
	"fmt"
	"strings"

	"github.com/optiverse/opticore/internal/types"
)

// staticTemplate renders a provider-free draft. It is the terminal rung of
// the fallback ladder: plain, safe text the user can edit by hand.
func staticTemplate(req types.DraftRequest) (string, bool) {
	greeting := "Hello,"
	if req.Email.Sender != "" {
		greeting = fmt.Sprintf("Hello %s,", firstName(req.Email.Sender))
	}

	switch req.Action {
	case "compose", "cover_letter", "outreach", "review_request", "packing_list", "itinerary":
		return fmt.Sprintf("%s\n\n[Draft your message here. Automated drafting is temporarily unavailable.]\n\nBest regards,", greeting), true
	case "reply":
		return fmt.Sprintf("%s\n\nThank you for your message. I will get back to you with a full reply shortly.\n\nBest regards,", greeting), true
	case "summarize":
		if req.Email.Body == "" {
			return "No content available to summarize.", true
		}
		return "Summary (automated summarization unavailable, showing excerpt):\n" + excerpt(req.Email.Body, 300), true
	case "rewrite":
		if req.Email.Body == "" {
			return "", false
		}
		// Nothing sensible to do locally; hand the original back unchanged.
		return req.Email.Body, true
	default:
		return "", false
	}
}

func firstName(sender string) string {
	name := sender
	if i := strings.Index(sender, "<"); i > 0 {
		name = strings.TrimSpace(sender[:i])
	}
	if i := strings.IndexAny(name, " @"); i > 0 {
		name = name[:i]
	}
	return name
}

func excerpt(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
