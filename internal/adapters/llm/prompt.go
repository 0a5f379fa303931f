package llm

import (
	"fmt"
	"strings"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

// BuildPrompt renders the user message for one month's campaign request.
func BuildPrompt(payload model.CampaignPromptPayload) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate 5 creative marketing campaign ideas for a home services business for the month of %s.\n\n", payload.Month)

	if svc, ok := model.ServiceByID(payload.ServiceID); ok {
		fmt.Fprintf(&b, "The business specializes in: %s.\n\n", svc.Name)
	}

	if len(payload.Themes) > 0 {
		b.WriteString("Monthly themes:\n")
		for _, t := range payload.Themes {
			fmt.Fprintf(&b, "- %s\n", t)
		}
		b.WriteString("\n")
	}

	if len(payload.SelectedEvents) > 0 {
		b.WriteString("Focus the campaigns on these selected dates:\n")
		writePromptEvents(&b, payload.SelectedEvents)
	} else {
		if len(payload.HighlightedDates) > 0 {
			b.WriteString("Key dates this month:\n")
			writePromptEvents(&b, payload.HighlightedDates)
		}
		if len(payload.Events) > 0 {
			b.WriteString("Other observances:\n")
			writePromptEvents(&b, payload.Events)
		}
	}

	b.WriteString(`Respond with a JSON array of exactly 5 campaign objects. Each object must have:
- "title": a catchy campaign name
- "description": 2-3 sentences describing the campaign
- "channels": an array of marketing channels to use
- "targetDate": the date the campaign centers on, if any

Respond with only the JSON array, no other text.`)

	return b.String()
}

func writePromptEvents(b *strings.Builder, events []model.PromptEvent) {
	for _, e := range events {
		if e.Date != "" {
			fmt.Fprintf(b, "- %s: %s\n", e.Date, e.Event)
		} else {
			fmt.Fprintf(b, "- %s\n", e.Event)
		}
	}
	b.WriteString("\n")
}
