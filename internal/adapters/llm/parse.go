package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

const maxFallbackCampaigns = 5

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

var fallbackChannels = []string{"Social Media", "Email"}

// ParseCampaigns extracts campaign ideas from a model response. Models do not
// always honor the JSON-only instruction, so parsing degrades in stages:
// direct parse, then a fenced code block, then treating each non-empty line
// as a campaign title.
func ParseCampaigns(content string) []model.CampaignIdea {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	if ideas, ok := parseJSONCampaigns(content); ok {
		return ideas
	}

	if m := fencedJSONPattern.FindStringSubmatch(content); m != nil {
		if ideas, ok := parseJSONCampaigns(strings.TrimSpace(m[1])); ok {
			return ideas
		}
	}

	return lineCampaigns(content)
}

func parseJSONCampaigns(content string) ([]model.CampaignIdea, bool) {
	var ideas []model.CampaignIdea
	if err := json.Unmarshal([]byte(content), &ideas); err == nil {
		return sanitize(ideas), true
	}

	// Some models wrap the array in an envelope object.
	var envelope struct {
		Campaigns []model.CampaignIdea `json:"campaigns"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err == nil && len(envelope.Campaigns) > 0 {
		return sanitize(envelope.Campaigns), true
	}
	return nil, false
}

func sanitize(ideas []model.CampaignIdea) []model.CampaignIdea {
	out := make([]model.CampaignIdea, 0, len(ideas))
	for _, idea := range ideas {
		idea.Title = strings.TrimSpace(idea.Title)
		if idea.Title == "" {
			continue
		}
		if len(idea.Channels) == 0 {
			idea.Channels = append([]string(nil), fallbackChannels...)
		}
		out = append(out, idea)
	}
	return out
}

// lineCampaigns is the last resort: salvage plain-text responses by turning
// each content line into a bare campaign.
func lineCampaigns(content string) []model.CampaignIdea {
	var ideas []model.CampaignIdea
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. ")
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		ideas = append(ideas, model.CampaignIdea{
			Title:       line,
			Description: "Campaign idea generated from calendar events.",
			Channels:    append([]string(nil), fallbackChannels...),
		})
		if len(ideas) == maxFallbackCampaigns {
			break
		}
	}
	return ideas
}
