// Package model contains domain models passed between layers.
package model

import "strings"

// EventType classifies how a calendar event is presented.
type EventType string

// Event type values as they appear in the JSON documents.
const (
	TypeDaily       EventType = "daily"
	TypeHighlighted EventType = "highlighted"
	TypePromotional EventType = "promotional"
	TypeMonthly     EventType = "monthly"
)

// CalendarEvent is one promotional or holiday entry.
// Date keeps the raw spreadsheet label (e.g. "2nd - Groundhog Day");
// Event is the display text and is often identical to Date.
type CalendarEvent struct {
	Date  string    `json:"date"`
	Event string    `json:"event"`
	Type  EventType `json:"type"`
	Month string    `json:"month"`
}

// MonthlyData is the per-month record produced from the 2024 theme calendar.
// Themes are free-text labels not tied to a specific day.
type MonthlyData struct {
	Month            string          `json:"month"`
	Themes           []string        `json:"themes"`
	Events           []CalendarEvent `json:"events"`
	HighlightedDates []CalendarEvent `json:"highlightedDates"`
	ImagePath        string          `json:"imagePath,omitempty"`
}

// CombinedEvent is a merged view of events that share the same month, date
// label and event text across the two sources. Types holds every distinct
// type tag seen among the duplicates; the embedded event is the first seen.
type CombinedEvent struct {
	CalendarEvent
	Types []EventType `json:"types"`
}

// HasType reports whether the combined event carries the given type tag.
func (c CombinedEvent) HasType(t EventType) bool {
	for _, existing := range c.Types {
		if existing == t {
			return true
		}
	}
	return false
}

// PromptEvent is the {date, event} pair sent to the campaign collaborator.
type PromptEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// CampaignPromptPayload is the request shape the campaign-generation
// collaborator expects.
type CampaignPromptPayload struct {
	Month            string        `json:"month"`
	Themes           []string      `json:"themes"`
	Events           []PromptEvent `json:"events"`
	HighlightedDates []PromptEvent `json:"highlightedDates"`
	SelectedEvents   []PromptEvent `json:"selectedEvents,omitempty"`
	ServiceID        string        `json:"serviceId,omitempty"`
}

// CampaignIdea is one generated marketing campaign suggestion.
type CampaignIdea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Channels    []string `json:"channels"`
	TargetDate  string   `json:"targetDate,omitempty"`
}

// MonthNames lists the twelve English month names in calendar order.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// IsMonthName reports whether s equals an English month name, ignoring case.
func IsMonthName(s string) bool {
	for _, m := range MonthNames {
		if strings.EqualFold(s, m) {
			return true
		}
	}
	return false
}

// StartsWithMonthName reports whether s begins with an English month name,
// ignoring case.
func StartsWithMonthName(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range MonthNames {
		if strings.HasPrefix(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// FormatMonthName capitalizes the first letter and lowercases the rest,
// matching how month names are displayed ("january" -> "January").
func FormatMonthName(month string) string {
	if month == "" {
		return ""
	}
	return strings.ToUpper(month[:1]) + strings.ToLower(month[1:])
}

// MonthImagePath returns the conventional root-relative image path for a
// month, used when ingestion recorded no explicit mapping.
func MonthImagePath(month string) string {
	return "/images/months/" + FormatMonthName(month) + ".png"
}

// Service is one trade/service a campaign can be scoped to.
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Services is the fixed trade catalog offered in the campaign generator.
var Services = []Service{
	{ID: "appliance-repair", Name: "Appliance Repair"},
	{ID: "bathroom-remodeling", Name: "Bathroom Remodeling"},
	{ID: "carpet-cleaning", Name: "Carpet Cleaning"},
	{ID: "carpentry-woodworking", Name: "Carpentry & Woodworking"},
	{ID: "chimneys-fireplaces", Name: "Chimneys and Fireplaces"},
	{ID: "doors", Name: "Doors"},
	{ID: "drywall-installation", Name: "Drywall Installation"},
	{ID: "electrician", Name: "Electrician"},
	{ID: "flooring-tile", Name: "Flooring & Tile"},
	{ID: "garage-door-installation", Name: "Garage Door Installation"},
	{ID: "handyman-service", Name: "Handyman Service"},
	{ID: "home-cleaning", Name: "Home Cleaning"},
	{ID: "hvac", Name: "HVAC"},
	{ID: "kitchen-remodeling", Name: "Kitchen Remodeling and Renovation"},
	{ID: "landscaping-outdoor", Name: "Landscaping and Outdoor Services"},
	{ID: "locksmith", Name: "Locksmith"},
	{ID: "masonry-concrete", Name: "Masonry and Concrete"},
	{ID: "painting-wallpaper", Name: "Painting and Wallpaper"},
	{ID: "pest-control", Name: "Pest Control"},
	{ID: "plumbing", Name: "Plumbing"},
	{ID: "roofing", Name: "Roofing"},
	{ID: "swimming-pool-spa", Name: "Swimming Pool and Spa Services"},
	{ID: "water-mold-restoration", Name: "Water and Mold Damage Restoration"},
	{ID: "window-installation-repair", Name: "Window Installation and Repair"},
}

// ServiceByID looks up a catalog entry. The second return is false when the
// id is not in the catalog.
func ServiceByID(id string) (Service, bool) {
	for _, s := range Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
