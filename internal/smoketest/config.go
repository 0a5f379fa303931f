package smoketest

import "time"

// Config holds configuration for the API smoke test
type Config struct {
	BaseURL  string        // Base URL of the service
	Email    string        // Email for the throwaway test account
	Password string        // Password for the throwaway test account
	Month    string        // Month to exercise in detail
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for test output
	Verbose  bool          // Enable verbose logging
	Generate bool          // Also exercise campaign generation (needs an API key on the server)
}

// Stats holds smoke test statistics
type Stats struct {
	MonthsListed     int
	MonthsFetched    int
	ICSBytes         int
	ServicesListed   int
	CampaignsCreated int
	CampaignsDeleted int
	IdeasGenerated   int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

// Response shapes mirrored from the API.

type monthsResponse struct {
	Months []string `json:"months"`
}

type monthResponse struct {
	Month          string `json:"month"`
	CombinedEvents []struct {
		Date  string   `json:"date"`
		Event string   `json:"event"`
		Types []string `json:"types"`
	} `json:"combinedEvents"`
}

type servicesResponse struct {
	Services []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"services"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type savedCampaignResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type savedCampaignsResponse struct {
	Campaigns []savedCampaignResponse `json:"campaigns"`
}

type generateResponse struct {
	Campaigns []struct {
		Title    string   `json:"title"`
		Channels []string `json:"channels"`
	} `json:"campaigns"`
}

type globalTrackingResponse struct {
	HasAnyOpened bool `json:"hasAnyOpened"`
}
