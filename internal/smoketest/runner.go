package smoketest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/logger"
)

// Run executes the complete API smoke test against a running server.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting calendar API smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.String("month", config.Month),
		logger.String("timeout", config.Timeout.String()),
		logger.Bool("generate", config.Generate))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Walk the calendar reads
	if err := checkCalendarReads(ctx, client, config, stats); err != nil {
		return fmt.Errorf("calendar read check failed: %w", err)
	}

	// Step 3: Register a throwaway account
	if err := checkAuth(ctx, client, config); err != nil {
		return fmt.Errorf("auth check failed: %w", err)
	}

	// Step 4: Save, list and delete a campaign
	if err := checkSavedCampaigns(ctx, client, config, stats); err != nil {
		return fmt.Errorf("saved-campaign check failed: %w", err)
	}

	// Step 5: Track a do-this-for-me interaction
	if err := checkTracking(ctx, client, config); err != nil {
		return fmt.Errorf("tracking check failed: %w", err)
	}

	// Step 6: Optionally exercise campaign generation
	if config.Generate {
		if err := checkGeneration(ctx, client, config, stats); err != nil {
			return fmt.Errorf("generation check failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "smoke test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if err := expectStatus(resp, http.StatusOK, "healthz"); err != nil {
		return err
	}
	drain(resp)

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// checkCalendarReads lists the months, fetches the configured month in detail
// and downloads its ICS export.
func checkCalendarReads(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) error {
	logger.Get().Info(ctx, "walking calendar reads")

	resp, err := client.Get(ctx, config.BaseURL+"/api/months")
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK, "list months"); err != nil {
		return err
	}
	var months monthsResponse
	if err := readJSON(resp, &months); err != nil {
		return err
	}
	stats.MonthsListed = len(months.Months)
	if len(months.Months) == 0 {
		return fmt.Errorf("no months in calendar; was ingestion run?")
	}

	month := config.Month
	if month == "" {
		month = months.Months[0]
	}

	resp, err = client.Get(ctx, config.BaseURL+"/api/months/"+url.PathEscape(month))
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK, "fetch month"); err != nil {
		return err
	}
	var detail monthResponse
	if err := readJSON(resp, &detail); err != nil {
		return err
	}
	stats.MonthsFetched++
	logger.Get().Info(ctx, "month fetched",
		logger.String("month", detail.Month),
		logger.Int("combinedEvents", len(detail.CombinedEvents)))

	resp, err = client.Get(ctx, config.BaseURL+"/api/months/"+url.PathEscape(month)+"/calendar.ics")
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK, "fetch ICS"); err != nil {
		return err
	}
	stats.ICSBytes = drain(resp)

	resp, err = client.Get(ctx, config.BaseURL+"/api/services")
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK, "list services"); err != nil {
		return err
	}
	var services servicesResponse
	if err := readJSON(resp, &services); err != nil {
		return err
	}
	stats.ServicesListed = len(services.Services)
	return nil
}

// checkAuth signs up the throwaway account and keeps its token on the client.
func checkAuth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "registering throwaway account", logger.String("email", config.Email))

	resp, err := client.Post(ctx, config.BaseURL+"/api/auth/signup", map[string]string{
		"email":    config.Email,
		"name":     "Smoke Test",
		"password": config.Password,
	})
	if err != nil {
		return err
	}

	// A rerun against the same database signs in instead.
	if resp.StatusCode == http.StatusConflict {
		drain(resp)
		resp, err = client.Post(ctx, config.BaseURL+"/api/auth/signin", map[string]string{
			"email":    config.Email,
			"password": config.Password,
		})
		if err != nil {
			return err
		}
		if err := expectStatus(resp, http.StatusOK, "signin"); err != nil {
			return err
		}
	} else if err := expectStatus(resp, http.StatusCreated, "signup"); err != nil {
		return err
	}

	var session sessionResponse
	if err := readJSON(resp, &session); err != nil {
		return err
	}
	if session.Token == "" {
		return fmt.Errorf("no token in session response")
	}
	client.setToken(session.Token)
	return nil
}

// checkSavedCampaigns saves a campaign, confirms the duplicate conflict, then
// deletes it again.
func checkSavedCampaigns(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) error {
	logger.Get().Info(ctx, "exercising saved campaigns")

	campaign := map[string]interface{}{
		"title":       fmt.Sprintf("Smoke Test Campaign %d", time.Now().UnixNano()),
		"description": "Created by the API smoke test.",
		"month":       "January",
		"day":         1,
		"year":        time.Now().Year(),
	}

	resp, err := client.Post(ctx, config.BaseURL+"/api/saved-campaigns", campaign)
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusCreated, "save campaign"); err != nil {
		return err
	}
	var saved savedCampaignResponse
	if err := readJSON(resp, &saved); err != nil {
		return err
	}
	stats.CampaignsCreated++

	resp, err = client.Post(ctx, config.BaseURL+"/api/saved-campaigns", campaign)
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusConflict, "duplicate save"); err != nil {
		return err
	}

	resp, err = client.Get(ctx, config.BaseURL+"/api/saved-campaigns")
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK, "list campaigns"); err != nil {
		return err
	}
	var list savedCampaignsResponse
	if err := readJSON(resp, &list); err != nil {
		return err
	}
	if len(list.Campaigns) == 0 {
		return fmt.Errorf("saved campaign missing from list")
	}

	resp, err = client.Delete(ctx, config.BaseURL+"/api/saved-campaigns/"+saved.ID)
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusNoContent, "delete campaign"); err != nil {
		return err
	}
	stats.CampaignsDeleted++
	return nil
}

// checkTracking records an open and confirms the global flag flips.
func checkTracking(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "exercising do-this-for-me tracking")

	title := url.PathEscape("Smoke Test Campaign")
	resp, err := client.Post(ctx, config.BaseURL+"/api/do-this-for-me/"+title, map[string]bool{
		"hasOpened": true,
	})
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK, "track interaction"); err != nil {
		return err
	}
	drain(resp)

	resp, err = client.Get(ctx, config.BaseURL+"/api/do-this-for-me/global")
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK, "global tracking"); err != nil {
		return err
	}
	var global globalTrackingResponse
	if err := readJSON(resp, &global); err != nil {
		return err
	}
	if !global.HasAnyOpened {
		return fmt.Errorf("global hasAnyOpened flag did not flip")
	}
	return nil
}

// checkGeneration exercises the campaign generator. This is opt-in because it
// spends provider credits.
func checkGeneration(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) error {
	logger.Get().Info(ctx, "exercising campaign generation")

	month := config.Month
	if month == "" {
		month = "January"
	}
	resp, err := client.Post(ctx, config.BaseURL+"/api/generate-campaign", map[string]string{
		"month": month,
	})
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK, "generate campaigns"); err != nil {
		return err
	}
	var generated generateResponse
	if err := readJSON(resp, &generated); err != nil {
		return err
	}
	stats.IdeasGenerated = len(generated.Campaigns)
	return nil
}

// displayFinalStats prints the final smoke test statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("monthsListed", stats.MonthsListed),
		logger.Int("monthsFetched", stats.MonthsFetched),
		logger.Int("icsBytes", stats.ICSBytes),
		logger.Int("servicesListed", stats.ServicesListed),
		logger.Int("campaignsCreated", stats.CampaignsCreated),
		logger.Int("campaignsDeleted", stats.CampaignsDeleted),
		logger.Int("ideasGenerated", stats.IdeasGenerated),
		logger.String("duration", stats.Duration.String()))
}
