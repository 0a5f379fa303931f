package service_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/adapters/repository"
	service "github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/app"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/config"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/calendar"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeGenerator struct {
	lastPayload model.CampaignPromptPayload
	ideas       []model.CampaignIdea
	err         error
}

func (f *fakeGenerator) GenerateCampaigns(_ context.Context, payload model.CampaignPromptPayload) ([]model.CampaignIdea, error) {
	f.lastPayload = payload
	return f.ideas, f.err
}

func testSnapshot() *calendar.Snapshot {
	return &calendar.Snapshot{
		MonthlyData: []model.MonthlyData{
			{
				Month:  "February",
				Themes: []string{"Heart Health Month"},
				Events: []model.CalendarEvent{
					{Date: "2nd - Groundhog Day", Event: "2nd - Groundhog Day", Type: model.TypeDaily, Month: "February"},
				},
				HighlightedDates: []model.CalendarEvent{
					{Date: "14th - Valentine's Day", Event: "14th - Valentine's Day", Type: model.TypeHighlighted, Month: "February"},
				},
			},
		},
		PromotionalEvents: []model.CalendarEvent{
			{Date: "14th - Valentine's Day", Event: "14th - Valentine's Day", Type: model.TypePromotional, Month: "February"},
		},
	}
}

func startTestService(t *testing.T, gen *fakeGenerator) *service.Service {
	t.Helper()
	cfg := config.New()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")

	svc := service.New(cfg,
		service.WithSnapshot(testSnapshot()),
		service.WithCampaignGenerator(gen),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestMonthOperations(t *testing.T) {
	ctx := context.Background()
	svc := startTestService(t, &fakeGenerator{})

	Convey("Given a started service", t, func() {
		Convey("When listing months", func() {
			So(svc.Months(ctx), ShouldResemble, []string{"February"})
		})

		Convey("When fetching a month case-insensitively", func() {
			m, err := svc.MonthEvents(ctx, "fEbRuArY")
			So(err, ShouldBeNil)
			So(m.Month, ShouldEqual, "February")
			So(len(m.PromotionalEvents), ShouldEqual, 1)
		})

		Convey("When fetching a name that is not a month", func() {
			_, err := svc.MonthEvents(ctx, "Brumaire")
			So(errors.Is(err, service.ErrUnknownMonth), ShouldBeTrue)
		})

		Convey("When exporting a month as ICS", func() {
			out, err := svc.MonthICS(ctx, "February")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "BEGIN:VCALENDAR")
			So(out, ShouldContainSubstring, "Valentine's Day")
		})

		Convey("When listing services", func() {
			services := svc.Services(ctx)
			So(len(services), ShouldEqual, 24)
		})
	})
}

func TestGenerateCampaigns(t *testing.T) {
	ctx := context.Background()

	Convey("Given a generator that succeeds", t, func() {
		gen := &fakeGenerator{ideas: []model.CampaignIdea{{Title: "Love Your Furnace"}}}
		svc := startTestService(t, gen)

		Convey("When generating for a month", func() {
			ideas, err := svc.GenerateCampaigns(ctx, "February", nil, "hvac")
			So(err, ShouldBeNil)
			So(len(ideas), ShouldEqual, 1)

			Convey("Then the payload carries the merged month data", func() {
				So(gen.lastPayload.Month, ShouldEqual, "February")
				So(gen.lastPayload.Themes, ShouldResemble, []string{"Heart Health Month"})
				So(gen.lastPayload.ServiceID, ShouldEqual, "hvac")
				// Daily merge adds the promotional event to the daily list.
				So(len(gen.lastPayload.Events), ShouldEqual, 2)
			})
		})

		Convey("When generating with selected events", func() {
			selected := []model.CalendarEvent{{Date: "14th - Valentine's Day", Event: "14th - Valentine's Day"}}
			_, err := svc.GenerateCampaigns(ctx, "February", selected, "")
			So(err, ShouldBeNil)
			So(len(gen.lastPayload.SelectedEvents), ShouldEqual, 1)
		})

		Convey("When generating for an invalid month", func() {
			_, err := svc.GenerateCampaigns(ctx, "Brumaire", nil, "")
			So(errors.Is(err, service.ErrUnknownMonth), ShouldBeTrue)
		})
	})

	Convey("Given a generator that fails", t, func() {
		gen := &fakeGenerator{err: errors.New("provider down")}
		svc := startTestService(t, gen)

		Convey("Then the error surfaces as a generation failure", func() {
			_, err := svc.GenerateCampaigns(ctx, "February", nil, "")
			So(errors.Is(err, service.ErrGeneration), ShouldBeTrue)
		})
	})
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new account", t, func() {
		svc := startTestService(t, &fakeGenerator{})
		user, token, err := svc.SignUp(ctx, "pat@example.com", "Pat", "hunter22")
		So(err, ShouldBeNil)
		So(token, ShouldNotBeEmpty)

		Convey("Then the token authenticates", func() {
			got, err := svc.Authenticate(ctx, token)
			So(err, ShouldBeNil)
			So(got.ID, ShouldEqual, user.ID)
		})

		Convey("Then signing in with the right password works", func() {
			_, token2, err := svc.SignIn(ctx, "pat@example.com", "hunter22")
			So(err, ShouldBeNil)
			So(token2, ShouldNotBeEmpty)
			So(token2, ShouldNotEqual, token)
		})

		Convey("Then a wrong password is rejected", func() {
			_, _, err := svc.SignIn(ctx, "pat@example.com", "wrong")
			So(errors.Is(err, service.ErrInvalidCredentials), ShouldBeTrue)
		})

		Convey("Then an unknown email is rejected the same way", func() {
			_, _, err := svc.SignIn(ctx, "ghost@example.com", "hunter22")
			So(errors.Is(err, service.ErrInvalidCredentials), ShouldBeTrue)
		})

		Convey("Then a duplicate signup conflicts", func() {
			_, _, err := svc.SignUp(ctx, "pat@example.com", "Pat", "hunter22")
			So(errors.Is(err, repository.ErrDuplicate), ShouldBeTrue)
		})

		Convey("Then signing out invalidates the token", func() {
			So(svc.SignOut(ctx, token), ShouldBeNil)
			_, err := svc.Authenticate(ctx, token)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestCampaignCollection(t *testing.T) {
	ctx := context.Background()

	Convey("Given a signed-up user", t, func() {
		svc := startTestService(t, &fakeGenerator{})
		user, _, err := svc.SignUp(ctx, "pat@example.com", "Pat", "hunter22")
		So(err, ShouldBeNil)

		campaign := repository.SavedCampaign{
			UserID: user.ID,
			Title:  "Love Your Furnace",
			Month:  "February",
			Day:    14,
			Year:   2026,
		}

		Convey("When saving and listing campaigns", func() {
			saved, err := svc.SaveCampaign(ctx, campaign)
			So(err, ShouldBeNil)

			list, err := svc.SavedCampaigns(ctx, user.ID)
			So(err, ShouldBeNil)
			So(len(list), ShouldEqual, 1)

			Convey("Then a duplicate save conflicts", func() {
				_, err := svc.SaveCampaign(ctx, campaign)
				So(errors.Is(err, repository.ErrDuplicate), ShouldBeTrue)
			})

			Convey("Then deleting empties the collection", func() {
				So(svc.DeleteCampaign(ctx, user.ID, saved.ID), ShouldBeNil)
				list, err := svc.SavedCampaigns(ctx, user.ID)
				So(err, ShouldBeNil)
				So(list, ShouldBeEmpty)
			})
		})

		Convey("When tracking do-this-for-me interactions", func() {
			status, err := svc.InteractionStatus(ctx, user.ID, "Love Your Furnace")
			So(err, ShouldBeNil)
			So(status.HasOpened, ShouldBeFalse)

			in, err := svc.TrackInteraction(ctx, user.ID, "Love Your Furnace", true, false)
			So(err, ShouldBeNil)
			So(in.HasOpened, ShouldBeTrue)

			opened, err := svc.HasAnyOpened(ctx, user.ID)
			So(err, ShouldBeNil)
			So(opened, ShouldBeTrue)
		})
	})
}
