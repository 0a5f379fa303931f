package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestStore(t *testing.T, opts ...Option) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUsers(t *testing.T) {
	Convey("Given a fresh store", t, func() {
		ctx := context.Background()
		store := newTestStore(t)

		Convey("When a user is created", func() {
			u, err := store.CreateUser(ctx, "pat@example.com", "Pat", "hash-1")
			So(err, ShouldBeNil)
			So(u.ID, ShouldNotBeEmpty)

			Convey("Then it can be looked up by email", func() {
				got, err := store.UserByEmail(ctx, "pat@example.com")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, u.ID)
				So(got.Name, ShouldEqual, "Pat")
				So(got.PasswordHash, ShouldEqual, "hash-1")
			})

			Convey("Then re-registering the same email fails with ErrDuplicate", func() {
				_, err := store.CreateUser(ctx, "pat@example.com", "Pat Again", "hash-2")
				So(errors.Is(err, ErrDuplicate), ShouldBeTrue)
			})
		})

		Convey("When looking up an unknown email", func() {
			_, err := store.UserByEmail(ctx, "nobody@example.com")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestSessions(t *testing.T) {
	Convey("Given a store with a controllable clock", t, func() {
		ctx := context.Background()
		current := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
		store := newTestStore(t, WithClock(func() time.Time { return current }))

		u, err := store.CreateUser(ctx, "pat@example.com", "Pat", "hash")
		So(err, ShouldBeNil)

		Convey("When a session is created", func() {
			err := store.CreateSession(ctx, u.ID, "token-abc", current.Add(time.Hour))
			So(err, ShouldBeNil)

			Convey("Then the token resolves to the user", func() {
				got, err := store.SessionUser(ctx, "token-abc")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, u.ID)
			})

			Convey("Then an unknown token is ErrNotFound", func() {
				_, err := store.SessionUser(ctx, "token-xyz")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("Then the token stops resolving after expiry", func() {
				current = current.Add(2 * time.Hour)
				_, err := store.SessionUser(ctx, "token-abc")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("Then deleting the token invalidates it", func() {
				So(store.DeleteSession(ctx, "token-abc"), ShouldBeNil)
				_, err := store.SessionUser(ctx, "token-abc")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When deleting an unknown token", func() {
			So(store.DeleteSession(ctx, "never-issued"), ShouldBeNil)
		})
	})
}

func TestSavedCampaigns(t *testing.T) {
	Convey("Given a store with a user", t, func() {
		ctx := context.Background()
		current := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
		store := newTestStore(t, WithClock(func() time.Time {
			current = current.Add(time.Second)
			return current
		}))

		u, err := store.CreateUser(ctx, "pat@example.com", "Pat", "hash")
		So(err, ShouldBeNil)

		campaign := SavedCampaign{
			UserID:      u.ID,
			Title:       "Valentine's Tune-Up Special",
			Description: "Book a furnace tune-up before the 14th.",
			Category:    "promotional",
			Month:       "February",
			Day:         14,
			Year:        2026,
		}

		Convey("When a campaign is saved", func() {
			saved, err := store.SaveCampaign(ctx, campaign)
			So(err, ShouldBeNil)
			So(saved.ID, ShouldNotBeEmpty)
			So(saved.CreatedAt.IsZero(), ShouldBeFalse)

			Convey("Then saving the same (title, month, day, year) again conflicts", func() {
				_, err := store.SaveCampaign(ctx, campaign)
				So(errors.Is(err, ErrDuplicate), ShouldBeTrue)
			})

			Convey("Then the same title on a different day is allowed", func() {
				other := campaign
				other.Day = 15
				_, err := store.SaveCampaign(ctx, other)
				So(err, ShouldBeNil)
			})

			Convey("Then the list returns newest first", func() {
				later := campaign
				later.Title = "Spring Maintenance Push"
				later.Month = "March"
				_, err := store.SaveCampaign(ctx, later)
				So(err, ShouldBeNil)

				list, err := store.CampaignsForUser(ctx, u.ID)
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 2)
				So(list[0].Title, ShouldEqual, "Spring Maintenance Push")
				So(list[1].Title, ShouldEqual, "Valentine's Tune-Up Special")
			})

			Convey("Then another user cannot delete it", func() {
				intruder, err := store.CreateUser(ctx, "sam@example.com", "Sam", "hash")
				So(err, ShouldBeNil)
				err = store.DeleteCampaign(ctx, intruder.ID, saved.ID)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})

			Convey("Then the owner can delete it", func() {
				So(store.DeleteCampaign(ctx, u.ID, saved.ID), ShouldBeNil)
				list, err := store.CampaignsForUser(ctx, u.ID)
				So(err, ShouldBeNil)
				So(list, ShouldBeEmpty)
			})
		})

		Convey("When a user has no campaigns", func() {
			list, err := store.CampaignsForUser(ctx, u.ID)
			So(err, ShouldBeNil)
			So(list, ShouldNotBeNil)
			So(list, ShouldBeEmpty)
		})
	})
}

func TestInteractions(t *testing.T) {
	Convey("Given a store with a user", t, func() {
		ctx := context.Background()
		store := newTestStore(t)

		u, err := store.CreateUser(ctx, "pat@example.com", "Pat", "hash")
		So(err, ShouldBeNil)

		Convey("When no interaction exists yet", func() {
			_, err := store.Interaction(ctx, u.ID, "Valentine's Tune-Up Special")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)

			ok, err := store.HasAnyOpened(ctx, u.ID)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When an interaction is recorded as opened", func() {
			in, err := store.UpsertInteraction(ctx, u.ID, "Valentine's Tune-Up Special", true, false)
			So(err, ShouldBeNil)
			So(in.HasOpened, ShouldBeTrue)
			So(in.HasSubmitted, ShouldBeFalse)

			Convey("Then HasAnyOpened reports true", func() {
				ok, err := store.HasAnyOpened(ctx, u.ID)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			})

			Convey("Then a later submit does not clear the opened flag", func() {
				in, err := store.UpsertInteraction(ctx, u.ID, "Valentine's Tune-Up Special", false, true)
				So(err, ShouldBeNil)
				So(in.HasOpened, ShouldBeTrue)
				So(in.HasSubmitted, ShouldBeTrue)
			})

			Convey("Then a second title gets its own record", func() {
				_, err := store.UpsertInteraction(ctx, u.ID, "Spring Maintenance Push", false, true)
				So(err, ShouldBeNil)

				first, err := store.Interaction(ctx, u.ID, "Valentine's Tune-Up Special")
				So(err, ShouldBeNil)
				So(first.HasSubmitted, ShouldBeFalse)
			})
		})
	})
}
