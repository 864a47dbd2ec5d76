package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/amolgulati/LeagueLegacy/db"
	"github.com/amolgulati/LeagueLegacy/db/mockdb"
	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/amolgulati/LeagueLegacy/platforms/sleeper"
	"github.com/amolgulati/LeagueLegacy/platforms/yahoo"
	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"
)

func TestUpdateOwnerName(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()

	owner := saveTestOwner(t, &model.Owner{Name: "Alex", DisplayName: "alex99"})

	updated, err := ctrl.UpdateOwnerName(ctx, owner.ID, "Alexandra")
	if err != nil {
		t.Fatalf("error updating owner name: %v", err)
	}
	if updated.Name != "Alexandra" {
		t.Errorf("unexpected name: %s", updated.Name)
	}
	if updated.DisplayName != "alex99" {
		t.Errorf("display name should be untouched, got: %s", updated.DisplayName)
	}

	if _, err := ctrl.UpdateOwnerName(ctx, owner.ID, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for empty name, got: %v", err)
	}
}

func TestMergeOwners(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()

	primary := saveTestOwner(t, &model.Owner{
		Name:          "Jordan",
		SleeperUserID: "merge-test-sleeper-1",
	})
	secondary := saveTestOwner(t, &model.Owner{
		Name:        "jordo",
		YahooUserID: "merge-test-yahoo-1",
	})

	merged, err := ctrl.MergeOwners(ctx, primary.ID, secondary.ID)
	if err != nil {
		t.Fatalf("error merging owners: %v", err)
	}

	if merged.ID != primary.ID {
		t.Errorf("merge should keep the primary id, got %d", merged.ID)
	}
	if merged.Name != "Jordan" {
		t.Errorf("primary name should win, got: %s", merged.Name)
	}
	if merged.SleeperUserID != "merge-test-sleeper-1" || merged.YahooUserID != "merge-test-yahoo-1" {
		t.Errorf("merged owner should have both platform ids: %+v", merged)
	}

	if _, err := ctrl.GetOwner(ctx, secondary.ID); !errors.Is(err, db.ErrOwnerNotFound) {
		t.Errorf("secondary owner should be deleted, got: %v", err)
	}
}

func TestMergeOwners_withSelf(t *testing.T) {
	ctrl, _ := newTestController(t)

	owner := saveTestOwner(t, &model.Owner{Name: "Sam"})

	_, err := ctrl.MergeOwners(context.Background(), owner.ID, owner.ID)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got: %v", err)
	}
}

func TestMapOwnerPlatform(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()

	owner := saveTestOwner(t, &model.Owner{Name: "Taylor"})

	mapped, err := ctrl.MapOwnerPlatform(ctx, owner.ID, model.PlatformSleeper, "map-test-sleeper-1")
	if err != nil {
		t.Fatalf("error mapping owner: %v", err)
	}
	if mapped.SleeperUserID != "map-test-sleeper-1" {
		t.Errorf("unexpected sleeper id: %s", mapped.SleeperUserID)
	}

	unlinked, err := ctrl.UnlinkOwnerPlatform(ctx, owner.ID, model.PlatformSleeper)
	if err != nil {
		t.Fatalf("error unlinking owner: %v", err)
	}
	if unlinked.SleeperUserID != "" {
		t.Errorf("sleeper id should be cleared, got: %s", unlinked.SleeperUserID)
	}
}

func TestMapOwnerPlatform_alreadyMapped(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()

	saveTestOwner(t, &model.Owner{Name: "Robin", SleeperUserID: "map-test-sleeper-2"})
	other := saveTestOwner(t, &model.Owner{Name: "Charlie"})

	_, err := ctrl.MapOwnerPlatform(ctx, other.ID, model.PlatformSleeper, "map-test-sleeper-2")
	var mapped *db.OwnerMappedError
	if !errors.As(err, &mapped) {
		t.Errorf("expected OwnerMappedError, got: %v", err)
	}
}

func TestMapOwnerPlatform_validation(t *testing.T) {
	ctrl, _ := newTestController(t)
	ctx := context.Background()

	owner := saveTestOwner(t, &model.Owner{Name: "Drew"})

	if _, err := ctrl.MapOwnerPlatform(ctx, owner.ID, "espn", "x"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for bad platform, got: %v", err)
	}
	if _, err := ctrl.MapOwnerPlatform(ctx, owner.ID, model.PlatformYahoo, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for empty id, got: %v", err)
	}
}

func saveTestOwner(t *testing.T, o *model.Owner) *model.Owner {
	t.Helper()

	if err := testDB.DB.SaveOwner(context.Background(), o); err != nil {
		t.Fatalf("error saving owner: %v", err)
	}
	return o
}

// newMockDBController builds a controller over a mock db for tests
// that need to control exactly what the storage layer returns.
func newMockDBController(t *testing.T) (*controller, *mockdb.DB) {
	t.Helper()

	mockDB := &mockdb.DB{}
	ctrl, err := New(clock.NewMock(), mockDB, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return ctrl.(*controller), mockDB
}

func TestResolveSleeperOwner_keepsDisplayName(t *testing.T) {
	c, mockDB := newMockDBController(t)
	ctx := context.Background()

	stored := &model.Owner{ID: 7, Name: "Alice", DisplayName: "Known", SleeperUserID: "u-1"}
	mockDB.On("GetOwnerByPlatformID", mock.Anything, model.PlatformSleeper, "u-1").Return(stored, nil)
	mockDB.On("SaveOwner", mock.Anything, mock.Anything).Return(nil)

	// A feed delivering no display name must not blank the known one.
	owner, err := c.resolveSleeperOwner(ctx, sleeper.User{ID: "u-1"})
	if err != nil {
		t.Fatalf("error resolving owner: %v", err)
	}
	if owner.DisplayName != "Known" {
		t.Errorf("display name should be kept, got: '%s'", owner.DisplayName)
	}

	// A non-empty incoming display name still updates it.
	owner, err = c.resolveSleeperOwner(ctx, sleeper.User{ID: "u-1", DisplayName: "Fresh"})
	if err != nil {
		t.Fatalf("error resolving owner: %v", err)
	}
	if owner.DisplayName != "Fresh" {
		t.Errorf("display name should be updated, got: '%s'", owner.DisplayName)
	}
	mockDB.AssertExpectations(t)
}

func TestResolveYahooOwner_keepsDisplayName(t *testing.T) {
	c, mockDB := newMockDBController(t)
	ctx := context.Background()

	stored := &model.Owner{ID: 8, Name: "Casey", DisplayName: "Known", YahooUserID: "guid-9"}
	mockDB.On("GetOwnerByPlatformID", mock.Anything, model.PlatformYahoo, "guid-9").Return(stored, nil)
	mockDB.On("SaveOwner", mock.Anything, mock.Anything).Return(nil)

	owner, err := c.resolveYahooOwner(ctx, yahoo.Team{Key: "449.l.431.t.9", ManagerGUID: "guid-9"})
	if err != nil {
		t.Fatalf("error resolving owner: %v", err)
	}
	if owner.DisplayName != "Known" {
		t.Errorf("display name should be kept, got: '%s'", owner.DisplayName)
	}
	mockDB.AssertExpectations(t)
}

func TestResolveSleeperOwner_lookupError(t *testing.T) {
	c, mockDB := newMockDBController(t)

	// Only a not-found starts the create path. A transient failure must
	// not create a duplicate owner.
	mockDB.On("GetOwnerByPlatformID", mock.Anything, model.PlatformSleeper, "u-2").
		Return(nil, errors.New("connection reset"))

	_, err := c.resolveSleeperOwner(context.Background(), sleeper.User{ID: "u-2", DisplayName: "Bob"})
	if err == nil {
		t.Fatal("expected the lookup error to propagate")
	}
	mockDB.AssertNotCalled(t, "SaveOwner", mock.Anything, mock.Anything)
}

func TestResolveYahooOwner_lookupError(t *testing.T) {
	c, mockDB := newMockDBController(t)

	mockDB.On("GetOwnerByPlatformID", mock.Anything, model.PlatformYahoo, "guid-2").
		Return(nil, errors.New("connection reset"))

	_, err := c.resolveYahooOwner(context.Background(), yahoo.Team{Key: "449.l.431.t.2", ManagerGUID: "guid-2"})
	if err == nil {
		t.Fatal("expected the lookup error to propagate")
	}
	mockDB.AssertNotCalled(t, "SaveOwner", mock.Anything, mock.Anything)
}
