package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service/mocks"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type harness struct {
	registry    *mocks.MockRegistryService
	sharing     *mocks.MockSharingService
	utilization *mocks.MockUtilizationService
	closed      bool
}

func newHarness() *harness {
	color.NoColor = true
	return &harness{
		registry:    new(mocks.MockRegistryService),
		sharing:     new(mocks.MockSharingService),
		utilization: new(mocks.MockUtilizationService),
	}
}

func (h *harness) run(args ...string) (string, error) {
	load := func(ctx context.Context, configPath string) (*Services, func(), error) {
		return &Services{
			Registry:    h.registry,
			Sharing:     h.sharing,
			Utilization: h.utilization,
			Threshold:   5,
		}, func() { h.closed = true }, nil
	}
	root, release := NewRootCmd(load)
	defer release()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func int32Ptr(v int32) *int32 { return &v }
func strPtr(v string) *string { return &v }

func TestRootCmd_Structure(t *testing.T) {
	root, _ := NewRootCmd(nil)
	names := map[string]bool{}
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
		assert.NotEmpty(t, sub.Short, "%s should have a Short description", sub.Name())
	}
	for _, want := range []string{"seed", "site", "equipment", "request", "utilization"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestLoaderFailure(t *testing.T) {
	root, release := NewRootCmd(func(context.Context, string) (*Services, func(), error) {
		return nil, nil, errors.New("dial tcp: connection refused")
	})
	defer release()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"seed"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open registry")
}

func TestSeedCmd(t *testing.T) {
	t.Run("Seeds Empty Registry", func(t *testing.T) {
		h := newHarness()
		h.registry.On("SeedFleet", mock.Anything).Return(100, nil).Once()

		out, err := h.run("seed")
		require.NoError(t, err)
		assert.Contains(t, out, "Seeded 100 units")
		assert.True(t, h.closed)
	})

	t.Run("Already Seeded", func(t *testing.T) {
		h := newHarness()
		h.registry.On("SeedFleet", mock.Anything).Return(0, nil).Once()

		out, err := h.run("seed")
		require.NoError(t, err)
		assert.Contains(t, out, "already seeded")
	})

	t.Run("Closes Registry On Failure", func(t *testing.T) {
		h := newHarness()
		h.registry.On("SeedFleet", mock.Anything).Return(0, errors.New("insert failed")).Once()

		_, err := h.run("seed")
		require.Error(t, err)
		assert.True(t, h.closed)
	})
}

func TestSiteCmds(t *testing.T) {
	h := newHarness()
	h.registry.On("RegisterSite", mock.Anything, int32(3), "Quarry Road", "ops3@example.com").
		Return(&domain.Site{SiteID: 3, Location: "Quarry Road"}, nil).Once()
	h.registry.On("ListSites", mock.Anything, (*int32)(nil)).
		Return([]domain.Site{{SiteID: 3, Location: "Quarry Road", ContactDetails: "ops3@example.com"}}, nil).Once()

	out, err := h.run("site", "add", "--site-id", "3", "--location", "Quarry Road", "--contact", "ops3@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered site 3")

	out, err = h.run("site", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ops3@example.com")
	h.registry.AssertExpectations(t)
}

func TestEquipmentCmds(t *testing.T) {
	t.Run("List With Filters", func(t *testing.T) {
		h := newHarness()
		filter := domain.EquipmentFilter{Availability: domain.AvailabilityRented, SiteID: int32Ptr(2)}
		h.registry.On("ListEquipment", mock.Anything, filter).Return([]domain.Equipment{{
			EquipmentID:  "EQX1001",
			Type:         "Excavator",
			Availability: domain.AvailabilityRented,
			SiteID:       int32Ptr(2),
			CheckInDate:  strPtr("2025-01-11"),
			DaysLeft:     int32Ptr(-3),
		}}, nil).Once()

		out, err := h.run("equipment", "list", "--availability", "Rented", "--site-id", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "EQX1001")
		assert.Contains(t, out, "3 overdue")
	})

	t.Run("Rent", func(t *testing.T) {
		h := newHarness()
		checkout := domain.Checkout{EquipmentID: "EQX1001", SiteID: 2, OperatingDays: 10, StartDate: "2025-01-01", RentalType: domain.RentalTypeFlexible}
		h.registry.On("RentEquipment", mock.Anything, checkout).Return(&domain.Equipment{
			EquipmentID: "EQX1001", SiteID: int32Ptr(2), CheckInDate: strPtr("2025-01-11"), DaysLeft: int32Ptr(6),
		}, nil).Once()

		out, err := h.run("eq", "rent", "EQX1001", "--site-id", "2", "--days", "10", "--start", "2025-01-01", "--rental-type", "Flexible")
		require.NoError(t, err)
		assert.Contains(t, out, "due back 2025-01-11 (6 days)")
	})

	t.Run("Rent Requires Start", func(t *testing.T) {
		h := newHarness()
		_, err := h.run("equipment", "rent", "EQX1001", "--site-id", "2")
		assert.Error(t, err)
		h.registry.AssertNotCalled(t, "RentEquipment", mock.Anything, mock.Anything)
	})

	t.Run("Claim", func(t *testing.T) {
		h := newHarness()
		checkout := domain.Checkout{SiteID: 4, OperatingDays: 3, StartDate: "2025-02-01"}
		h.registry.On("ClaimEquipment", mock.Anything, "Crane", 2, checkout).Return([]string{"EQX1026", "EQX1027"}, nil).Once()

		out, err := h.run("equipment", "claim", "Crane", "--quantity", "2", "--site-id", "4", "--days", "3", "--start", "2025-02-01")
		require.NoError(t, err)
		assert.Contains(t, out, "Claimed 2 Crane: EQX1026, EQX1027")
	})

	t.Run("Check In Conflict", func(t *testing.T) {
		h := newHarness()
		h.registry.On("CheckInEquipment", mock.Anything, "EQX1001").
			Return(domain.NewConflictError("equipment", "EQX1001", "not rented")).Once()

		_, err := h.run("equipment", "check-in", "EQX1001")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Share And Withdraw", func(t *testing.T) {
		h := newHarness()
		h.sharing.On("SetReadyToShare", mock.Anything, domain.ShareUpdate{EquipmentID: "EQX1001", Ready: true, PreserveSharer: true}).
			Return(&domain.Equipment{EquipmentID: "EQX1001", ReadyToShare: true, SharedBySiteID: int32Ptr(2)}, nil).Once()
		h.sharing.On("SetReadyToShare", mock.Anything, domain.ShareUpdate{EquipmentID: "EQX1001", Ready: false}).
			Return(&domain.Equipment{EquipmentID: "EQX1001"}, nil).Once()

		out, err := h.run("equipment", "share", "EQX1001", "--preserve")
		require.NoError(t, err)
		assert.Contains(t, out, "ready to share (shared by site 2)")

		out, err = h.run("equipment", "share", "EQX1001", "--off")
		require.NoError(t, err)
		assert.Contains(t, out, "no longer shared")
		h.sharing.AssertExpectations(t)
	})
}

func TestRequestCmds(t *testing.T) {
	t.Run("Submit", func(t *testing.T) {
		h := newHarness()
		h.sharing.On("SubmitRentalRequest", mock.Anything, "EQX1001", int32(4), "East Yard", "2025-03-01", "2025-03-05").
			Return(&domain.RentalRequest{RequestID: 12, EquipmentID: "EQX1001", OwnerSiteID: 2}, nil).Once()

		out, err := h.run("request", "submit", "EQX1001", "--requester", "4", "--location", "East Yard", "--from", "2025-03-01", "--to", "2025-03-05")
		require.NoError(t, err)
		assert.Contains(t, out, "Filed request 12 for EQX1001 with site 2")
	})

	t.Run("List Needs A Site", func(t *testing.T) {
		h := newHarness()
		_, err := h.run("request", "list")
		assert.EqualError(t, err, "one of --owner or --requester is required")
	})

	t.Run("Owner Inbox", func(t *testing.T) {
		h := newHarness()
		h.sharing.On("ListPendingRequestsForOwner", mock.Anything, int32(2)).Return([]domain.RentalRequest{
			{RequestID: 12, EquipmentID: "EQX1001", RequesterSiteID: 4, OwnerSiteID: 2, Status: domain.RequestStatusPending},
		}, nil).Once()

		out, err := h.run("request", "list", "--owner", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "Pending")
	})

	t.Run("Approve", func(t *testing.T) {
		h := newHarness()
		h.sharing.On("ApproveRequest", mock.Anything, int32(12), int32(4), "EQX1001").
			Return(&domain.RentalRequest{RequestID: 12, Status: domain.RequestStatusApproved}, nil).Once()

		out, err := h.run("request", "approve", "12", "--requester", "4", "--equipment", "EQX1001")
		require.NoError(t, err)
		assert.Contains(t, out, "Request 12 Approved")
	})

	t.Run("Reject", func(t *testing.T) {
		h := newHarness()
		h.sharing.On("UpdateRequestStatus", mock.Anything, int32(12), domain.RequestStatusRejected, int32(4)).
			Return(&domain.RentalRequest{RequestID: 12, Status: domain.RequestStatusRejected}, nil).Once()

		out, err := h.run("request", "reject", "12", "--requester", "4")
		require.NoError(t, err)
		assert.Contains(t, out, "Request 12 Rejected")
	})

	t.Run("Bad Request ID", func(t *testing.T) {
		h := newHarness()
		_, err := h.run("request", "reject", "abc", "--requester", "4")
		assert.EqualError(t, err, `invalid request id "abc"`)
	})
}

func TestUtilizationCmd(t *testing.T) {
	groups := []domain.UtilizationSummary{
		{SiteID: 1, Type: "Crane", Units: 2, AverageHours: 3.5, ContactDetails: "ops1@example.com"},
		{SiteID: 2, Type: "Grader", Units: 1, AverageHours: 12, ContactDetails: "ops2@example.com"},
	}

	t.Run("Summary Only", func(t *testing.T) {
		h := newHarness()
		h.utilization.On("SummarizeUtilization", mock.Anything).Return(groups, nil).Once()

		out, err := h.run("utilization")
		require.NoError(t, err)
		assert.Contains(t, out, "3.50")
		h.utilization.AssertNotCalled(t, "CheckLowUtilization", mock.Anything, mock.Anything)
	})

	t.Run("Alert Uses Configured Threshold", func(t *testing.T) {
		h := newHarness()
		h.utilization.On("SummarizeUtilization", mock.Anything).Return(groups, nil).Once()
		h.utilization.On("CheckLowUtilization", mock.Anything, 5.0).Return(groups[:1], nil).Once()

		out, err := h.run("utilization", "--alert")
		require.NoError(t, err)
		assert.Contains(t, out, "Sent 1 low-utilization alerts")
		h.utilization.AssertExpectations(t)
	})

	t.Run("Alert With Explicit Threshold", func(t *testing.T) {
		h := newHarness()
		h.utilization.On("SummarizeUtilization", mock.Anything).Return(groups, nil).Once()
		h.utilization.On("CheckLowUtilization", mock.Anything, 8.0).Return(groups[:1], nil).Once()

		_, err := h.run("utilization", "--alert", "--threshold", "8")
		require.NoError(t, err)
		h.utilization.AssertExpectations(t)
	})
}
