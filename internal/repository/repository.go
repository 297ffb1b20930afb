package repository

import (
	"context"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, equipmentID string) (*domain.Equipment, error)
	List(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error)
	Count(ctx context.Context) (int64, error)

	ListAvailableTypes(ctx context.Context) ([]string, error)
	ListAvailableIDs(ctx context.Context, equipmentType string) ([]string, error)

	// MarkRented writes the checkout only if the unit is still Available.
	MarkRented(ctx context.Context, c domain.Checkout) error
	// ClaimAvailable rents the next quantity Available units of a type in one
	// transaction; it claims all of them or none.
	ClaimAvailable(ctx context.Context, equipmentType string, quantity int, c domain.Checkout) ([]string, error)
	CheckIn(ctx context.Context, equipmentID string) error
	RefreshDaysLeft(ctx context.Context, today string) (int64, error)

	// ApplyUsage and SetFuel report false when the unit exists but is not Rented.
	ApplyUsage(ctx context.Context, equipmentID string, engineDelta, idleDelta float64) (bool, error)
	SetFuel(ctx context.Context, equipmentID string, fuel float64) (bool, error)

	SetShareState(ctx context.Context, equipmentID string, ready bool, sharedBySiteID *int32) error
	ListShareReady(ctx context.Context, excludeSiteID *int32) ([]domain.Equipment, error)

	UtilizationBySiteType(ctx context.Context) ([]domain.UtilizationSummary, error)
}

type SiteRepository interface {
	Create(ctx context.Context, s *domain.Site) error
	List(ctx context.Context, siteID *int32) ([]domain.Site, error)
	// ContactFor returns the first non-empty contact registered for siteID, or "".
	ContactFor(ctx context.Context, siteID int32) (string, error)
}

type RentalRequestRepository interface {
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, requestID int32) (*domain.RentalRequest, error)
	ListPendingByOwner(ctx context.Context, ownerSiteID int32) ([]domain.RentalRequest, error)
	ListByRequester(ctx context.Context, requesterSiteID int32) ([]domain.RentalRequest, error)
	// Decide moves a Pending request to status. When status is Approved the
	// referenced unit gets SharedBySiteID stamped with the requester and its
	// ReadyToShare flag cleared, in the same transaction.
	Decide(ctx context.Context, requestID int32, status domain.RequestStatus) (*domain.RentalRequest, error)
}
