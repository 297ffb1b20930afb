package service

import (
	"context"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
)

type RegistryService interface {
	RegisterSite(ctx context.Context, siteID int32, location, contact string) (*domain.Site, error)
	RegisterEquipment(ctx context.Context, e *domain.Equipment) error
	ListAvailableTypes(ctx context.Context) ([]string, error)
	ListAvailableEquipmentIDs(ctx context.Context, equipmentType string) ([]string, error)
	RentEquipment(ctx context.Context, c domain.Checkout) (*domain.Equipment, error)
	ClaimEquipment(ctx context.Context, equipmentType string, quantity int, c domain.Checkout) ([]string, error)
	CheckInEquipment(ctx context.Context, equipmentID string) error
	UpdateUsage(ctx context.Context, equipmentID string, engineDelta, idleDelta float64) (bool, error) // applied
	UpdateFuel(ctx context.Context, equipmentID string, fuel float64) (bool, error)                    // applied
	GetEquipment(ctx context.Context, equipmentID string) (*domain.Equipment, error)
	ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error)
	ListSites(ctx context.Context, siteID *int32) ([]domain.Site, error)
	SeedFleet(ctx context.Context) (int, error)
	RefreshDaysLeft(ctx context.Context) (int64, error)
}

type SharingService interface {
	SetReadyToShare(ctx context.Context, u domain.ShareUpdate) (*domain.Equipment, error)
	ListShareReady(ctx context.Context, excludeSiteID *int32) ([]domain.Equipment, error)
	SubmitRentalRequest(ctx context.Context, equipmentID string, requesterSiteID int32, location, timeFrom, timeTo string) (*domain.RentalRequest, error)
	ListPendingRequestsForOwner(ctx context.Context, siteID int32) ([]domain.RentalRequest, error)
	ListRequestsByRequester(ctx context.Context, siteID int32) ([]domain.RentalRequest, error)
	ApproveRequest(ctx context.Context, requestID, requesterSiteID int32, equipmentID string) (*domain.RentalRequest, error)
	UpdateRequestStatus(ctx context.Context, requestID int32, status domain.RequestStatus, requesterSiteID int32) (*domain.RentalRequest, error)
}

type UtilizationService interface {
	SummarizeUtilization(ctx context.Context) ([]domain.UtilizationSummary, error)
	// CheckLowUtilization alerts every site/type group averaging below threshold
	// hours per day and returns the groups that were alerted.
	CheckLowUtilization(ctx context.Context, threshold float64) ([]domain.UtilizationSummary, error)
}

type EmailService interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}
