// Package mocks holds testify mocks of the service interfaces for handler,
// ingestion and job tests.
package mocks

import (
	"context"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) RegisterSite(ctx context.Context, siteID int32, location, contact string) (*domain.Site, error) {
	args := m.Called(ctx, siteID, location, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}
func (m *MockRegistryService) RegisterEquipment(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockRegistryService) ListAvailableTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockRegistryService) ListAvailableEquipmentIDs(ctx context.Context, equipmentType string) ([]string, error) {
	args := m.Called(ctx, equipmentType)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockRegistryService) RentEquipment(ctx context.Context, c domain.Checkout) (*domain.Equipment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockRegistryService) ClaimEquipment(ctx context.Context, equipmentType string, quantity int, c domain.Checkout) ([]string, error) {
	args := m.Called(ctx, equipmentType, quantity, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockRegistryService) CheckInEquipment(ctx context.Context, equipmentID string) error {
	args := m.Called(ctx, equipmentID)
	return args.Error(0)
}
func (m *MockRegistryService) UpdateUsage(ctx context.Context, equipmentID string, engineDelta, idleDelta float64) (bool, error) {
	args := m.Called(ctx, equipmentID, engineDelta, idleDelta)
	return args.Bool(0), args.Error(1)
}
func (m *MockRegistryService) UpdateFuel(ctx context.Context, equipmentID string, fuel float64) (bool, error) {
	args := m.Called(ctx, equipmentID, fuel)
	return args.Bool(0), args.Error(1)
}
func (m *MockRegistryService) GetEquipment(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockRegistryService) ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockRegistryService) ListSites(ctx context.Context, siteID *int32) ([]domain.Site, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).([]domain.Site), args.Error(1)
}
func (m *MockRegistryService) SeedFleet(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockRegistryService) RefreshDaysLeft(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockSharingService struct {
	mock.Mock
}

func (m *MockSharingService) SetReadyToShare(ctx context.Context, u domain.ShareUpdate) (*domain.Equipment, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockSharingService) ListShareReady(ctx context.Context, excludeSiteID *int32) ([]domain.Equipment, error) {
	args := m.Called(ctx, excludeSiteID)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockSharingService) SubmitRentalRequest(ctx context.Context, equipmentID string, requesterSiteID int32, location, timeFrom, timeTo string) (*domain.RentalRequest, error) {
	args := m.Called(ctx, equipmentID, requesterSiteID, location, timeFrom, timeTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockSharingService) ListPendingRequestsForOwner(ctx context.Context, siteID int32) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockSharingService) ListRequestsByRequester(ctx context.Context, siteID int32) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockSharingService) ApproveRequest(ctx context.Context, requestID, requesterSiteID int32, equipmentID string) (*domain.RentalRequest, error) {
	args := m.Called(ctx, requestID, requesterSiteID, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockSharingService) UpdateRequestStatus(ctx context.Context, requestID int32, status domain.RequestStatus, requesterSiteID int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, requestID, status, requesterSiteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}

type MockUtilizationService struct {
	mock.Mock
}

func (m *MockUtilizationService) SummarizeUtilization(ctx context.Context) ([]domain.UtilizationSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UtilizationSummary), args.Error(1)
}
func (m *MockUtilizationService) CheckLowUtilization(ctx context.Context, threshold float64) ([]domain.UtilizationSummary, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UtilizationSummary), args.Error(1)
}
