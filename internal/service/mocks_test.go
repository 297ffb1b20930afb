package service

import (
	"context"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) List(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockEquipmentRepo) ListAvailableTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockEquipmentRepo) ListAvailableIDs(ctx context.Context, equipmentType string) ([]string, error) {
	args := m.Called(ctx, equipmentType)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockEquipmentRepo) MarkRented(ctx context.Context, c domain.Checkout) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ClaimAvailable(ctx context.Context, equipmentType string, quantity int, c domain.Checkout) ([]string, error) {
	args := m.Called(ctx, equipmentType, quantity, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockEquipmentRepo) CheckIn(ctx context.Context, equipmentID string) error {
	args := m.Called(ctx, equipmentID)
	return args.Error(0)
}
func (m *MockEquipmentRepo) RefreshDaysLeft(ctx context.Context, today string) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockEquipmentRepo) ApplyUsage(ctx context.Context, equipmentID string, engineDelta, idleDelta float64) (bool, error) {
	args := m.Called(ctx, equipmentID, engineDelta, idleDelta)
	return args.Bool(0), args.Error(1)
}
func (m *MockEquipmentRepo) SetFuel(ctx context.Context, equipmentID string, fuel float64) (bool, error) {
	args := m.Called(ctx, equipmentID, fuel)
	return args.Bool(0), args.Error(1)
}
func (m *MockEquipmentRepo) SetShareState(ctx context.Context, equipmentID string, ready bool, sharedBySiteID *int32) error {
	args := m.Called(ctx, equipmentID, ready, sharedBySiteID)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListShareReady(ctx context.Context, excludeSiteID *int32) ([]domain.Equipment, error) {
	args := m.Called(ctx, excludeSiteID)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) UtilizationBySiteType(ctx context.Context) ([]domain.UtilizationSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UtilizationSummary), args.Error(1)
}

type MockSiteRepo struct {
	mock.Mock
}

func (m *MockSiteRepo) Create(ctx context.Context, s *domain.Site) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSiteRepo) List(ctx context.Context, siteID *int32) ([]domain.Site, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).([]domain.Site), args.Error(1)
}
func (m *MockSiteRepo) ContactFor(ctx context.Context, siteID int32) (string, error) {
	args := m.Called(ctx, siteID)
	return args.String(0), args.Error(1)
}

type MockRentalRequestRepo struct {
	mock.Mock
}

func (m *MockRentalRequestRepo) Create(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentalRequestRepo) GetByID(ctx context.Context, requestID int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) ListPendingByOwner(ctx context.Context, ownerSiteID int32) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, ownerSiteID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) ListByRequester(ctx context.Context, requesterSiteID int32) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, requesterSiteID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) Decide(ctx context.Context, requestID int32, status domain.RequestStatus) (*domain.RentalRequest, error) {
	args := m.Called(ctx, requestID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, msg domain.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func int32Ptr(v int32) *int32 { return &v }
