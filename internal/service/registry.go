package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository"
)

type registryService struct {
	equipmentRepo repository.EquipmentRepository
	siteRepo      repository.SiteRepository
	now           func() time.Time
}

func NewRegistryService(equipmentRepo repository.EquipmentRepository, siteRepo repository.SiteRepository) RegistryService {
	return newRegistryService(equipmentRepo, siteRepo, time.Now)
}

func newRegistryService(equipmentRepo repository.EquipmentRepository, siteRepo repository.SiteRepository, now func() time.Time) *registryService {
	return &registryService{
		equipmentRepo: equipmentRepo,
		siteRepo:      siteRepo,
		now:           now,
	}
}

func (s *registryService) RegisterSite(ctx context.Context, siteID int32, location, contact string) (*domain.Site, error) {
	if siteID <= 0 {
		return nil, domain.NewValidationError("site_id", "must be positive")
	}
	location = strings.TrimSpace(location)
	contact = strings.TrimSpace(contact)
	if location == "" {
		return nil, domain.NewValidationError("location", "is required")
	}
	if contact == "" {
		return nil, domain.NewValidationError("contact_details", "is required")
	}

	site := &domain.Site{SiteID: siteID, Location: location, ContactDetails: contact}
	if err := s.siteRepo.Create(ctx, site); err != nil {
		return nil, fmt.Errorf("register site %d: %w", siteID, err)
	}
	logger.Info("Site registered", "siteID", siteID, "location", location)
	return site, nil
}

func (s *registryService) RegisterEquipment(ctx context.Context, e *domain.Equipment) error {
	logger.EnterMethod("registryService.RegisterEquipment", "equipmentID", e.EquipmentID)

	e.EquipmentID = strings.TrimSpace(e.EquipmentID)
	e.Type = strings.TrimSpace(e.Type)
	if e.EquipmentID == "" {
		return domain.NewValidationError("equipment_id", "is required")
	}
	if e.Type == "" {
		return domain.NewValidationError("type", "is required")
	}
	if e.Availability == "" {
		e.Availability = domain.AvailabilityAvailable
	}
	if !e.Availability.Valid() {
		return domain.NewValidationError("availability", fmt.Sprintf("unknown availability %q", e.Availability))
	}
	if !e.RentalType.Valid() {
		return domain.NewValidationError("rental_type", fmt.Sprintf("unknown rental type %q", e.RentalType))
	}
	if e.SiteID != nil && *e.SiteID <= 0 {
		return domain.NewValidationError("site_id", "must be positive")
	}

	switch e.Availability {
	case domain.AvailabilityRented:
		if e.SiteID == nil {
			return domain.NewValidationError("site_id", "a rented unit needs an owner site")
		}
		if e.CheckOutDate == nil || e.OperatingDays == nil {
			return domain.NewValidationError("check_out_date", "a rented unit needs a start date and operating days")
		}
		if *e.OperatingDays < 0 {
			return domain.NewValidationError("operating_days", "must not be negative")
		}
		checkIn, err := domain.CheckInDate(*e.CheckOutDate, *e.OperatingDays)
		if err != nil {
			return err
		}
		daysLeft, err := domain.DaysUntil(checkIn, s.now())
		if err != nil {
			return err
		}
		e.CheckInDate = &checkIn
		e.DaysLeft = &daysLeft
	default:
		// An Available unit carries no occupancy and no gauges.
		e.CheckOutDate, e.CheckInDate, e.DaysLeft = nil, nil, nil
		e.EngineHourDay, e.IdleHourDay, e.Fuel = nil, nil, nil
	}

	if e.ReadyToShare {
		if e.RentalType != domain.RentalTypeFlexible {
			return domain.NewValidationError("ready_to_share", "only Flexible units can be shared")
		}
		if e.SiteID == nil {
			return domain.NewValidationError("site_id", "owner site not set")
		}
		if e.SharedBySiteID == nil {
			e.SharedBySiteID = e.SiteID
		}
	} else {
		e.SharedBySiteID = nil
	}

	if err := s.equipmentRepo.Create(ctx, e); err != nil {
		logger.ExitMethodWithError("registryService.RegisterEquipment", err, "equipmentID", e.EquipmentID)
		return err
	}
	logger.ExitMethod("registryService.RegisterEquipment", "equipmentID", e.EquipmentID)
	return nil
}

func (s *registryService) ListAvailableTypes(ctx context.Context) ([]string, error) {
	return s.equipmentRepo.ListAvailableTypes(ctx)
}

func (s *registryService) ListAvailableEquipmentIDs(ctx context.Context, equipmentType string) ([]string, error) {
	if strings.TrimSpace(equipmentType) == "" {
		return nil, domain.NewValidationError("type", "is required")
	}
	return s.equipmentRepo.ListAvailableIDs(ctx, equipmentType)
}

// prepareCheckout validates c and fills in its derived check-in date and days left.
func (s *registryService) prepareCheckout(c *domain.Checkout) error {
	if c.SiteID <= 0 {
		return domain.NewValidationError("site_id", "must be positive")
	}
	if c.OperatingDays < 0 {
		return domain.NewValidationError("operating_days", "must not be negative")
	}
	if !c.RentalType.Valid() {
		return domain.NewValidationError("rental_type", fmt.Sprintf("unknown rental type %q", c.RentalType))
	}
	checkIn, err := domain.CheckInDate(c.StartDate, c.OperatingDays)
	if err != nil {
		return err
	}
	daysLeft, err := domain.DaysUntil(checkIn, s.now())
	if err != nil {
		return err
	}
	c.CheckInDate = checkIn
	c.DaysLeft = daysLeft
	return nil
}

func (s *registryService) RentEquipment(ctx context.Context, c domain.Checkout) (*domain.Equipment, error) {
	logger.EnterMethod("registryService.RentEquipment", "equipmentID", c.EquipmentID, "siteID", c.SiteID)

	if strings.TrimSpace(c.EquipmentID) == "" {
		return nil, domain.NewValidationError("equipment_id", "is required")
	}
	if err := s.prepareCheckout(&c); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.MarkRented(ctx, c); err != nil {
		logger.ExitMethodWithError("registryService.RentEquipment", err, "equipmentID", c.EquipmentID)
		return nil, err
	}

	logger.Info("Equipment rented", "equipmentID", c.EquipmentID, "siteID", c.SiteID, "checkInDate", c.CheckInDate, "daysLeft", c.DaysLeft)
	logger.ExitMethod("registryService.RentEquipment", "equipmentID", c.EquipmentID)
	return s.equipmentRepo.GetByID(ctx, c.EquipmentID)
}

func (s *registryService) ClaimEquipment(ctx context.Context, equipmentType string, quantity int, c domain.Checkout) ([]string, error) {
	if strings.TrimSpace(equipmentType) == "" {
		return nil, domain.NewValidationError("type", "is required")
	}
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "must be positive")
	}
	if err := s.prepareCheckout(&c); err != nil {
		return nil, err
	}

	ids, err := s.equipmentRepo.ClaimAvailable(ctx, equipmentType, quantity, c)
	if err != nil {
		return nil, err
	}
	logger.Info("Equipment claimed", "type", equipmentType, "quantity", quantity, "siteID", c.SiteID, "equipmentIDs", ids)
	return ids, nil
}

func (s *registryService) CheckInEquipment(ctx context.Context, equipmentID string) error {
	if err := s.equipmentRepo.CheckIn(ctx, equipmentID); err != nil {
		return err
	}
	logger.Info("Equipment checked in", "equipmentID", equipmentID)
	return nil
}

func (s *registryService) UpdateUsage(ctx context.Context, equipmentID string, engineDelta, idleDelta float64) (bool, error) {
	if engineDelta < 0 || idleDelta < 0 {
		return false, domain.NewValidationError("hours_delta", "must not be negative")
	}
	applied, err := s.equipmentRepo.ApplyUsage(ctx, equipmentID, engineDelta, idleDelta)
	if err != nil {
		return false, err
	}
	if !applied {
		logger.Debug("Usage update skipped, unit not rented", "equipmentID", equipmentID)
	}
	return applied, nil
}

func (s *registryService) UpdateFuel(ctx context.Context, equipmentID string, fuel float64) (bool, error) {
	if fuel < 0 || fuel > 100 {
		return false, domain.NewValidationError("fuel", "must be between 0 and 100")
	}
	applied, err := s.equipmentRepo.SetFuel(ctx, equipmentID, fuel)
	if err != nil {
		return false, err
	}
	if !applied {
		logger.Debug("Fuel update skipped, unit not rented", "equipmentID", equipmentID)
	}
	return applied, nil
}

func (s *registryService) GetEquipment(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, equipmentID)
}

func (s *registryService) ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	if filter.Availability != "" && !filter.Availability.Valid() {
		return nil, domain.NewValidationError("availability", fmt.Sprintf("unknown availability %q", filter.Availability))
	}
	return s.equipmentRepo.List(ctx, filter)
}

func (s *registryService) ListSites(ctx context.Context, siteID *int32) ([]domain.Site, error) {
	return s.siteRepo.List(ctx, siteID)
}

func (s *registryService) SeedFleet(ctx context.Context) (int, error) {
	count, err := s.equipmentRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count fleet: %w", err)
	}
	if count > 0 {
		logger.Debug("Fleet already seeded", "units", count)
		return 0, nil
	}

	fleet := domain.DefaultFleet()
	for i := range fleet {
		if err := s.equipmentRepo.Create(ctx, &fleet[i]); err != nil {
			return i, fmt.Errorf("seed %s: %w", fleet[i].EquipmentID, err)
		}
	}
	logger.Info("Fleet seeded", "units", len(fleet))
	return len(fleet), nil
}

func (s *registryService) RefreshDaysLeft(ctx context.Context) (int64, error) {
	today := s.now().UTC().Format(domain.DateLayout)
	return s.equipmentRepo.RefreshDaysLeft(ctx, today)
}
