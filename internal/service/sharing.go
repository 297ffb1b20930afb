package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository"
)

type sharingService struct {
	equipmentRepo repository.EquipmentRepository
	siteRepo      repository.SiteRepository
	requestRepo   repository.RentalRequestRepository
	emailSvc      EmailService
}

func NewSharingService(
	equipmentRepo repository.EquipmentRepository,
	siteRepo repository.SiteRepository,
	requestRepo repository.RentalRequestRepository,
	emailSvc EmailService,
) SharingService {
	return &sharingService{
		equipmentRepo: equipmentRepo,
		siteRepo:      siteRepo,
		requestRepo:   requestRepo,
		emailSvc:      emailSvc,
	}
}

func (s *sharingService) SetReadyToShare(ctx context.Context, u domain.ShareUpdate) (*domain.Equipment, error) {
	logger.EnterMethod("sharingService.SetReadyToShare", "equipmentID", u.EquipmentID, "ready", u.Ready)

	e, err := s.equipmentRepo.GetByID(ctx, u.EquipmentID)
	if err != nil {
		return nil, err
	}

	var sharer *int32
	if u.Ready {
		if e.RentalType != domain.RentalTypeFlexible {
			return nil, domain.NewValidationError("rental_type", "only Flexible units can be shared")
		}
		if e.SiteID == nil {
			return nil, domain.NewValidationError("site_id", "owner site not set")
		}
		switch {
		case u.SharedBySiteID != nil:
			sharer = u.SharedBySiteID
		case u.PreserveSharer && e.SharedBySiteID != nil:
			sharer = e.SharedBySiteID
		default:
			sharer = e.SiteID
		}
	}

	if err := s.equipmentRepo.SetShareState(ctx, u.EquipmentID, u.Ready, sharer); err != nil {
		logger.ExitMethodWithError("sharingService.SetReadyToShare", err, "equipmentID", u.EquipmentID)
		return nil, err
	}
	e.ReadyToShare = u.Ready
	e.SharedBySiteID = sharer

	logger.ExitMethod("sharingService.SetReadyToShare", "equipmentID", u.EquipmentID, "ready", u.Ready)
	return e, nil
}

func (s *sharingService) ListShareReady(ctx context.Context, excludeSiteID *int32) ([]domain.Equipment, error) {
	return s.equipmentRepo.ListShareReady(ctx, excludeSiteID)
}

func (s *sharingService) SubmitRentalRequest(ctx context.Context, equipmentID string, requesterSiteID int32, location, timeFrom, timeTo string) (*domain.RentalRequest, error) {
	logger.EnterMethod("sharingService.SubmitRentalRequest", "equipmentID", equipmentID, "requesterSiteID", requesterSiteID)

	if strings.TrimSpace(equipmentID) == "" {
		return nil, domain.NewValidationError("equipment_id", "is required")
	}
	if requesterSiteID <= 0 {
		return nil, domain.NewValidationError("requester_site_id", "is required")
	}
	if strings.TrimSpace(timeFrom) == "" || strings.TrimSpace(timeTo) == "" {
		return nil, domain.NewValidationError("time_from", "requested window is required")
	}

	e, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if e.SiteID == nil {
		return nil, domain.NewValidationError("site_id", "owner site not set")
	}
	if *e.SiteID == requesterSiteID {
		return nil, domain.NewValidationError("requester_site_id", "cannot request your own equipment")
	}

	req := &domain.RentalRequest{
		EquipmentID:     e.EquipmentID,
		RequesterSiteID: requesterSiteID,
		OwnerSiteID:     *e.SiteID,
		Location:        location,
		TimeFrom:        timeFrom,
		TimeTo:          timeTo,
		Status:          domain.RequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		logger.ExitMethodWithError("sharingService.SubmitRentalRequest", err)
		return nil, err
	}

	s.notifySite(ctx, req.OwnerSiteID, domain.EmailMessage{
		Subject: fmt.Sprintf("Rental Request %d for %s", req.RequestID, req.EquipmentID),
		Body: fmt.Sprintf("Site %d has requested %s %s for %s from %s to %s.",
			req.RequesterSiteID, e.Type, req.EquipmentID, req.Location, req.TimeFrom, req.TimeTo),
	})

	logger.ExitMethod("sharingService.SubmitRentalRequest", "requestID", req.RequestID)
	return req, nil
}

func (s *sharingService) ListPendingRequestsForOwner(ctx context.Context, siteID int32) ([]domain.RentalRequest, error) {
	return s.requestRepo.ListPendingByOwner(ctx, siteID)
}

func (s *sharingService) ListRequestsByRequester(ctx context.Context, siteID int32) ([]domain.RentalRequest, error) {
	return s.requestRepo.ListByRequester(ctx, siteID)
}

func (s *sharingService) ApproveRequest(ctx context.Context, requestID, requesterSiteID int32, equipmentID string) (*domain.RentalRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.EquipmentID != equipmentID {
		return nil, domain.NewValidationError("equipment_id", fmt.Sprintf("request %d is for %s", requestID, req.EquipmentID))
	}
	return s.decide(ctx, req, domain.RequestStatusApproved, requesterSiteID)
}

func (s *sharingService) UpdateRequestStatus(ctx context.Context, requestID int32, status domain.RequestStatus, requesterSiteID int32) (*domain.RentalRequest, error) {
	if !status.IsTerminal() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("must be %s or %s", domain.RequestStatusApproved, domain.RequestStatusRejected))
	}
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.decide(ctx, req, status, requesterSiteID)
}

func (s *sharingService) decide(ctx context.Context, req *domain.RentalRequest, status domain.RequestStatus, requesterSiteID int32) (*domain.RentalRequest, error) {
	logger.EnterMethod("sharingService.decide", "requestID", req.RequestID, "status", status)
	id := fmt.Sprintf("%d", req.RequestID)

	if req.RequesterSiteID != requesterSiteID {
		return nil, domain.NewValidationError("requester_site_id", fmt.Sprintf("request %d was filed by site %d", req.RequestID, req.RequesterSiteID))
	}
	if req.Status.IsTerminal() {
		return nil, domain.NewConflictError("rental request", id, fmt.Sprintf("already %s", req.Status))
	}

	decided, err := s.requestRepo.Decide(ctx, req.RequestID, status)
	if err != nil {
		logger.ExitMethodWithError("sharingService.decide", err, "requestID", req.RequestID)
		return nil, err
	}

	s.notifySite(ctx, decided.RequesterSiteID, domain.EmailMessage{
		Subject: fmt.Sprintf("Rental Request %d %s", decided.RequestID, decided.Status),
		Body: fmt.Sprintf("Site %d has %s your request for %s (%s to %s).",
			decided.OwnerSiteID, strings.ToLower(string(decided.Status)), decided.EquipmentID, decided.TimeFrom, decided.TimeTo),
	})

	logger.ExitMethod("sharingService.decide", "requestID", decided.RequestID, "status", decided.Status)
	return decided, nil
}

// notifySite emails the site's first registered contact. Failures are logged only.
func (s *sharingService) notifySite(ctx context.Context, siteID int32, msg domain.EmailMessage) {
	contact, err := s.siteRepo.ContactFor(ctx, siteID)
	if err != nil {
		logger.Warn("Failed to look up site contact", "siteID", siteID, "error", err)
		return
	}
	if contact == "" {
		logger.Debug("No contact registered, skipping notification", "siteID", siteID)
		return
	}
	msg.Recipient = contact
	if err := s.emailSvc.Send(ctx, msg); err != nil {
		logger.Warn("Failed to send notification", "siteID", siteID, "recipient", contact, "error", err)
	}
}
