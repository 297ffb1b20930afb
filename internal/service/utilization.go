package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository"
)

type utilizationService struct {
	equipmentRepo repository.EquipmentRepository
	emailSvc      EmailService
}

func NewUtilizationService(equipmentRepo repository.EquipmentRepository, emailSvc EmailService) UtilizationService {
	return &utilizationService{
		equipmentRepo: equipmentRepo,
		emailSvc:      emailSvc,
	}
}

func (s *utilizationService) SummarizeUtilization(ctx context.Context) ([]domain.UtilizationSummary, error) {
	return s.equipmentRepo.UtilizationBySiteType(ctx)
}

func (s *utilizationService) CheckLowUtilization(ctx context.Context, threshold float64) ([]domain.UtilizationSummary, error) {
	if threshold <= 0 {
		return nil, domain.NewValidationError("threshold", "must be a positive number of hours per day")
	}

	groups, err := s.equipmentRepo.UtilizationBySiteType(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize utilization: %w", err)
	}

	var (
		alerted []domain.UtilizationSummary
		errs    []error
	)
	for _, g := range groups {
		if g.AverageHours >= threshold {
			logger.Debug("Utilization sufficient", "siteID", g.SiteID, "type", g.Type, "averageHours", g.AverageHours)
			continue
		}
		if g.ContactDetails == "" {
			logger.Warn("Low utilization but no contact registered", "siteID", g.SiteID, "type", g.Type)
			continue
		}

		logger.Info("Low utilization detected", "siteID", g.SiteID, "type", g.Type, "averageHours", g.AverageHours)
		if err := s.emailSvc.Send(ctx, lowUtilizationAlert(g, threshold)); err != nil {
			logger.Error("Failed to send low utilization alert", "siteID", g.SiteID, "type", g.Type, "error", err)
			errs = append(errs, fmt.Errorf("site %d %s: %w", g.SiteID, g.Type, err))
			continue
		}
		alerted = append(alerted, g)
	}

	if len(errs) > 0 {
		return alerted, fmt.Errorf("%d low utilization alerts failed: %w", len(errs), errors.Join(errs...))
	}
	return alerted, nil
}

func lowUtilizationAlert(g domain.UtilizationSummary, threshold float64) domain.EmailMessage {
	return domain.EmailMessage{
		Recipient: g.ContactDetails,
		Subject:   fmt.Sprintf("Low Utilization Alert - Site %d", g.SiteID),
		Body: fmt.Sprintf("Equipment type %s at Site %d is averaging only %.2f hrs/day, below the threshold of %s.",
			g.Type, g.SiteID, g.AverageHours, formatHours(threshold)),
	}
}

// formatHours prints whole numbers with one decimal place (5 -> "5.0").
func formatHours(h float64) string {
	if h == math.Trunc(h) {
		return strconv.FormatFloat(h, 'f', 1, 64)
	}
	return strconv.FormatFloat(h, 'f', -1, 64)
}
