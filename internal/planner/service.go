// Package planner exposes the balance engine over a thin service and HTTP
// surface. Routing niceties, auth and sessions live outside.
package planner

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/broxB/AgroPlan-sub000/internal/balance"
	"github.com/broxB/AgroPlan-sub000/internal/fertilizers"
	"github.com/broxB/AgroPlan-sub000/internal/field"
	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/reports"
	"github.com/broxB/AgroPlan-sub000/internal/store"
	"github.com/broxB/AgroPlan-sub000/internal/validation"
)

// BalanceReport is the derived balance view of one field-year.
type BalanceReport struct {
	FieldID    uuid.UUID         `json:"field_id"`
	Parcel     string            `json:"parcel"`
	Name       string            `json:"name"`
	Year       int               `json:"year"`
	Crops      []balance.Balance `json:"crops"`
	Categories []balance.Balance `json:"categories"`
	Total      balance.Balance   `json:"total"`
}

// PrecheckRequest proposes a fall application for the regulatory check.
type PrecheckRequest struct {
	FieldID       uuid.UUID        `json:"field_id"`
	CultivationID uuid.UUID        `json:"cultivation_id"`
	FertilizerID  uuid.UUID        `json:"fertilizer_id"`
	Amount        decimal.Decimal  `json:"amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty"`
}

// Service wires the engine, validation and reporting together.
type Service struct {
	store     *store.Store
	gl        *guidelines.Guidelines
	builder   *field.Builder
	validator *validation.Validator
	reports   *reports.Service
	log       *zap.Logger
}

// NewService returns a planner service.
func NewService(s *store.Store, gl *guidelines.Guidelines, log *zap.Logger) *Service {
	return &Service{
		store:     s,
		gl:        gl,
		builder:   field.NewBuilder(s, gl),
		validator: validation.New(s, gl),
		reports:   reports.NewService(s, log),
		log:       log,
	}
}

// FieldBalances builds the field snapshot and derives its balance report,
// rounded to whole kg/ha for presentation.
func (s *Service) FieldBalances(ctx context.Context, fieldID uuid.UUID) (*BalanceReport, error) {
	snapshot, err := s.snapshot(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	crops := snapshot.CropBalances()
	for i := range crops {
		crops[i] = crops[i].Round(0)
	}
	categories := snapshot.CategoryBalances()
	for i := range categories {
		categories[i] = categories[i].Round(0)
	}

	bf := snapshot.BaseField()
	return &BalanceReport{
		FieldID:    fieldID,
		Parcel:     fmt.Sprintf("%d-%d", bf.Prefix, bf.Suffix),
		Name:       bf.Name,
		Year:       snapshot.Year(),
		Crops:      crops,
		Categories: categories,
		Total:      snapshot.TotalBalance().Round(0),
	}, nil
}

// AutumnPrecheck consults the fall ceiling for a proposed application
// without persisting anything.
func (s *Service) AutumnPrecheck(ctx context.Context, req PrecheckRequest) (*field.AutumnResult, error) {
	fert, err := s.store.FertilizerByID(ctx, req.FertilizerID)
	if err != nil {
		return nil, fmt.Errorf("loading fertilizer: %w", err)
	}
	if fert == nil {
		return nil, fmt.Errorf("fertilizer %s not found", req.FertilizerID)
	}
	cultivation, err := s.store.CultivationByID(ctx, req.CultivationID)
	if err != nil {
		return nil, fmt.Errorf("loading cultivation: %w", err)
	}
	if cultivation == nil {
		return nil, fmt.Errorf("cultivation %s not found", req.CultivationID)
	}
	snapshot, err := s.snapshot(ctx, req.FieldID)
	if err != nil {
		return nil, err
	}

	res := snapshot.CheckAutumnFertilization(
		fertilizers.New(*fert, s.gl), req.Amount,
		cultivation.CultivationType, req.CurrentAmount)
	s.log.Debug("autumn precheck",
		zap.String("field_id", req.FieldID.String()),
		zap.Bool("accepted", res.Accepted))
	return &res, nil
}

// CreateFertilization validates a candidate application and persists it in
// one transaction. Validation failures come back as the field-error map
// with a nil error.
func (s *Service) CreateFertilization(ctx context.Context, principalID uuid.UUID, fz *models.Fertilization) (validation.Errors, error) {
	ok, errs := s.validator.ValidateFertilization(ctx, principalID, *fz, nil)
	if !ok {
		return errs, nil
	}
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		return tx.CreateFertilization(ctx, fz)
	})
	if err != nil {
		return nil, fmt.Errorf("saving fertilization: %w", err)
	}
	return nil, nil
}

// FertilizationList delegates to the report service.
func (s *Service) FertilizationList(ctx context.Context, principalID uuid.UUID, filter reports.Filter) ([]reports.Row, error) {
	return s.reports.FertilizationList(ctx, principalID, filter)
}

// ExportCSV writes the filtered fertilization list as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, principalID uuid.UUID, filter reports.Filter) error {
	rows, err := s.reports.FertilizationList(ctx, principalID, filter)
	if err != nil {
		return err
	}
	return reports.WriteCSV(w, rows)
}

// ExportExcel writes the filtered fertilization list as an Excel workbook.
func (s *Service) ExportExcel(ctx context.Context, w io.Writer, principalID uuid.UUID, filter reports.Filter) error {
	rows, err := s.reports.FertilizationList(ctx, principalID, filter)
	if err != nil {
		return err
	}
	return reports.WriteExcel(w, rows)
}

// SaveReportFilter stores a named fertilization list filter for reuse.
func (s *Service) SaveReportFilter(ctx context.Context, principalID uuid.UUID, name string, filter reports.Filter) (*models.SavedReport, error) {
	return s.reports.SaveFilter(ctx, principalID, name, filter)
}

// RunSavedReport executes a stored filter and returns its rows.
func (s *Service) RunSavedReport(ctx context.Context, principalID, id uuid.UUID) ([]reports.Row, error) {
	filter, err := s.reports.LoadFilter(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.reports.FertilizationList(ctx, principalID, filter)
}

// BalancePDF renders the balance sheet of one field as PDF.
func (s *Service) BalancePDF(ctx context.Context, w io.Writer, fieldID uuid.UUID) error {
	snapshot, err := s.snapshot(ctx, fieldID)
	if err != nil {
		return err
	}
	return reports.WriteBalancePDF(w, snapshot)
}

func (s *Service) snapshot(ctx context.Context, fieldID uuid.UUID) (*field.Field, error) {
	rec, err := s.store.FieldByID(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("loading field: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("field %s not found", fieldID)
	}
	return s.builder.Build(ctx, *rec)
}
