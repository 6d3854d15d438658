// Package reports builds the fertilization list view and its exports.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/store"
)

// Filter restricts the fertilization list. Empty slices do not restrict.
type Filter struct {
	Year          int         `json:"year"`
	FieldIDs      []uuid.UUID `json:"field_ids,omitempty"`
	FertilizerIDs []uuid.UUID `json:"fertilizer_ids,omitempty"`
	CropIDs       []uuid.UUID `json:"crop_ids,omitempty"`
}

// Row is one line of the fertilization list.
type Row struct {
	Parcel         string             `json:"parcel"`
	Prefix         int                `json:"prefix"`
	Suffix         int                `json:"suffix"`
	SubSuffix      int                `json:"sub_suffix"`
	FieldName      string             `json:"field_name"`
	Year           int                `json:"year"`
	Area           decimal.Decimal    `json:"area"`
	CropName       string             `json:"crop_name"`
	FertilizerName string             `json:"fertilizer_name"`
	Measure        models.MeasureType `json:"measure"`
	Amount         decimal.Decimal    `json:"amount"`
	Month          int                `json:"month"`
}

// Service assembles the list view from the store.
type Service struct {
	store *store.Store
	log   *zap.Logger
}

// NewService returns a report service.
func NewService(s *store.Store, log *zap.Logger) *Service {
	return &Service{store: s, log: log}
}

// FertilizationList returns the filtered application rows of one owner and
// year, sorted by parcel number, crop name, fertilizer name and measure.
func (s *Service) FertilizationList(ctx context.Context, principalID uuid.UUID, filter Filter) ([]Row, error) {
	fields, err := s.store.FieldsOfYear(ctx, principalID, filter.Year)
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}

	rows := []Row{}
	for _, f := range fields {
		if !matchesID(filter.FieldIDs, f.ID) {
			continue
		}
		fertilizations, err := s.store.FertilizationsOfField(ctx, f.ID)
		if err != nil {
			return nil, fmt.Errorf("listing fertilizations of %s: %w", f.ID, err)
		}
		for _, fz := range fertilizations {
			if !matchesID(filter.FertilizerIDs, fz.FertilizerID) {
				continue
			}
			if !matchesID(filter.CropIDs, fz.Cultivation.CropID) {
				continue
			}
			rows = append(rows, Row{
				Parcel:         fmt.Sprintf("%d-%d", f.BaseField.Prefix, f.BaseField.Suffix),
				Prefix:         f.BaseField.Prefix,
				Suffix:         f.BaseField.Suffix,
				SubSuffix:      f.SubSuffix,
				FieldName:      f.BaseField.Name,
				Year:           f.Year,
				Area:           f.Area,
				CropName:       fz.Cultivation.Crop.Name,
				FertilizerName: fz.Fertilizer.Name,
				Measure:        fz.Measure,
				Amount:         fz.Amount,
				Month:          fz.Month,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Prefix != b.Prefix {
			return a.Prefix < b.Prefix
		}
		if a.Suffix != b.Suffix {
			return a.Suffix < b.Suffix
		}
		if a.SubSuffix != b.SubSuffix {
			return a.SubSuffix < b.SubSuffix
		}
		if a.CropName != b.CropName {
			return a.CropName < b.CropName
		}
		if a.FertilizerName != b.FertilizerName {
			return a.FertilizerName < b.FertilizerName
		}
		return a.Measure.Order() < b.Measure.Order()
	})

	s.log.Debug("fertilization list built",
		zap.Int("year", filter.Year),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// SaveFilter stores a named filter for reuse.
func (s *Service) SaveFilter(ctx context.Context, principalID uuid.UUID, name string, filter Filter) (*models.SavedReport, error) {
	blob, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encoding filter: %w", err)
	}
	report := &models.SavedReport{
		PrincipalID: principalID,
		Name:        name,
		Filter:      datatypes.JSON(blob),
	}
	if err := s.store.SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("saving filter: %w", err)
	}
	return report, nil
}

// LoadFilter resolves a stored filter by id.
func (s *Service) LoadFilter(ctx context.Context, id uuid.UUID) (Filter, error) {
	report, err := s.store.SavedReportByID(ctx, id)
	if err != nil {
		return Filter{}, fmt.Errorf("loading filter: %w", err)
	}
	if report == nil {
		return Filter{}, fmt.Errorf("saved report %s not found", id)
	}
	var filter Filter
	if err := json.Unmarshal(report.Filter, &filter); err != nil {
		return Filter{}, fmt.Errorf("decoding filter: %w", err)
	}
	return filter, nil
}

func matchesID(allowed []uuid.UUID, id uuid.UUID) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == id {
			return true
		}
	}
	return false
}
