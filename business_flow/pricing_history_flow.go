package businessflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/dto"
	"github.com/Landcsgirl1999/hostthub-pricing/repository"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// PricingHistoryFlow exposes read and export paths over stored price
// computations.
type PricingHistoryFlow interface {
	ListPricingHistory(ctx context.Context, req *dto.ListPricingHistoryRequest, metadata *ClientMetadata) (*dto.ListPricingHistoryResponse, error)
	ExportPricingHistory(ctx context.Context, req *dto.ExportPricingHistoryRequest, metadata *ClientMetadata) (*dto.ExportPricingHistoryResponse, error)
}

// PricingHistoryFlowImpl implements the pricing history business flow
type PricingHistoryFlowImpl struct {
	propertyRepo repository.PropertyRepository
	historyRepo  repository.PricingHistoryRepository
}

// NewPricingHistoryFlow creates a new pricing history flow instance
func NewPricingHistoryFlow(
	propertyRepo repository.PropertyRepository,
	historyRepo repository.PricingHistoryRepository,
) PricingHistoryFlow {
	return &PricingHistoryFlowImpl{
		propertyRepo: propertyRepo,
		historyRepo:  historyRepo,
	}
}

func (f *PricingHistoryFlowImpl) ListPricingHistory(ctx context.Context, req *dto.ListPricingHistoryRequest, metadata *ClientMetadata) (*dto.ListPricingHistoryResponse, error) {
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, NewBusinessError("INVALID_PROPERTY_ID", "property id must be a UUID", err)
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, NewBusinessError("INVALID_MONTH", "month must be between 1 and 12", ErrInvalidMonth)
	}

	property, err := f.propertyRepo.ByUUID(ctx, propertyID)
	if err != nil {
		return nil, NewBusinessError("PROPERTY_LOOKUP_FAILED", "failed to load property", err)
	}
	if property == nil {
		return nil, NewBusinessError("PROPERTY_NOT_FOUND", "property not found", ErrPropertyNotFound)
	}

	records, err := f.historyRepo.ByPropertyAndMonth(ctx, property.ID, req.Year, time.Month(req.Month))
	if err != nil {
		return nil, NewBusinessError("HISTORY_LOOKUP_FAILED", "failed to load pricing history", err)
	}

	items := make([]dto.PricingHistoryItem, 0, len(records))
	for _, record := range records {
		items = append(items, dto.PricingHistoryItem{
			Date:          record.Date.Format("2006-01-02"),
			BasePrice:     record.BasePrice,
			FinalPrice:    record.FinalPrice,
			AppliedRules:  record.AppliedRules,
			MarketFactors: record.Factors,
			Confidence:    record.Confidence,
		})
	}

	return &dto.ListPricingHistoryResponse{
		PropertyID: property.UUID.String(),
		Year:       req.Year,
		Month:      req.Month,
		Items:      items,
		Total:      len(items),
	}, nil
}

func (f *PricingHistoryFlowImpl) ExportPricingHistory(ctx context.Context, req *dto.ExportPricingHistoryRequest, metadata *ClientMetadata) (*dto.ExportPricingHistoryResponse, error) {
	list, err := f.ListPricingHistory(ctx, &dto.ListPricingHistoryRequest{
		PropertyID: req.PropertyID,
		Year:       req.Year,
		Month:      req.Month,
	}, metadata)
	if err != nil {
		return nil, err
	}
	if len(list.Items) == 0 {
		return nil, NewBusinessError("NO_HISTORY_TO_EXPORT", "no pricing history matches the export filter", ErrNoHistoryToExport)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "Pricing History"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []any{"Date", "Base Price", "Final Price", "Confidence", "Applied Rules"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for i, item := range list.Items {
		row := []any{
			item.Date,
			item.BasePrice,
			item.FinalPrice,
			item.Confidence,
			strings.Join(item.AppliedRules, "; "),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow(sheet, cellRef, &row)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "failed to build export file", err)
	}

	return &dto.ExportPricingHistoryResponse{
		FileName:    fmt.Sprintf("pricing-history-%s-%04d-%02d.xlsx", list.PropertyID, req.Year, req.Month),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}
