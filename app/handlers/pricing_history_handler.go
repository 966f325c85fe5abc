// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/dto"
	businessflow "github.com/Landcsgirl1999/hostthub-pricing/business_flow"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// PricingHistoryHandlerInterface defines the contract for pricing history handlers
type PricingHistoryHandlerInterface interface {
	ListPricingHistory(c fiber.Ctx) error
	ExportPricingHistory(c fiber.Ctx) error
}

// PricingHistoryHandler handles read and export requests over stored prices
type PricingHistoryHandler struct {
	historyFlow businessflow.PricingHistoryFlow
	validator   *validator.Validate
}

func (h *PricingHistoryHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PricingHistoryHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewPricingHistoryHandler creates a new pricing history handler
func NewPricingHistoryHandler(historyFlow businessflow.PricingHistoryFlow) *PricingHistoryHandler {
	return &PricingHistoryHandler{
		historyFlow: historyFlow,
		validator:   validator.New(),
	}
}

// ListPricingHistory returns a month of stored price records for a property
func (h *PricingHistoryHandler) ListPricingHistory(c fiber.Ctx) error {
	req, ok := h.parseMonthQuery(c)
	if !ok {
		return nil
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.historyFlow.ListPricingHistory(h.createRequestContext(c, "/api/v1/properties/:uuid/pricing-history"), req, metadata)
	if err != nil {
		if businessflow.IsPropertyNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Property not found", "PROPERTY_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidMonth(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid month", "INVALID_MONTH", nil)
		}

		log.Println("Pricing history lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Pricing history lookup failed", "HISTORY_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Pricing history retrieved", result)
}

// ExportPricingHistory streams a month of stored prices as an XLSX file
func (h *PricingHistoryHandler) ExportPricingHistory(c fiber.Ctx) error {
	req, ok := h.parseMonthQuery(c)
	if !ok {
		return nil
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.historyFlow.ExportPricingHistory(h.createRequestContext(c, "/api/v1/properties/:uuid/pricing-history/export"), &dto.ExportPricingHistoryRequest{
		PropertyID: req.PropertyID,
		Year:       req.Year,
		Month:      req.Month,
	}, metadata)
	if err != nil {
		if businessflow.IsPropertyNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Property not found", "PROPERTY_NOT_FOUND", nil)
		}
		if businessflow.IsNoHistoryToExport(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No pricing history to export", "NO_HISTORY_TO_EXPORT", nil)
		}

		log.Println("Pricing history export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Pricing history export failed", "HISTORY_EXPORT_FAILED", nil)
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.FileName+`"`)
	return c.Send(result.Data)
}

// parseMonthQuery reads the uuid path param and year/month query params.
// On validation failure it writes the error response and returns ok=false.
func (h *PricingHistoryHandler) parseMonthQuery(c fiber.Ctx) (*dto.ListPricingHistoryRequest, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		_ = h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid year", "INVALID_YEAR", nil)
		return nil, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		_ = h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid month", "INVALID_MONTH", nil)
		return nil, false
	}

	req := &dto.ListPricingHistoryRequest{
		PropertyID: c.Params("uuid"),
		Year:       year,
		Month:      month,
	}
	if err := h.validator.Struct(req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		_ = h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
		return nil, false
	}
	return req, true
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *PricingHistoryHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	timeout := 30 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
