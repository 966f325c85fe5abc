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

// PricingHandlerInterface defines the contract for pricing handlers
type PricingHandlerInterface interface {
	ComputePrice(c fiber.Ctx) error
	GetMonthDemand(c fiber.Ctx) error
}

// PricingHandler handles price computation HTTP requests
type PricingHandler struct {
	pricingFlow  businessflow.PricingFlow
	calendarFlow businessflow.CalendarFlow
	validator    *validator.Validate
}

func (h *PricingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PricingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingFlow businessflow.PricingFlow, calendarFlow businessflow.CalendarFlow) *PricingHandler {
	return &PricingHandler{
		pricingFlow:  pricingFlow,
		calendarFlow: calendarFlow,
		validator:    validator.New(),
	}
}

// ComputePrice prices one night of one property and returns the audit trail
func (h *PricingHandler) ComputePrice(c fiber.Ctx) error {
	var req dto.ComputePriceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.PropertyID = c.Params("uuid")

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.pricingFlow.ComputePrice(h.createRequestContext(c, "/api/v1/properties/:uuid/price"), &req, metadata)
	if err != nil {
		if businessflow.IsHistoryWriteFailed(err) && result != nil {
			// The price is valid; only the audit write failed.
			return h.SuccessResponse(c, fiber.StatusOK, "Price computed, history write pending", result)
		}
		if businessflow.IsPropertyNotFound(err) || businessflow.IsPricingConfigNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Property or pricing config not found", "NOT_FOUND", nil)
		}
		if businessflow.IsInvalidDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date", "INVALID_DATE", nil)
		}

		log.Println("Price computation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Price computation failed", "PRICE_COMPUTATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Price computed successfully", result)
}

// GetMonthDemand returns a property's monthly pricing calendar
func (h *PricingHandler) GetMonthDemand(c fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid year", "INVALID_YEAR", nil)
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid month", "INVALID_MONTH", nil)
	}

	req := dto.MonthDemandRequest{
		PropertyID: c.Params("uuid"),
		Year:       year,
		Month:      month,
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	// A full month touches every signal provider; give it a wider deadline.
	result, err := h.calendarFlow.ComputeMonthDemand(h.createRequestContextWithTimeout(c, "/api/v1/properties/:uuid/calendar", 2*time.Minute), &req, metadata)
	if err != nil {
		if businessflow.IsPropertyNotFound(err) || businessflow.IsPricingConfigNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Property or pricing config not found", "NOT_FOUND", nil)
		}
		if businessflow.IsInvalidMonth(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid month", "INVALID_MONTH", nil)
		}

		log.Println("Month demand computation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Month demand computation failed", "MONTH_DEMAND_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Month demand computed successfully", result)
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *PricingHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

// createRequestContextWithTimeout creates a context with custom timeout and request-scoped values
func (h *PricingHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
