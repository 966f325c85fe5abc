// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/dto"
	businessflow "github.com/Landcsgirl1999/hostthub-pricing/business_flow"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// MarketDataHandlerInterface defines the contract for market data handlers
type MarketDataHandlerInterface interface {
	RecordMarketData(c fiber.Ctx) error
	RecordCompetitorPrices(c fiber.Ctx) error
}

// MarketDataHandler handles market data write requests from collection jobs
type MarketDataHandler struct {
	marketDataFlow businessflow.MarketDataFlow
	validator      *validator.Validate
}

func (h *MarketDataHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *MarketDataHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewMarketDataHandler creates a new market data handler
func NewMarketDataHandler(marketDataFlow businessflow.MarketDataFlow) *MarketDataHandler {
	return &MarketDataHandler{
		marketDataFlow: marketDataFlow,
		validator:      validator.New(),
	}
}

// RecordMarketData upserts a market snapshot for a property
func (h *MarketDataHandler) RecordMarketData(c fiber.Ctx) error {
	var req dto.RecordMarketDataRequest
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

	result, err := h.marketDataFlow.RecordMarketData(h.createRequestContext(c, "/api/v1/properties/:uuid/market-data"), &req, metadata)
	if err != nil {
		if businessflow.IsPropertyNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Property not found", "PROPERTY_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date", "INVALID_DATE", nil)
		}

		log.Println("Market data write failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Market data write failed", "MARKET_DATA_WRITE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Market snapshot recorded", result)
}

// RecordCompetitorPrices upserts a batch of competitor price observations
func (h *MarketDataHandler) RecordCompetitorPrices(c fiber.Ctx) error {
	var req dto.RecordCompetitorPricesRequest
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

	result, err := h.marketDataFlow.RecordCompetitorPrices(h.createRequestContext(c, "/api/v1/properties/:uuid/competitor-prices"), &req, metadata)
	if err != nil {
		if businessflow.IsPropertyNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Property not found", "PROPERTY_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date", "INVALID_DATE", nil)
		}

		log.Println("Competitor price write failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Competitor price write failed", "COMPETITOR_PRICE_WRITE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Competitor prices recorded", result)
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *MarketDataHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
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
