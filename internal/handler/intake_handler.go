package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bondspire/intake-api/internal/dto"
	"github.com/bondspire/intake-api/internal/middleware"
	"github.com/bondspire/intake-api/internal/service"
)

// Confirmation messages returned on success.
const (
	MsgContactReceived     = "Thank you for your message. We'll respond within 24 hours."
	MsgPartnershipReceived = "Thank you for your partnership inquiry. Our team will review your submission and get back to you within 3-5 business days."
	MsgNewsletterWelcome   = "Welcome to the movement! Check your email for a confirmation message."
)

// IntakeHandler exposes the public form endpoints.
type IntakeHandler struct {
	intake *service.IntakeService
	logger *zap.Logger
}

// NewIntakeHandler constructs an IntakeHandler.
func NewIntakeHandler(intake *service.IntakeService, logger *zap.Logger) *IntakeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeHandler{intake: intake, logger: logger}
}

// Contact handles POST /api/contact requests.
func (h *IntakeHandler) Contact(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, MsgInvalidBody)
	}

	submission, err := h.intake.SubmitContact(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "contact", err)
	}

	return c.JSON(http.StatusOK, dto.ContactResponse{
		IntakeResponse: dto.IntakeResponse{Success: true, Message: MsgContactReceived},
		SubmissionID:   submission.ID.String(),
	})
}

// Partnership handles POST /api/partnership requests.
func (h *IntakeHandler) Partnership(c echo.Context) error {
	var req dto.PartnershipRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, MsgInvalidBody)
	}

	submission, err := h.intake.SubmitPartnership(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "partnership", err)
	}

	return c.JSON(http.StatusOK, dto.PartnershipResponse{
		IntakeResponse: dto.IntakeResponse{Success: true, Message: MsgPartnershipReceived},
		InquiryID:      submission.ID.String(),
	})
}

// Newsletter handles POST /api/newsletter-signup requests.
func (h *IntakeHandler) Newsletter(c echo.Context) error {
	var req dto.NewsletterRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, MsgInvalidBody)
	}

	subscription, err := h.intake.Subscribe(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "newsletter", err)
	}

	return c.JSON(http.StatusOK, dto.NewsletterResponse{
		IntakeResponse: dto.IntakeResponse{Success: true, Message: MsgNewsletterWelcome},
		SubscriptionID: subscription.ID.String(),
	})
}

// Info returns a handler serving the static identification payload for GET requests.
func Info(message string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, dto.EndpointInfo{Message: message})
	}
}

func (h *IntakeHandler) fail(c echo.Context, form string, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return Error(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, service.ErrAlreadySubscribed):
		return Error(c, http.StatusConflict, service.MsgAlreadySubscribed)
	default:
		h.logger.Error("intake submission failed",
			zap.String("form", form),
			zap.String("request_id", middleware.RequestIDFromContext(c)),
			zap.Error(err),
		)
		return Error(c, http.StatusInternalServerError, MsgServerError)
	}
}
