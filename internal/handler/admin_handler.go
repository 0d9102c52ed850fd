package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bondspire/intake-api/internal/dto"
	"github.com/bondspire/intake-api/internal/service"
)

// AdminHandler exposes read-only review listings.
type AdminHandler struct {
	service *service.AdminService
	logger  *zap.Logger
}

// NewAdminHandler creates a new handler instance.
func NewAdminHandler(service *service.AdminService, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{service: service, logger: logger}
}

// ListSubmissions handles GET /admin/submissions requests.
func (h *AdminHandler) ListSubmissions(c echo.Context) error {
	filter := dto.SubmissionFilter{
		FormType: strings.TrimSpace(c.QueryParam("form_type")),
		Status:   strings.TrimSpace(c.QueryParam("status")),
		Limit:    parseIntDefault(c.QueryParam("limit"), 0),
		Offset:   parseIntDefault(c.QueryParam("offset"), 0),
	}

	if sinceStr := strings.TrimSpace(c.QueryParam("since")); sinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid since (use RFC3339)")
		}
		filter.Since = &parsed
	}

	rows, applied, err := h.service.ListSubmissions(c.Request().Context(), filter)
	if err != nil {
		return h.listError(c, "submissions", err)
	}

	return Success(c, http.StatusOK, "submissions retrieved", map[string]any{
		"items":      rows,
		"pagination": dto.Pagination{Limit: applied.Limit, Offset: applied.Offset, Count: len(rows)},
	})
}

// ListSubscriptions handles GET /admin/subscriptions requests.
func (h *AdminHandler) ListSubscriptions(c echo.Context) error {
	filter := dto.SubscriptionFilter{
		Status:       strings.TrimSpace(c.QueryParam("status")),
		InterestArea: strings.TrimSpace(c.QueryParam("interest_area")),
		Limit:        parseIntDefault(c.QueryParam("limit"), 0),
		Offset:       parseIntDefault(c.QueryParam("offset"), 0),
	}

	rows, applied, err := h.service.ListSubscriptions(c.Request().Context(), filter)
	if err != nil {
		return h.listError(c, "subscriptions", err)
	}

	return Success(c, http.StatusOK, "subscriptions retrieved", map[string]any{
		"items":      rows,
		"pagination": dto.Pagination{Limit: applied.Limit, Offset: applied.Offset, Count: len(rows)},
	})
}

func (h *AdminHandler) listError(c echo.Context, what string, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return Error(c, http.StatusBadRequest, ve.Message)
	}
	h.logger.Error("admin listing failed", zap.String("listing", what), zap.Error(err))
	return Error(c, http.StatusInternalServerError, "failed to list "+what)
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
