package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

type ModerationHandler struct {
	reports    *services.ReportService
	aggregator *services.ReportAggregator
	engine     *services.ModerationService
}

func NewModerationHandler(
	reports *services.ReportService,
	aggregator *services.ReportAggregator,
	engine *services.ModerationService,
) *ModerationHandler {
	return &ModerationHandler{reports: reports, aggregator: aggregator, engine: engine}
}

// CreateReport files a report on behalf of the authenticated user.
func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	targetType, _ := models.ParseTargetType(req.TargetType)
	report, err := h.reports.Create(c.UserContext(), userID, targetType, req.Reason, req.TargetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	var (
		reports []models.Report
		err     error
	)
	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseReportStatus(raw)
		if !ok {
			return badRequest(c, "Invalid status")
		}
		reports, err = h.reports.ListByStatus(c.UserContext(), status)
	} else {
		reports, err = h.reports.ListAll(c.UserContext())
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReportListResponse{Reports: reports, Total: len(reports)})
}

func (h *ModerationHandler) ListPendingReports(c *fiber.Ctx) error {
	reports, err := h.reports.ListPending(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReportListResponse{Reports: reports, Total: len(reports)})
}

func (h *ModerationHandler) PendingCount(c *fiber.Ctx) error {
	targetType, targetID, err := targetParams(c)
	if err != nil {
		return respondError(c, err)
	}
	n, err := h.reports.PendingCount(c.UserContext(), targetType, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PendingCountResponse{TargetType: string(targetType), TargetID: targetID, Pending: n})
}

// ReportedTargets lists targets with at least ?min pending reports, defaulting
// to the configured threshold.
func (h *ModerationHandler) ReportedTargets(c *fiber.Ctx) error {
	targetType, err := targetTypeParam(c)
	if err != nil {
		return respondError(c, err)
	}

	minCount := h.aggregator.DefaultThreshold()
	if raw := c.Query("min"); raw != "" {
		minCount, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(c, "Invalid min count")
		}
	}

	targets, err := h.aggregator.FindOverThreshold(c.UserContext(), targetType, minCount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ThresholdResponse{TargetType: string(targetType), MinCount: minCount, Targets: targets})
}

func (h *ModerationHandler) ReportedTargetDetails(c *fiber.Ctx) error {
	targetType, err := targetTypeParam(c)
	if err != nil {
		return respondError(c, err)
	}
	groups, err := h.aggregator.ListAllWithReports(c.UserContext(), targetType)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(groups)
}

func (h *ModerationHandler) ReportedTarget(c *fiber.Ctx) error {
	targetType, targetID, err := targetParams(c)
	if err != nil {
		return respondError(c, err)
	}
	group, err := h.aggregator.Detail(c.UserContext(), targetType, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group)
}

func (h *ModerationHandler) Dismiss(c *fiber.Ctx) error {
	targetType, targetID, err := targetParams(c)
	if err != nil {
		return respondError(c, err)
	}
	closed, err := h.engine.Dismiss(c.UserContext(), targetType, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ActionResponse{Message: "Reports dismissed", Closed: closed})
}

func (h *ModerationHandler) MarkReviewed(c *fiber.Ctx) error {
	targetType, targetID, err := targetParams(c)
	if err != nil {
		return respondError(c, err)
	}
	moved, err := h.engine.MarkReviewed(c.UserContext(), targetType, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ActionResponse{Message: "Reports marked as reviewed", Closed: moved})
}

func (h *ModerationHandler) Resolve(c *fiber.Ctx) error {
	targetType, targetID, err := targetParams(c)
	if err != nil {
		return respondError(c, err)
	}
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		return forbidden(c)
	}
	closed, err := h.engine.Resolve(c.UserContext(), targetType, targetID, adminID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ActionResponse{Message: "Reports resolved", Closed: closed})
}

func (h *ModerationHandler) KeepContent(c *fiber.Ctx) error {
	targetType, targetID, err := targetParams(c)
	if err != nil {
		return respondError(c, err)
	}
	closed, err := h.engine.KeepContent(c.UserContext(), targetType, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ActionResponse{Message: "Content kept, reports dismissed", Closed: closed})
}

func (h *ModerationHandler) DeleteContent(c *fiber.Ctx) error {
	targetType, targetID, err := targetParams(c)
	if err != nil {
		return respondError(c, err)
	}
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		return forbidden(c)
	}
	closed, err := h.engine.DeleteContentCascade(c.UserContext(), targetType, targetID, adminID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ActionResponse{Message: "Content deleted", Closed: closed})
}

func (h *ModerationHandler) BanUser(c *fiber.Ctx) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		return forbidden(c)
	}

	var req dto.BanUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	closed, err := h.engine.BanUser(c.UserContext(), userID, adminID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SanctionResponse{UserID: userID, Closed: closed})
}

func (h *ModerationHandler) SuspendUser(c *fiber.Ctx) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		return forbidden(c)
	}

	var req dto.SuspendUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	closed, err := h.engine.SuspendUser(c.UserContext(), userID, adminID, req.Reason, req.DurationDays, req.ReportID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SanctionResponse{UserID: userID, Closed: closed})
}

func targetTypeParam(c *fiber.Ctx) (models.TargetType, error) {
	targetType, ok := models.ParseTargetType(c.Params("type"))
	if !ok {
		return "", apperrors.Validation("invalid target type %q", c.Params("type"))
	}
	return targetType, nil
}

func targetParams(c *fiber.Ctx) (models.TargetType, int64, error) {
	targetType, err := targetTypeParam(c)
	if err != nil {
		return "", 0, err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return "", 0, err
	}
	return targetType, id, nil
}

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid %s %q", name, c.Params(name))
	}
	return id, nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: "Admin access required"})
}

// respondError maps service errors onto HTTP statuses. Storage failures are
// reported to Sentry and never leak their detail to the client.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
