package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// AssessmentHandler exposes skill-test, psychometric and marksheet endpoints.
type AssessmentHandler struct {
	assessments service.AssessmentService
	dashboard   service.DashboardService
	logger      zerolog.Logger
}

// NewAssessmentHandler constructs an assessment handler.
func NewAssessmentHandler(assessments service.AssessmentService, dashboard service.DashboardService, logger zerolog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessments: assessments,
		dashboard:   dashboard,
		logger:      logger.With().Str("component", "assessment_handler").Logger(),
	}
}

// Register wires assessment routes.
func (h *AssessmentHandler) Register(router fiber.Router) {
	router.Get("/skill-tests", h.listCategories)
	router.Post("/skill-tests/:category/submit", h.submitSkillTest)
	router.Get("/skill-tests/history", h.skillTestHistory)
	router.Get("/psychometric/questions", h.psychometricQuestions)
	router.Post("/psychometric/submit", h.submitPsychometric)
	router.Get("/psychometric/latest", h.latestPsychometric)
	router.Post("/marksheets/analyze", h.analyzeMarksheet)
	router.Get("/marksheets", h.listMarksheets)
	router.Delete("/marksheets/:id", h.deleteMarksheet)
}

func (h *AssessmentHandler) listCategories(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "skill test categories retrieved", h.assessments.ListSkillTestCategories(c.Context()))
}

func (h *AssessmentHandler) submitSkillTest(c *fiber.Ctx) error {
	var payload dto.SkillTestSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := userIDFromContext(c)
	response, err := h.assessments.SubmitSkillTest(c.Context(), userID, c.Params("category"), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid answers payload")
		case errors.Is(err, service.ErrUnknownCategory):
			return utils.SendError(c, fiber.StatusNotFound, "unknown skill test category")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("skill test submission failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to grade skill test")
		}
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "skill test graded", response)
}

func (h *AssessmentHandler) skillTestHistory(c *fiber.Ctx) error {
	response, err := h.assessments.SkillTestHistory(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("skill test history failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch history")
	}

	return utils.SendSuccess(c, "skill test history retrieved", response)
}

func (h *AssessmentHandler) psychometricQuestions(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "psychometric questions retrieved", h.assessments.PsychometricQuestions(c.Context()))
}

func (h *AssessmentHandler) submitPsychometric(c *fiber.Ctx) error {
	var payload dto.PsychometricSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := userIDFromContext(c)
	response, err := h.assessments.SubmitPsychometric(c.Context(), userID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid answers payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("psychometric submission failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to score assessment")
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assessment scored", response)
}

func (h *AssessmentHandler) latestPsychometric(c *fiber.Ctx) error {
	response, err := h.assessments.LatestPsychometric(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "no assessment taken yet")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("psychometric lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch assessment")
	}

	return utils.SendSuccess(c, "assessment retrieved", response)
}

func (h *AssessmentHandler) analyzeMarksheet(c *fiber.Ctx) error {
	var payload dto.MarksheetAnalyzeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := userIDFromContext(c)
	response, err := h.assessments.AnalyzeMarksheet(c.Context(), userID, payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrNoSubjects):
			return utils.SendError(c, fiber.StatusBadRequest, "marksheet needs at least one subject")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("marksheet analysis failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to analyze marksheet")
		}
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "marksheet analyzed", response)
}

func (h *AssessmentHandler) listMarksheets(c *fiber.Ctx) error {
	response, err := h.assessments.ListMarksheets(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("marksheet list failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch marksheets")
	}

	return utils.SendSuccess(c, "marksheets retrieved", response)
}

func (h *AssessmentHandler) deleteMarksheet(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid marksheet id")
	}

	userID := userIDFromContext(c)
	if err := h.assessments.DeleteMarksheet(c.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrMarksheetNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "marksheet not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("marksheet delete failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete marksheet")
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccess(c, "marksheet deleted", nil)
}
