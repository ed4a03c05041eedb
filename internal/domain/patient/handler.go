package patient

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cvdss/cvdss/internal/domain/cvd"
	"github.com/cvdss/cvdss/internal/platform/auth"
	"github.com/cvdss/cvdss/pkg/pagination"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assessments", h.Assess, auth.RequireRole(auth.RolePatient, auth.RolePhysician))

	me := api.Group("/me", auth.RequireRole(auth.RolePatient))
	me.GET("/record", h.GetMyRecord)
	me.POST("/assessment", h.AssessMe)

	patients := api.Group("/patients", auth.RequireRole(auth.RolePhysician))
	patients.GET("", h.ListPatients)
	patients.GET("/:id", h.GetPatient)
	patients.POST("/:id/assessment", h.AssessPatient)
}

// Assess evaluates a posted profile for the caller's audience.
func (h *Handler) Assess(c echo.Context) error {
	profile, err := bindProfile(c)
	if err != nil {
		return err
	}
	audience := cvd.AudienceForRole(auth.RoleFromContext(c.Request().Context()))
	a, err := h.svc.AssessProfile(c.Request().Context(), profile, audience)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) GetMyRecord(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) AssessMe(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}
	profile, err := bindProfile(c)
	if err != nil {
		return err
	}
	a, err := h.svc.AssessSelf(c.Request().Context(), id, profile)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListPatients(c echo.Context) error {
	physicianID, err := callerID(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	query := c.QueryParam("q")

	list, total, err := h.svc.ListPatients(c.Request().Context(), physicianID, query, p.Limit, p.Offset)
	if err != nil {
		return h.httpError(err)
	}
	if list == nil {
		list = []*Summary{}
	}

	resp := pagination.NewResponse(list, total, p.Limit, p.Offset)
	filters := url.Values{}
	if query != "" {
		filters.Set("q", query)
	}
	resp.Links = p.Links(c.Request().URL.Path, filters, total)
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetPatient(c echo.Context) error {
	physicianID, err := callerID(c)
	if err != nil {
		return err
	}
	patientID, err := patientIDParam(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.GetLinkedRecord(c.Request().Context(), physicianID, patientID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) AssessPatient(c echo.Context) error {
	physicianID, err := callerID(c)
	if err != nil {
		return err
	}
	patientID, err := patientIDParam(c)
	if err != nil {
		return err
	}

	var req AssessmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Profile = req.Profile.ClampBloodPressure()

	a, err := h.svc.AssessPatient(c.Request().Context(), physicianID, patientID, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func bindProfile(c echo.Context) (cvd.ClinicalProfile, error) {
	var p cvd.ClinicalProfile
	if err := c.Bind(&p); err != nil {
		return p, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return p.ClampBloodPressure(), nil
}

func callerID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(auth.UserIDFromContext(c.Request().Context()), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

func patientIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return id, nil
}

func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, cvd.ErrInvalidProfile), errors.Is(err, cvd.ErrUnknownAudience):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrNotLinked):
		return echo.NewHTTPError(http.StatusForbidden, ErrNotLinked.Error())
	case errors.Is(err, ErrStaleRecord):
		return echo.NewHTTPError(http.StatusConflict, ErrStaleRecord.Error())
	case errors.Is(err, ErrVersionRequired):
		return echo.NewHTTPError(http.StatusPreconditionRequired, ErrVersionRequired.Error())
	case errors.Is(err, cvd.ErrPredictionUnavailable):
		h.logger.Warn().Err(err).Msg("prediction unavailable")
		return echo.NewHTTPError(http.StatusServiceUnavailable, cvd.ErrPredictionUnavailable.Error())
	default:
		h.logger.Error().Err(err).Msg("patient request failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
