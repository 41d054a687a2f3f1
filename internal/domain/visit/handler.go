package visit

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc      *Service
	composer *Composer
}

func NewHandler(svc *Service, composer *Composer) *Handler {
	return &Handler{svc: svc, composer: composer}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:pid/visits", h.ListVisits)
	api.GET("/patients/:pid/visits/:vid", h.GetVisit)
	api.POST("/patients/:pid/visits", h.CreateVisit)
	api.PUT("/patients/:pid/visits/:vid", h.UpdateVisit)
}

func (h *Handler) ListVisits(c echo.Context) error {
	visits, err := h.svc.ListVisitsByPatient(c.Request().Context(), c.Param("pid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if visits == nil {
		visits = []*Visit{}
	}
	return c.JSON(http.StatusOK, visits)
}

func (h *Handler) GetVisit(c echo.Context) error {
	v, err := h.svc.GetVisit(c.Request().Context(), c.Param("pid"), c.Param("vid"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

// CreateVisit commits a new prescription draft for the patient in the path.
func (h *Handler) CreateVisit(c echo.Context) error {
	var v Visit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ID = ""
	v.PatientID = c.Param("pid")

	saved, err := h.composer.Commit(c.Request().Context(), h.composer.ResumeDraft(&v))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, saved)
}

// UpdateVisit commits an edit of an existing prescription. The persisted
// version is the submitted version + 1; a vanished record yields 409 so the
// client does not navigate away believing the commit succeeded.
func (h *Handler) UpdateVisit(c echo.Context) error {
	var v Visit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ID = c.Param("vid")
	v.PatientID = c.Param("pid")

	saved, err := h.composer.Commit(c.Request().Context(), h.composer.ResumeDraft(&v))
	if errors.Is(err, ErrPersistenceFailure) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, saved)
}
