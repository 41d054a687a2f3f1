package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medicines", h.SearchMedicines)
	api.GET("/medicines/:id", h.GetMedicine)
	api.GET("/lab-tests", h.SearchLabTests)
	api.GET("/lab-tests/:id", h.GetLabTest)
}

func (h *Handler) SearchMedicines(c echo.Context) error {
	items, err := h.svc.SearchMedicines(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []Medicine{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) SearchLabTests(c echo.Context) error {
	items, err := h.svc.SearchLabTests(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []LabTest{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetMedicine(c echo.Context) error {
	m, err := h.svc.GetMedicine(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "medicine not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) GetLabTest(c echo.Context) error {
	t, err := h.svc.GetLabTest(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab test not found")
	}
	return c.JSON(http.StatusOK, t)
}
