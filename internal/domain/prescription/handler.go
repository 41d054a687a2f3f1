package prescription

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mediflow/clinic/internal/domain/doctor"
	"github.com/mediflow/clinic/internal/domain/patient"
	"github.com/mediflow/clinic/internal/domain/visit"
)

const qrSizePx = 256

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the JSON document endpoint under /api and the
// print/verify pages at the root.
func (h *Handler) RegisterRoutes(api *echo.Group, root *echo.Echo) {
	api.GET("/patients/:pid/visits/:vid/prescription", h.GetDocument)
	root.GET("/print/prescription/:pid/:vid", h.PrintPage)
	root.GET("/print/prescription/:pid/:vid/qr.png", h.QRCode)
	root.GET("/verify/:token", h.Verify)
}

func (h *Handler) document(c echo.Context) (*Document, error) {
	mode, err := ParseMode(c.QueryParam("mode"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doc, err := h.svc.Document(c.Request().Context(), c.Param("pid"), c.Param("vid"), mode, c.QueryParam("lang"))
	if errors.Is(err, patient.ErrNotFound) || errors.Is(err, visit.ErrNotFound) || errors.Is(err, doctor.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return doc, nil
}

func (h *Handler) GetDocument(c echo.Context) error {
	doc, err := h.document(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *Handler) PrintPage(c echo.Context) error {
	doc, err := h.document(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *Handler) QRCode(c echo.Context) error {
	doc, err := h.document(c)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(doc.Footer.VerifyURL, qrcode.Medium, qrSizePx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *Handler) Verify(c echo.Context) error {
	v, err := h.svc.Resolve(c.Request().Context(), c.Param("token"))
	if errors.Is(err, visit.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]any{"valid": false})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{
		"valid":               true,
		"patientId":           v.PatientID,
		"visitId":             v.ID,
		"visitDate":           v.VisitDate,
		"prescriptionVersion": v.PrescriptionVersion,
	})
}
