package httpapi

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"nutriplan-api/internal/export"
	"nutriplan-api/internal/models"
	"nutriplan-api/internal/nutrition"
	"nutriplan-api/internal/validation"
)

// Handler serves the calculation endpoints. It holds no per-request state.
type Handler struct {
	calc     *nutrition.Calculator
	validate *validation.Validator
	logger   *zap.Logger
}

// NewHandler returns a Handler computing plans with calc and logging to logger.
func NewHandler(calc *nutrition.Calculator, logger *zap.Logger) *Handler {
	return &Handler{calc: calc, validate: validation.New(), logger: logger}
}

func (h *Handler) generalPlan(r *http.Request, normalUser bool) (nutrition.GeneralResult, error) {
	var req models.DietRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		return nutrition.GeneralResult{}, err
	}
	if normalUser {
		validation.ApplyNormalUserDefaults(&req)
	}
	p, err := h.validate.DietProfile(&req)
	if err != nil {
		return nutrition.GeneralResult{}, err
	}
	return h.calc.General(p), nil
}

func (h *Handler) renalPlan(r *http.Request) (nutrition.RenalResult, error) {
	var req models.RenalDietRequest
	if err := validation.Decode(r.Body, &req); err != nil {
		return nutrition.RenalResult{}, err
	}
	p, err := h.validate.RenalProfile(&req)
	if err != nil {
		return nutrition.RenalResult{}, err
	}
	return h.calc.Renal(p), nil
}

func (h *Handler) calculateGeneral(w http.ResponseWriter, r *http.Request) {
	res, err := h.generalPlan(r, false)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, "diet plan calculated", res)
}

func (h *Handler) calculateNormalUser(w http.ResponseWriter, r *http.Request) {
	res, err := h.generalPlan(r, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, "diet plan calculated", res)
}

func (h *Handler) calculateRenal(w http.ResponseWriter, r *http.Request) {
	res, err := h.renalPlan(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, "renal diet plan calculated", res)
}

func (h *Handler) exportGeneral(w http.ResponseWriter, r *http.Request) {
	res, err := h.generalPlan(r, false)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	data, err := export.GeneralWorkbook(res)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("render general workbook: %w", err))
		return
	}
	writeWorkbook(w, "diet-plan.xlsx", data)
}

func (h *Handler) exportRenal(w http.ResponseWriter, r *http.Request) {
	res, err := h.renalPlan(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	data, err := export.RenalWorkbook(res)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("render renal workbook: %w", err))
		return
	}
	writeWorkbook(w, "renal-diet-plan.xlsx", data)
}

func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) reference(w http.ResponseWriter, r *http.Request) {
	writeData(w, "reference tables", h.calc.Reference().Tables())
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeData(w, "ok", map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, http.StatusNotFound, "not found", nil)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, http.StatusMethodNotAllowed, "method not allowed", nil)
}
