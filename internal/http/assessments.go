package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"forelegg/internal/config"
	"forelegg/internal/domain"
	"forelegg/internal/report"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AssessmentsHandler struct {
	Engine domain.Engine
	Limits config.LimitsConfig
	Logger *zap.Logger
}

type assessReq struct {
	Travelers int                        `json:"travelers"`
	Declared  map[string]decimal.Decimal `json:"declared"`
}

type batchReq struct {
	Declarations []assessReq `json:"declarations"`
}

type assessResp struct {
	AssessmentID string `json:"assessment_id"`
	*domain.AssessmentResult
	Notes []string `json:"notes"`
}

// toDeclaration resolves category names. Limit errors are returned as
// limitError so they map to 422 rather than 400.
func (h *AssessmentsHandler) toDeclaration(req assessReq) (domain.Declaration, error) {
	if h.Limits.MaxTravelers > 0 && req.Travelers > h.Limits.MaxTravelers {
		return domain.Declaration{}, limitError(fmt.Sprintf("at most %d travelers per assessment", h.Limits.MaxTravelers))
	}
	decl := domain.Declaration{
		Travelers: req.Travelers,
		Declared:  make(map[domain.Category]decimal.Decimal, len(req.Declared)),
	}
	for name, amt := range req.Declared {
		c, err := domain.ParseCategory(name)
		if err != nil {
			return domain.Declaration{}, err
		}
		decl.Declared[c] = amt
	}
	return decl, nil
}

type limitError string

func (e limitError) Error() string { return string(e) }

func newResp(res *domain.AssessmentResult) assessResp {
	return assessResp{
		AssessmentID:     uuid.NewString(),
		AssessmentResult: res,
		Notes:            report.Notes(res),
	}
}

func (h *AssessmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req assessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	decl, err := h.toDeclaration(req)
	if err != nil {
		h.writeRequestError(w, err)
		return
	}

	res, err := h.Engine.Assess(decl)
	if err != nil {
		writeAssessError(w, err)
		return
	}

	resp := newResp(res)
	h.Logger.Debug("assessment",
		zap.String("assessment_id", resp.AssessmentID),
		zap.Int("travelers", res.Travelers),
		zap.Int64("single_total", int64(res.SingleTravelerTotal)),
		zap.Int64("optimal_total", int64(res.OptimalTotal)),
		zap.Bool("exceeds_max", res.ExceedsMaxThreshold),
	)
	WriteJSON(w, http.StatusOK, resp)
}

func (h *AssessmentsHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Declarations) == 0 {
		WriteError(w, http.StatusBadRequest, "no declarations")
		return
	}
	if h.Limits.BatchSize > 0 && len(req.Declarations) > h.Limits.BatchSize {
		WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("at most %d declarations per batch", h.Limits.BatchSize))
		return
	}

	decls := make([]domain.Declaration, 0, len(req.Declarations))
	for i, dr := range req.Declarations {
		decl, err := h.toDeclaration(dr)
		if err != nil {
			h.writeRequestError(w, fmt.Errorf("declaration %d: %w", i, err))
			return
		}
		decls = append(decls, decl)
	}

	results, err := h.Engine.AssessBatch(r.Context(), decls)
	if err != nil {
		writeAssessError(w, err)
		return
	}

	out := make([]assessResp, 0, len(results))
	for _, res := range results {
		out = append(out, newResp(res))
	}
	h.Logger.Debug("assessment batch", zap.Int("count", len(out)))
	WriteJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (h *AssessmentsHandler) writeRequestError(w http.ResponseWriter, err error) {
	var le limitError
	if errors.As(err, &le) {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeAssessError(w, err)
}
