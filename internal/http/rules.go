package httpx

import (
	"net/http"

	"forelegg/internal/domain"

	"github.com/go-chi/chi/v5"
)

type RulesHandler struct{}

type ruleResp struct {
	domain.QuotaRule
	Step             string            `json:"step"`
	Tiers            []domain.FineTier `json:"tiers"`
	ScheduleCitation string            `json:"schedule_citation"`
}

func ruleFor(c domain.Category) (ruleResp, error) {
	q, err := domain.LookupQuota(c)
	if err != nil {
		return ruleResp{}, err
	}
	return withSchedule(q)
}

func withSchedule(q domain.QuotaRule) (ruleResp, error) {
	s, err := domain.ScheduleFor(q.Category)
	if err != nil {
		return ruleResp{}, err
	}
	return ruleResp{
		QuotaRule:        q,
		Step:             q.Unit.Step().String(),
		Tiers:            s.Tiers,
		ScheduleCitation: domain.ScheduleCitation,
	}, nil
}

func (h *RulesHandler) List(w http.ResponseWriter, r *http.Request) {
	rules := domain.QuotaRules()
	out := make([]ruleResp, 0, len(rules))
	for _, q := range rules {
		rr, err := withSchedule(q)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "rule tables out of sync")
			return
		}
		out = append(out, rr)
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"rules":              out,
		"max_fine_threshold": domain.MaxFineThreshold,
	})
}

func (h *RulesHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "unknown category")
		return
	}
	rr, err := ruleFor(c)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "rule tables out of sync")
		return
	}
	WriteJSON(w, http.StatusOK, rr)
}
