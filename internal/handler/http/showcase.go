package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vidriera/showcase/internal/domain"
	"github.com/vidriera/showcase/internal/repository"
	"github.com/vidriera/showcase/internal/service"
	"github.com/vidriera/showcase/pkg/httputil"
	"github.com/vidriera/showcase/pkg/validator"
)

// ShowcaseHandler handles HTTP requests for rule set and arrangement endpoints.
type ShowcaseHandler struct {
	service        *service.ShowcaseService
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewShowcaseHandler creates a new showcase HTTP handler.
func NewShowcaseHandler(svc *service.ShowcaseService, maxUploadBytes int64, logger *slog.Logger) *ShowcaseHandler {
	return &ShowcaseHandler{
		service:        svc,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// --- Request DTOs ---

// RowRuleRequest is the JSON shape of one row targeting rule.
type RowRuleRequest struct {
	Age          string   `json:"age" validate:"omitempty,oneof=BEBE TODDLER KIDS"`
	Gender       string   `json:"gender" validate:"omitempty,oneof=FEMENINO MASCULINO UNISEX"`
	GarmentTypes []string `json:"garment_types" validate:"max=4"`
}

// CreateRuleSetRequest is the JSON request body for creating a rule set.
type CreateRuleSetRequest struct {
	Name                string           `json:"name" validate:"required,min=1,max=255"`
	RowRules            []RowRuleRequest `json:"row_rules" validate:"dive"`
	ExcludedTypes       []string         `json:"excluded_types"`
	LowPriorityKeywords []string         `json:"low_priority_keywords"`
}

// UpdateRuleSetRequest is the JSON request body for updating a rule set.
// Absent fields are left unchanged.
type UpdateRuleSetRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=1,max=255"`
	RowRules            []RowRuleRequest `json:"row_rules" validate:"omitempty,dive"`
	ExcludedTypes       []string         `json:"excluded_types"`
	LowPriorityKeywords []string         `json:"low_priority_keywords"`
}

// InlineRulesRequest is the JSON shape of the optional "rules" form field of
// an arrangement run, for ad hoc rules that are not stored.
type InlineRulesRequest struct {
	RowRules            []RowRuleRequest `json:"row_rules" validate:"dive"`
	ExcludedTypes       []string         `json:"excluded_types"`
	LowPriorityKeywords []string         `json:"low_priority_keywords"`
}

func toDomainRowRules(rules []RowRuleRequest) []domain.RowRule {
	if rules == nil {
		return nil
	}
	out := make([]domain.RowRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, domain.RowRule{
			Age:          r.Age,
			Gender:       r.Gender,
			GarmentTypes: r.GarmentTypes,
		})
	}
	return out
}

// --- Rule set handlers ---

// CreateRuleSet handles POST /api/v1/rulesets
func (h *ShowcaseHandler) CreateRuleSet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req CreateRuleSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateRuleSetInput{
		Name:                req.Name,
		RowRules:            toDomainRowRules(req.RowRules),
		ExcludedTypes:       req.ExcludedTypes,
		LowPriorityKeywords: req.LowPriorityKeywords,
	}

	rs, err := h.service.CreateRuleSet(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: rs})
}

// ListRuleSets handles GET /api/v1/rulesets
func (h *ShowcaseHandler) ListRuleSets(w http.ResponseWriter, r *http.Request) {
	filter := repository.RuleSetFilter{
		Page:    1,
		PerPage: 20,
	}

	if v := r.URL.Query().Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if perPage, err := strconv.Atoi(v); err == nil && perPage > 0 && perPage <= 100 {
			filter.PerPage = perPage
		}
	}

	ruleSets, total, err := h.service.ListRuleSets(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(ruleSets, total, filter.Page, filter.PerPage))
}

// GetRuleSet handles GET /api/v1/rulesets/{id}
func (h *ShowcaseHandler) GetRuleSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "rule set id is required"},
		})
		return
	}

	rs, err := h.service.GetRuleSet(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: rs})
}

// UpdateRuleSet handles PUT /api/v1/rulesets/{id}
func (h *ShowcaseHandler) UpdateRuleSet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "rule set id is required"},
		})
		return
	}

	var req UpdateRuleSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.UpdateRuleSetInput{
		Name:                req.Name,
		RowRules:            toDomainRowRules(req.RowRules),
		ExcludedTypes:       req.ExcludedTypes,
		LowPriorityKeywords: req.LowPriorityKeywords,
	}

	rs, err := h.service.UpdateRuleSet(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: rs})
}

// DeleteRuleSet handles DELETE /api/v1/rulesets/{id}
func (h *ShowcaseHandler) DeleteRuleSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "rule set id is required"},
		})
		return
	}

	if err := h.service.DeleteRuleSet(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// --- Arrangement handlers ---

// BuildArrangement handles POST /api/v1/arrangements. The request is
// multipart/form-data with a "catalog" XML file, an "inventory" CSV file,
// and either a "ruleset_id" field or an inline "rules" JSON field.
func (h *ShowcaseHandler) BuildArrangement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart form: " + err.Error()},
		})
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	catalog, _, err := r.FormFile("catalog")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "catalog file is required"},
		})
		return
	}
	defer catalog.Close()

	inventory, _, err := r.FormFile("inventory")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "inventory file is required"},
		})
		return
	}
	defer inventory.Close()

	input := &service.BuildArrangementInput{
		Catalog:   catalog,
		Inventory: inventory,
		RuleSetID: r.FormValue("ruleset_id"),
	}

	if rules := r.FormValue("rules"); rules != "" {
		var req InlineRulesRequest
		if err := json.Unmarshal([]byte(rules), &req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid rules field: " + err.Error()},
			})
			return
		}
		if err := validator.Validate(req); err != nil {
			httputil.WriteValidationError(w, err)
			return
		}
		input.RuleSet = &domain.RuleSet{
			RowRules:            toDomainRowRules(req.RowRules),
			ExcludedTypes:       req.ExcludedTypes,
			LowPriorityKeywords: req.LowPriorityKeywords,
		}
	}

	arrangement, err := h.service.BuildArrangement(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: arrangement})
}

// LatestArrangement handles GET /api/v1/arrangements/latest
func (h *ShowcaseHandler) LatestArrangement(w http.ResponseWriter, r *http.Request) {
	rulesetID := r.URL.Query().Get("ruleset_id")

	arrangement, err := h.service.LatestArrangement(r.Context(), rulesetID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: arrangement})
}
