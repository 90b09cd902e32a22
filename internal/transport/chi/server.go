package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/formsearch/internal/domain"
	"github.com/kailas-cloud/formsearch/internal/domain/form"
	"github.com/kailas-cloud/formsearch/internal/domain/search/request"
	"github.com/kailas-cloud/formsearch/internal/metrics"
	cataloguc "github.com/kailas-cloud/formsearch/internal/usecase/catalog"
	"github.com/kailas-cloud/formsearch/internal/usecase/eligibility"
	healthuc "github.com/kailas-cloud/formsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/formsearch/internal/usecase/search"
)

const maxBodyBytes = 8 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the forms catalog API.
type Server struct {
	catalog       *cataloguc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog: catalog,
		search:  search,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		duplicateCodeHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeFormNotFound),
		sentinelHandler(domain.ErrInvalidForm, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, ErrorResponseCodeCatalogUnavailable),
	}
	return s
}

// Mount registers the API routes on r.
func (s *Server) Mount(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/forms", func(r gochi.Router) {
		r.Get("/", s.ListForms)
		r.Put("/", s.ReplaceForms)
		r.Get("/search", s.SearchForms)
		r.Get("/{code}", s.GetForm)
		r.Put("/{code}", s.UpsertForm)
		r.Delete("/{code}", s.DeleteForm)
	})
}

// SearchForms handles GET /forms/search.
func (s *Server) SearchForms(w http.ResponseWriter, r *http.Request) {
	var params SearchFormsParams
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", query, &params.Q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter q: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter limit: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "account_type", query, &params.AccountType); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest,
			"Invalid format for parameter account_type: "+err.Error())
		return
	}

	// Absent limit selects the default; an explicit one must be positive.
	if params.Limit != nil && *params.Limit <= 0 {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "limit must be a positive integer")
		return
	}

	req := request.New(derefString(params.Q), derefInt(params.Limit)).
		WithAccountType(derefString(params.AccountType))
	res := s.search.Search(r.Context(), req)
	metrics.SetSearchMode(r.Context(), string(res.Mode()))

	writeJSON(w, http.StatusOK, SearchResponse{
		Items:        searchItemsToAPI(eligibility.Annotate(res.Items(), req.AccountType())),
		TotalMatches: res.TotalMatches(),
		Limited:      res.Limited(),
		Mode:         string(res.Mode()),
	})
}

// ListForms handles GET /forms.
func (s *Server) ListForms(w http.ResponseWriter, _ *http.Request) {
	forms := s.catalog.List()
	writeJSON(w, http.StatusOK, FormListResponse{Items: formsToAPI(forms), Total: len(forms)})
}

// GetForm handles GET /forms/{code}.
func (s *Server) GetForm(w http.ResponseWriter, r *http.Request) {
	code, ok := bindCode(w, r)
	if !ok {
		return
	}
	f, err := s.catalog.Get(code)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, formToAPI(f))
}

// ReplaceForms handles PUT /forms.
func (s *Server) ReplaceForms(w http.ResponseWriter, r *http.Request) {
	var req ReplaceFormsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	attrs := make([]form.Attrs, len(req.Forms))
	for i, f := range req.Forms {
		attrs[i] = f.attrs()
	}
	if err := s.catalog.Replace(r.Context(), attrs); err != nil {
		s.handleDomainError(w, err)
		return
	}

	forms := s.catalog.List()
	writeJSON(w, http.StatusOK, FormListResponse{Items: formsToAPI(forms), Total: len(forms)})
}

// UpsertForm handles PUT /forms/{code}.
func (s *Server) UpsertForm(w http.ResponseWriter, r *http.Request) {
	code, ok := bindCode(w, r)
	if !ok {
		return
	}
	var req Form
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Code != "" && !strings.EqualFold(strings.TrimSpace(req.Code), code) {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "body code does not match path")
		return
	}
	req.Code = code

	f, created, err := s.catalog.Upsert(r.Context(), req.attrs())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, formToAPI(f))
}

// DeleteForm handles DELETE /forms/{code}.
func (s *Server) DeleteForm(w http.ResponseWriter, r *http.Request) {
	code, ok := bindCode(w, r)
	if !ok {
		return
	}
	if err := s.catalog.Delete(r.Context(), code); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
		Forms:  report.Forms,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func bindCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	var code string
	err := runtime.BindStyledParameterWithLocation("simple", false, "code",
		runtime.ParamLocationPath, gochi.URLParam(r, "code"), &code)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter code: "+err.Error())
		return "", false
	}
	return code, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message. Validation errors carry the
// offending input; everything else is reduced to its sentinel text.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidForm) || errors.Is(err, domain.ErrDuplicateCode) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrCatalogUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// duplicateCodeHandler handles ErrDuplicateCode with the offending form code.
func duplicateCodeHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrDuplicateCode) {
		return false
	}
	var dce *domain.DuplicateCodeError
	if errors.As(err, &dce) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"code":      ErrorResponseCodeDuplicateCode,
			"message":   msg,
			"form_code": dce.Code,
		})
		return true
	}
	writeError(w, http.StatusConflict, ErrorResponseCodeDuplicateCode, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
