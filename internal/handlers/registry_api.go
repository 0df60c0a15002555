package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kartik7022/FlowEngine/internal/apperrors"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/middleware"
	"github.com/kartik7022/FlowEngine/internal/models"
	"github.com/kartik7022/FlowEngine/internal/services"
)

// RegistryAPIHandler exposes the registry REST surface
type RegistryAPIHandler struct {
	logger    *logger.Logger
	tenantSvc services.TenantService
	intentSvc services.IntentService
	policySvc services.IntentPolicyService
	dsSvc     services.DatasourceService
	configSvc services.DatasourceConfigService
	ruleSvc   services.ValidationRuleService

	requestCounter *prometheus.CounterVec
}

// NewRegistryAPIHandler creates a new registry API handler
func NewRegistryAPIHandler(
	logger *logger.Logger,
	tenantSvc services.TenantService,
	intentSvc services.IntentService,
	policySvc services.IntentPolicyService,
	dsSvc services.DatasourceService,
	configSvc services.DatasourceConfigService,
	ruleSvc services.ValidationRuleService,
) *RegistryAPIHandler {
	// Create a new registry for tests to avoid conflicts
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &RegistryAPIHandler{
		logger:    logger,
		tenantSvc: tenantSvc,
		intentSvc: intentSvc,
		policySvc: policySvc,
		dsSvc:     dsSvc,
		configSvc: configSvc,
		ruleSvc:   ruleSvc,
		requestCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_api_requests_total",
			Help: "Total number of registry API requests",
		}, []string{"method", "resource"}),
	}
}

// RegisterRoutes registers all registry API routes under /api/v1
func (h *RegistryAPIHandler) RegisterRoutes(router *mux.Router) {
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.Use(h.usageMiddleware)

	// Tenant registry routes are not tenant-scoped
	v1.HandleFunc("/tenants", h.GetTenants).Methods("GET")
	v1.HandleFunc("/tenants", h.CreateTenant).Methods("POST")
	v1.HandleFunc("/tenants/validate/{tenantId}", h.ValidateTenant).Methods("GET")
	v1.HandleFunc("/tenants/{tenantId}", h.GetTenant).Methods("GET")
	v1.HandleFunc("/tenants/{tenantId}", h.UpdateTenant).Methods("PUT")
	v1.HandleFunc("/tenants/{tenantId}", h.DeleteTenant).Methods("DELETE")

	scoped := v1.PathPrefix("/").Subrouter()
	scoped.Use(middleware.TenantMiddleware)

	// Intents. Literal policy paths are registered before the numeric
	// intent id pattern so mux never swallows them.
	scoped.HandleFunc("/intents", h.GetIntents).Methods("GET")
	scoped.HandleFunc("/intents", h.CreateIntent).Methods("POST")
	scoped.HandleFunc("/intents/policies/all", h.GetPoliciesWithIntent).Methods("GET")
	scoped.HandleFunc("/intents/policies", h.GetPolicies).Methods("GET")
	scoped.HandleFunc("/intents/{intentId:[0-9]+}", h.GetIntent).Methods("GET")
	scoped.HandleFunc("/intents/{intentId:[0-9]+}", h.UpdateIntent).Methods("PUT")
	scoped.HandleFunc("/intents/{intentId:[0-9]+}", h.DeleteIntent).Methods("DELETE")
	scoped.HandleFunc("/intents/{intentId:[0-9]+}/policies", h.GetPoliciesForIntent).Methods("GET")
	scoped.HandleFunc("/intents/{intentId:[0-9]+}/policies", h.CreatePolicy).Methods("POST")
	scoped.HandleFunc("/intents/{intentId:[0-9]+}/policies/{languageCode}", h.GetPolicy).Methods("GET")
	scoped.HandleFunc("/intents/{intentId:[0-9]+}/policies/{languageCode}", h.UpdatePolicy).Methods("PUT")
	scoped.HandleFunc("/intents/{intentId:[0-9]+}/policies/{languageCode}", h.DeletePolicy).Methods("DELETE")

	// Datasources
	scoped.HandleFunc("/datasources", h.GetDatasources).Methods("GET")
	scoped.HandleFunc("/datasources", h.CreateDatasource).Methods("POST")
	scoped.HandleFunc("/datasources/{datasourceId:[0-9]+}", h.GetDatasource).Methods("GET")
	scoped.HandleFunc("/datasources/{datasourceId:[0-9]+}", h.UpdateDatasource).Methods("PUT")
	scoped.HandleFunc("/datasources/{datasourceId:[0-9]+}", h.DeleteDatasource).Methods("DELETE")

	// Datasource configs
	scoped.HandleFunc("/datasource-configs", h.GetConfigs).Methods("GET")
	scoped.HandleFunc("/datasource-configs", h.CreateConfig).Methods("POST")
	scoped.HandleFunc("/datasource-configs/by-name/{name}", h.GetConfigByName).Methods("GET")
	scoped.HandleFunc("/datasource-configs/driver/{driverFamily}", h.GetConfigsByDriverFamily).Methods("GET")
	scoped.HandleFunc("/datasource-configs/protocol/{protocol}", h.GetConfigsByProtocol).Methods("GET")
	scoped.HandleFunc("/datasource-configs/{configId:[0-9]+}", h.GetConfig).Methods("GET")
	scoped.HandleFunc("/datasource-configs/{configId:[0-9]+}", h.UpdateConfig).Methods("PUT")
	scoped.HandleFunc("/datasource-configs/{configId:[0-9]+}", h.DeleteConfig).Methods("DELETE")
	scoped.HandleFunc("/datasource-configs/{configId:[0-9]+}/test", h.TestConnection).Methods("POST")

	// Validation rules
	scoped.HandleFunc("/validation-rules", h.GetRules).Methods("GET")
	scoped.HandleFunc("/validation-rules", h.CreateRule).Methods("POST")
	scoped.HandleFunc("/validation-rules/next-order/{intentId:[0-9]+}", h.GetNextExecutionOrder).Methods("GET")
	scoped.HandleFunc("/validation-rules/intent/{intentId:[0-9]+}/language/{languageCode}", h.GetRulesForIntent).Methods("GET")
	scoped.HandleFunc("/validation-rules/{ruleId:[0-9]+}", h.GetRule).Methods("GET")
	scoped.HandleFunc("/validation-rules/{ruleId:[0-9]+}", h.UpdateRule).Methods("PUT")
	scoped.HandleFunc("/validation-rules/{ruleId:[0-9]+}", h.DeleteRule).Methods("DELETE")
}

// usageMiddleware counts requests per method and matched resource
func (h *RegistryAPIHandler) usageMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resource := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				resource = tmpl
			}
		}
		h.requestCounter.WithLabelValues(r.Method, resource).Inc()
		next.ServeHTTP(w, r)
	})
}

// Tenant handlers

func (h *RegistryAPIHandler) GetTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenantSvc.GetTenants(r.Context(), activeOnlyParam(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, tenants)
}

func (h *RegistryAPIHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.tenantSvc.GetTenant(r.Context(), mux.Vars(r)["tenantId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, tenant)
}

func (h *RegistryAPIHandler) ValidateTenant(w http.ResponseWriter, r *http.Request) {
	result, err := h.tenantSvc.ValidateTenant(r.Context(), mux.Vars(r)["tenantId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *RegistryAPIHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var payload models.TenantCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tenant, err := h.tenantSvc.CreateTenant(r.Context(), &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, tenant)
}

func (h *RegistryAPIHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var payload models.TenantUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tenant, err := h.tenantSvc.UpdateTenant(r.Context(), mux.Vars(r)["tenantId"], &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, tenant)
}

func (h *RegistryAPIHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]
	if err := h.tenantSvc.DeleteTenant(r.Context(), tenantID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, models.SuccessResponse{
		Message: fmt.Sprintf("tenant '%s' deleted", tenantID),
	})
}

// Intent handlers

func (h *RegistryAPIHandler) GetIntents(w http.ResponseWriter, r *http.Request) {
	intents, err := h.intentSvc.GetIntents(r.Context(), h.tenant(r), activeOnlyParam(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, intents)
}

func (h *RegistryAPIHandler) GetIntent(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}

	intent, err := h.intentSvc.GetIntent(r.Context(), h.tenant(r), intentID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, intent)
}

func (h *RegistryAPIHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var payload models.IntentCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	intent, err := h.intentSvc.CreateIntent(r.Context(), h.tenant(r), &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, intent)
}

func (h *RegistryAPIHandler) UpdateIntent(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}

	var payload models.IntentUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	intent, err := h.intentSvc.UpdateIntent(r.Context(), h.tenant(r), intentID, &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, intent)
}

func (h *RegistryAPIHandler) DeleteIntent(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}

	if err := h.intentSvc.DeleteIntent(r.Context(), h.tenant(r), intentID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, models.SuccessResponse{
		Message: fmt.Sprintf("intent %d deleted", intentID),
	})
}

// Intent policy handlers

func (h *RegistryAPIHandler) GetPoliciesWithIntent(w http.ResponseWriter, r *http.Request) {
	policies, err := h.policySvc.GetPoliciesWithIntent(r.Context(), h.tenant(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, policies)
}

func (h *RegistryAPIHandler) GetPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.policySvc.GetPolicies(r.Context(), h.tenant(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, policies)
}

func (h *RegistryAPIHandler) GetPoliciesForIntent(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}

	policies, err := h.policySvc.GetPoliciesForIntent(r.Context(), h.tenant(r), intentID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, policies)
}

func (h *RegistryAPIHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}

	policy, err := h.policySvc.GetPolicy(r.Context(), h.tenant(r), intentID, mux.Vars(r)["languageCode"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, policy)
}

func (h *RegistryAPIHandler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}

	var payload models.IntentPolicyCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	policy, err := h.policySvc.CreatePolicy(r.Context(), h.tenant(r), intentID, &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, policy)
}

func (h *RegistryAPIHandler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}

	var payload models.IntentPolicyUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	policy, err := h.policySvc.UpdatePolicy(r.Context(), h.tenant(r), intentID, mux.Vars(r)["languageCode"], &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, policy)
}

func (h *RegistryAPIHandler) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}
	languageCode := mux.Vars(r)["languageCode"]

	if err := h.policySvc.DeletePolicy(r.Context(), h.tenant(r), intentID, languageCode); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, models.SuccessResponse{
		Message: fmt.Sprintf("policy for intent %d language '%s' deleted", intentID, languageCode),
	})
}

// Datasource handlers

func (h *RegistryAPIHandler) GetDatasources(w http.ResponseWriter, r *http.Request) {
	datasources, err := h.dsSvc.GetDatasources(r.Context(), h.tenant(r), activeOnlyParam(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, datasources)
}

func (h *RegistryAPIHandler) GetDatasource(w http.ResponseWriter, r *http.Request) {
	datasourceID, err := pathInt(r, "datasourceId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid datasource id", err)
		return
	}

	datasource, err := h.dsSvc.GetDatasource(r.Context(), h.tenant(r), datasourceID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, datasource)
}

func (h *RegistryAPIHandler) CreateDatasource(w http.ResponseWriter, r *http.Request) {
	var payload models.DatasourceCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	datasource, err := h.dsSvc.CreateDatasource(r.Context(), h.tenant(r), &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, datasource)
}

func (h *RegistryAPIHandler) UpdateDatasource(w http.ResponseWriter, r *http.Request) {
	datasourceID, err := pathInt(r, "datasourceId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid datasource id", err)
		return
	}

	var payload models.DatasourceUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	datasource, err := h.dsSvc.UpdateDatasource(r.Context(), h.tenant(r), datasourceID, &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, datasource)
}

func (h *RegistryAPIHandler) DeleteDatasource(w http.ResponseWriter, r *http.Request) {
	datasourceID, err := pathInt(r, "datasourceId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid datasource id", err)
		return
	}

	if err := h.dsSvc.DeleteDatasource(r.Context(), h.tenant(r), datasourceID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, models.SuccessResponse{
		Message: fmt.Sprintf("datasource %d deleted", datasourceID),
	})
}

// Datasource config handlers

func (h *RegistryAPIHandler) GetConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.configSvc.GetConfigs(r.Context(), h.tenant(r), activeOnlyParam(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, configs)
}

func (h *RegistryAPIHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	configID, err := pathInt(r, "configId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid config id", err)
		return
	}

	config, err := h.configSvc.GetConfig(r.Context(), h.tenant(r), configID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, config)
}

func (h *RegistryAPIHandler) GetConfigByName(w http.ResponseWriter, r *http.Request) {
	config, err := h.configSvc.GetConfigByName(r.Context(), h.tenant(r), mux.Vars(r)["name"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, config)
}

func (h *RegistryAPIHandler) GetConfigsByDriverFamily(w http.ResponseWriter, r *http.Request) {
	configs, err := h.configSvc.GetConfigsByDriverFamily(r.Context(), h.tenant(r), mux.Vars(r)["driverFamily"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, configs)
}

func (h *RegistryAPIHandler) GetConfigsByProtocol(w http.ResponseWriter, r *http.Request) {
	configs, err := h.configSvc.GetConfigsByProtocol(r.Context(), h.tenant(r), mux.Vars(r)["protocol"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, configs)
}

func (h *RegistryAPIHandler) CreateConfig(w http.ResponseWriter, r *http.Request) {
	var payload models.DatasourceConfigCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	config, err := h.configSvc.CreateConfig(r.Context(), h.tenant(r), &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, config)
}

func (h *RegistryAPIHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	configID, err := pathInt(r, "configId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid config id", err)
		return
	}

	var payload models.DatasourceConfigUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	config, err := h.configSvc.UpdateConfig(r.Context(), h.tenant(r), configID, &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, config)
}

func (h *RegistryAPIHandler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	configID, err := pathInt(r, "configId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid config id", err)
		return
	}

	if err := h.configSvc.DeleteConfig(r.Context(), h.tenant(r), configID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, models.SuccessResponse{
		Message: fmt.Sprintf("datasource config %d deleted", configID),
	})
}

func (h *RegistryAPIHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	configID, err := pathInt(r, "configId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid config id", err)
		return
	}

	result, err := h.configSvc.TestConnection(r.Context(), h.tenant(r), configID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, result)
}

// Validation rule handlers

func (h *RegistryAPIHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	filter := models.ValidationRuleFilter{
		LanguageCode: r.URL.Query().Get("language_code"),
		ActiveOnly:   activeOnlyParam(r),
	}
	if raw := r.URL.Query().Get("intent_id"); raw != "" {
		intentID, err := strconv.Atoi(raw)
		if err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent_id filter", err)
			return
		}
		filter.IntentID = intentID
	}

	rules, err := h.ruleSvc.GetRules(r.Context(), h.tenant(r), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, rules)
}

func (h *RegistryAPIHandler) GetRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := pathInt(r, "ruleId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid rule id", err)
		return
	}

	rule, err := h.ruleSvc.GetRule(r.Context(), h.tenant(r), ruleID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, rule)
}

func (h *RegistryAPIHandler) GetRulesForIntent(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}

	rules, err := h.ruleSvc.GetRulesForIntent(r.Context(), h.tenant(r), intentID, mux.Vars(r)["languageCode"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, rules)
}

func (h *RegistryAPIHandler) GetNextExecutionOrder(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathInt(r, "intentId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid intent id", err)
		return
	}

	result, err := h.ruleSvc.GetNextExecutionOrder(r.Context(), h.tenant(r), intentID, r.URL.Query().Get("language_code"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *RegistryAPIHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var payload models.ValidationRuleCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rule, err := h.ruleSvc.CreateRule(r.Context(), h.tenant(r), &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, rule)
}

func (h *RegistryAPIHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := pathInt(r, "ruleId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid rule id", err)
		return
	}

	var payload models.ValidationRuleUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rule, err := h.ruleSvc.UpdateRule(r.Context(), h.tenant(r), ruleID, &payload)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, rule)
}

func (h *RegistryAPIHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := pathInt(r, "ruleId")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid rule id", err)
		return
	}

	if err := h.ruleSvc.DeleteRule(r.Context(), h.tenant(r), ruleID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, models.SuccessResponse{
		Message: fmt.Sprintf("validation rule %d deleted", ruleID),
	})
}

// Helpers

func (h *RegistryAPIHandler) tenant(r *http.Request) string {
	return middleware.TenantFromContext(r.Context())
}

func activeOnlyParam(r *http.Request) bool {
	active, err := strconv.ParseBool(r.URL.Query().Get("active_only"))
	return err == nil && active
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

func (h *RegistryAPIHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError translates a service error kind into a protocol status
func (h *RegistryAPIHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsNotFound(err):
		h.writeErrorResponse(w, http.StatusNotFound, err.Error(), nil)
	case apperrors.IsAlreadyExists(err), apperrors.IsValidation(err):
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", err)
	}
}

func (h *RegistryAPIHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	response := map[string]interface{}{
		"error":     message,
		"status":    statusCode,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err != nil {
		h.logger.WithError(err).Error(message)
		response["details"] = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
