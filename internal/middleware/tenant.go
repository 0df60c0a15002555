package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kartik7022/FlowEngine/internal/models"
)

// TenantHeader is the header carrying the tenant identifier
const TenantHeader = "X-Tenant-ID"

type tenantKey struct{}

// TenantMiddleware extracts the tenant identifier from the request header and
// places it in the request context. Requests without the header fail fast
// with 400; the identifier is not authenticated beyond presence.
func TenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get(TenantHeader)
		if tenantID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "missing " + TenantHeader + " header",
			})
			return
		}

		ctx := context.WithValue(r.Context(), tenantKey{}, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantFromContext returns the tenant identifier placed by TenantMiddleware,
// falling back to the default tenant when none is present.
func TenantFromContext(ctx context.Context) string {
	if tenantID, ok := ctx.Value(tenantKey{}).(string); ok && tenantID != "" {
		return tenantID
	}
	return models.DefaultTenantID
}
