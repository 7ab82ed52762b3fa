package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/isp_bookkeeping_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1/"

var routeReplacer = strings.NewReplacer("/", "_", ":", "", ".", "_", "-", "_")

// eventName turns a route template into an analytics event name:
// POST /api/v1/customers/:id/settle -> post_customers_id_settle.
// It returns "" for unmatched routes.
func eventName(method, fullPath string) string {
	route := strings.Trim(strings.TrimPrefix(fullPath, apiPrefix), "/")
	if route == "" {
		return ""
	}
	return strings.ToLower(method) + "_" + routeReplacer.Replace(route)
}

// tracked reports whether a request is worth an analytics event. Reads are
// skipped except document downloads, which operators use as a proxy for billing activity.
func tracked(method, fullPath string) bool {
	if method != http.MethodGet {
		return true
	}
	return strings.HasSuffix(fullPath, ".pdf")
}

// PosthogMiddleware records one event per successful write or document download
// on behalf of the authenticated administrator.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if posthogClient == nil || !posthogClient.IsInitialized() {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if !tracked(c.Request.Method, c.FullPath()) {
			return
		}
		name := eventName(c.Request.Method, c.FullPath())
		if name == "" {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		props := map[string]any{
			"status_code": c.Writer.Status(),
			"path":        c.Request.URL.Path,
		}
		if id := c.Param("id"); id != "" {
			props["resource_id"] = id
		}
		if period := c.Query("period"); period != "" {
			props["period"] = period
		}

		posthogClient.Enqueue(userID, name, props)
	}
}

// PosthogEvent sends a named business event, e.g. a settlement, on behalf of the caller.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, name string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}

	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(userID, name, properties)
}
