package stats

import (
	"github.com/gin-gonic/gin"
)

// trackedPages maps request paths to the page keys stored in site_stats
var trackedPages = map[string]string{
	"/":       "home",
	"/admin":  "admin",
	"/verify": "verify",
}

// TrackVisits records a visit for the site pages worth counting. API calls
// and static assets pass through untouched.
func TrackVisits(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if page, ok := trackedPages[c.Request.URL.Path]; ok && c.Request.Method == "GET" {
			service.TrackVisit(c.Request.Context(), page, c.Request.UserAgent())
		}
		c.Next()
	}
}
