package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentSecurityPolicy はダッシュボード用のフォント・スタイル配信元を許可する CSP です。
const ContentSecurityPolicy = "default-src 'self'; font-src 'self' https://fonts.gstatic.com; style-src 'self' 'unsafe-inline' https://fonts.googleapis.com;"

var (
	corsMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}, ", ")
	corsHeaders = "Content-Type, Authorization"
)

// CORS は許可されたオリジンからのリクエストにのみ CORS ヘッダを付与します。
// 許可オリジンからのプリフライトは 204 で応答し、それ以外はそのまま後続へ渡します。
func CORS(origins []string) gin.HandlerFunc {
	allowed := slices.Clone(origins)
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		permitted := origin != "" && slices.Contains(allowed, origin)
		if permitted {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Add("Vary", "Origin")
		}

		if permitted && isPreflight(c.Request) {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

// CSP は Content-Security-Policy ヘッダを付与します。
func CSP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", ContentSecurityPolicy)
		c.Next()
	}
}
