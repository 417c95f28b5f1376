package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Logger request logging middleware
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", latency),
			zap.String("request_id", c.GetString("request_id")),
		}

		if userID, exists := c.Get("user_id"); exists {
			fields = append(fields, zap.String("user_id", userID.(string)))
		}
		if vendorID := c.GetString("vendor_id"); vendorID != "" {
			fields = append(fields, zap.String("vendor_id", vendorID))
		}

		if status >= 500 {
			logger.Error("Server error", fields...)
		} else if status >= 400 {
			logger.Warn("Client error", fields...)
		} else {
			logger.Info("Request", fields...)
		}
	}
}

// CORS cross-origin middleware
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestID request ID middleware
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// RequestMetrics prometheus request metrics middleware
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// JWTClaims JWT claims carried by every authenticated request.
// Manager/Vendor flags plus the vendor ID let stage handlers authorize
// without a second user lookup.
type JWTClaims struct {
	UserID   string `json:"uid"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Manager  bool   `json:"manager"`
	Vendor   bool   `json:"vendor"`
	VendorID string `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth JWT auth middleware. Token-expired and malformed-token are
// distinct 401 conditions; any other verification failure is a 403.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40100,
				"message": "Authorization is required",
			})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})

		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{
					"code":    40101,
					"message": "Token expired",
				})
			case errors.Is(err, jwt.ErrTokenMalformed):
				c.JSON(http.StatusUnauthorized, gin.H{
					"code":    40102,
					"message": "Malformed token",
				})
			default:
				c.JSON(http.StatusForbidden, gin.H{
					"code":    40300,
					"message": "Token verification failed",
				})
			}
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
			c.Set("user_id", claims.UserID)
			c.Set("user_name", claims.Name)
			c.Set("user_email", claims.Email)
			c.Set("is_manager", claims.Manager)
			c.Set("is_vendor", claims.Vendor)
			c.Set("vendor_id", claims.VendorID)
			c.Set("claims", claims)
			c.Next()
		} else {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    40301,
				"message": "Invalid token claims",
			})
			c.Abort()
		}
	}
}

// RequireManager restricts a route to purchase-manager callers.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_manager") {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    40310,
				"message": "Purchase manager role required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireVendor restricts a route to vendor callers with a vendor identity.
func RequireVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_vendor") || c.GetString("vendor_id") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40110,
				"message": "Vendor identity required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
