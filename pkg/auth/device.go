package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

const DeviceIDKey = "device_id"

// DeviceAuth validates "Authorization: Device <device_id>:<token>" headers.
// The token is a shared install secret baked into the mobile client; in
// debug mode any non-empty device id is accepted.
type DeviceAuth struct {
	appSecret string
	debugMode bool
}

func NewDeviceAuth(appSecret string, debugMode bool) *DeviceAuth {
	return &DeviceAuth{
		appSecret: appSecret,
		debugMode: debugMode,
	}
}

func (d *DeviceAuth) DeviceAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Device ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		deviceID, token, err := ParseDeviceCredentials(strings.TrimPrefix(authHeader, "Device "))
		if err != nil {
			log.Info("malformed device credentials", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid device credentials"})
			return
		}

		if !d.debugMode {
			if subtle.ConstantTimeCompare([]byte(token), []byte(d.appSecret)) != 1 {
				log.Info("invalid device token", zap.String("device_id", deviceID))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid device token"})
				return
			}
		}

		c.Set(DeviceIDKey, deviceID)
		c.Next()
	}
}

func ParseDeviceCredentials(credentials string) (deviceID, token string, err error) {
	parts := strings.SplitN(credentials, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", ErrMalformedCredentials
	}
	return parts[0], parts[1], nil
}

// DeviceID reads the authenticated device id set by the middleware.
func DeviceID(c *gin.Context) (string, bool) {
	v, exists := c.Get(DeviceIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
