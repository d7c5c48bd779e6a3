package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/groomer-scheduler/internal/config"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
)

const (
	ContextAccountID = "accountID"
	ContextRole      = "role"
)

const (
	RoleClient = "client"
	RoleStaff  = "staff"
)

// AuthMiddleware trusts the identity carried by a signed token: "sub" is the
// account id and "role" is client or staff.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// EventSource cannot set headers, so live streams may pass the token as a query param.
		if authHeader == "" {
			if tok := c.Query("access_token"); tok != "" {
				authHeader = "Bearer " + tok
			}
		}
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Sesión requerida.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Sesión inválida.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Sesión inválida.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Sesión inválida.")
			c.Abort()
			return
		}

		accountID, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if accountID == "" || (role != RoleClient && role != RoleStaff) {
			httperr.Unauthorized(c, "invalid_token_payload", "Sesión inválida.")
			c.Abort()
			return
		}

		c.Set(ContextAccountID, accountID)
		c.Set(ContextRole, role)

		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			httperr.Forbidden(c, "forbidden", "No tienes permiso para esta acción.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func AccountID(c *gin.Context) string {
	return c.GetString(ContextAccountID)
}

func Role(c *gin.Context) string {
	return c.GetString(ContextRole)
}

// IssueToken signs an identity token in the format AuthMiddleware accepts.
func IssueToken(secret, accountID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

