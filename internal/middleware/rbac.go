package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
	"github.com/noah-isme/exam-timetable-api/pkg/response"
)

// SelfMatcher reports whether the request targets the caller's own record.
type SelfMatcher func(c *gin.Context, claims *models.JWTClaims) bool

// OwnStudent matches when the :id path parameter is the caller's student id.
func OwnStudent(c *gin.Context, claims *models.JWTClaims) bool {
	return claims.StudentID != nil && *claims.StudentID == c.Param("id")
}

// OwnProfessor matches when the :id path parameter is the caller's professor id.
func OwnProfessor(c *gin.Context, claims *models.JWTClaims) bool {
	return claims.ProfessorID != nil && *claims.ProfessorID == c.Param("id")
}

// RequireRoles admits callers holding one of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return RequireRolesOrSelf(nil, roles...)
}

// RequireRolesOrSelf admits callers holding one of roles, or any caller for whom self matches.
func RequireRolesOrSelf(self SelfMatcher, roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; ok {
			c.Next()
			return
		}
		if self != nil && self(c, claims) {
			c.Next()
			return
		}
		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
