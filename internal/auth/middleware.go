package auth

import (
	"fmt"
	"strings"

	"naturtim-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey      = "user_id"
	CtxUserLoginKey   = "user_login"
	CtxUserNameKey    = "user_name"
	CtxPermissionsKey = "permissions"

	AuthCookieName = "auth_token"
)

// JWTMiddleware przyjmuje token z nagłówka "Authorization: Bearer ..."
// albo z ciasteczka auth_token (frontend używa ciasteczka).
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := ""

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return fiber.NewError(fiber.StatusUnauthorized, "Nagłówek Authorization musi mieć format 'Bearer <token>'")
			}
			tokenStr = parts[1]
		} else {
			tokenStr = c.Cookies(AuthCookieName)
		}

		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Musisz być zalogowany")
		}

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("nieprawidłowa metoda podpisu")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Nieprawidłowy lub wygasły token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Nie można odczytać tokenu")
		}

		userName := strings.TrimSpace(claims.Username + " " + claims.UserSurname)
		if userName == "" {
			userName = claims.Login
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserLoginKey, claims.Login)
		c.Locals(CtxUserNameKey, userName)
		c.Locals(CtxPermissionsKey, claims.Permissions)

		return c.Next()
	}
}

// RequirePermission zastępuje dawne "hasło potwierdzające" z frontendu:
// operacja przechodzi tylko, gdy użytkownik ma któreś z wymaganych uprawnień.
func RequirePermission(required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		permsVal := c.Locals(CtxPermissionsKey)
		perms, ok := permsVal.([]string)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Nie można odczytać uprawnień")
		}

		for _, need := range required {
			for _, have := range perms {
				if need == have {
					return c.Next()
				}
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Brak uprawnień do tej operacji")
	}
}
