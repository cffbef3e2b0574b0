package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type Mode string

const (
	ModeNone    Mode = "none"
	ModeAPIKey  Mode = "api_key"
	ModeCognito Mode = "cognito"

	ConsoleKeyHeader = "X-Console-Key"
	ConsoleKeyCookie = "console_key"
)

func ParseAuthMode(raw string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	switch mode {
	case "":
		return ModeNone, nil
	case ModeNone, ModeAPIKey, ModeCognito:
		return mode, nil
	default:
		return "", errors.New("invalid auth mode")
	}
}

// AuthMiddleware guards the console itself. It has nothing to do with the
// marketplace session token, which only travels to the backend.
func AuthMiddleware(mode Mode, apiKey string, cognito echo.MiddlewareFunc) (echo.MiddlewareFunc, error) {
	switch mode {
	case ModeNone:
	case ModeAPIKey:
		if apiKey == "" {
			return nil, errors.New("console api key is required when AUTH_MODE=api_key")
		}
	case ModeCognito:
		if cognito == nil {
			return nil, errors.New("cognito middleware is required when AUTH_MODE=cognito")
		}
	default:
		return nil, errors.New("invalid auth mode")
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch mode {
			case ModeAPIKey:
				if !validConsoleKey(c, apiKey) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid console key"})
				}
				return next(c)
			case ModeCognito:
				return cognito(next)(c)
			default:
				return next(c)
			}
		}
	}, nil
}

func validConsoleKey(c echo.Context, expected string) bool {
	provided := c.Request().Header.Get(ConsoleKeyHeader)
	if provided == "" {
		if cookie, err := c.Cookie(ConsoleKeyCookie); err == nil {
			provided = cookie.Value
		}
	}
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}
