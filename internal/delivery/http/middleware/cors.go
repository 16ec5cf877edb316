package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - разрешённые источники берутся из CORS_ALLOW_ORIGINS.
// Для "*" credentials отключаются: fiber не допускает такую комбинацию.
func CORS(allowOrigins string) fiber.Handler {
	origins := strings.TrimSpace(allowOrigins)
	if origins == "" {
		origins = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Authorization," + RequestIDHeader,
		ExposeHeaders:    RequestIDHeader,
		AllowCredentials: origins != "*",
	})
}
