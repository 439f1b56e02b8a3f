package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopapi/internal/http/middleware"
	"shopapi/internal/service"
)

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a bare liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the services.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	catalogSvc service.CatalogService,
	orderSvc service.OrderService,
	paymentSvc service.PaymentService,
	reviewSvc service.ReviewService,
	adminAPIKey string,
) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/products", ListProducts(catalogSvc))
	api.Get("/products/:id", GetProduct(catalogSvc))
	api.Post("/orders", CreateOrder(orderSvc))
	api.Get("/orders/:id", GetOrder(orderSvc))
	api.Post("/orders/:id/payment-proof", UploadPaymentProof(paymentSvc))

	admin := app.Group("/admin", middleware.AdminKey(adminAPIKey))
	admin.Get("/orders", ListAdminOrders(reviewSvc))
	admin.Post("/orders/:id/review", ReviewOrder(reviewSvc))
	admin.Get("/orders/:id/payment-proof", GetPaymentProofURL(paymentSvc))
	admin.Post("/products", CreateProduct(catalogSvc))
	admin.Delete("/products/:id", DeactivateProduct(catalogSvc))
}
