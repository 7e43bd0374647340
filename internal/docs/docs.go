// Package docs serves the OpenAPI description of the product API and a
// Swagger UI page rendering it.
package docs

import (
	_ "embed"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

const pageTitle = "REST API Documentation about Product"

// Load parses the embedded OpenAPI document.
func Load() (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	return doc, nil
}

// RegisterRoutes mounts GET /docs (Swagger UI) and GET /docs/openapi.json.
func RegisterRoutes(router fiber.Router) error {
	doc, err := Load()
	if err != nil {
		return err
	}

	docsRoutes := router.Group("/docs")
	docsRoutes.Get("/openapi.json", func(c *fiber.Ctx) error {
		return c.JSON(doc)
	})
	docsRoutes.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(swaggerPage(c.BaseURL() + "/docs/openapi.json"))
	})
	return nil
}

func swaggerPage(specURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  <style>.swagger-ui .topbar { background-color: #fff; }</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({ url: %q, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>`, pageTitle, specURL)
}
