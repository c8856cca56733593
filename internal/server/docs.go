package server

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed openapi.json
var openAPISpec []byte

const docsPage = `<!DOCTYPE html>
<html>
<head>
<title>User Note Service - Swagger UI</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: "/openapi.json", dom_id: "#swagger-ui"});
</script>
</body>
</html>`

func (s *FiberServer) docsRedirect(c *fiber.Ctx) error {
	return c.Redirect("/docs", fiber.StatusTemporaryRedirect)
}

func (s *FiberServer) docsHandler(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(docsPage)
}

func (s *FiberServer) openAPIHandler(c *fiber.Ctx) error {
	c.Type("json")
	return c.Send(openAPISpec)
}
