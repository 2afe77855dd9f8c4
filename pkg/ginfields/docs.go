package ginfields

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SwaggerUIConfig holds configuration for Swagger UI
type SwaggerUIConfig struct {
	// OpenAPIURL is the URL to the OpenAPI spec JSON
	OpenAPIURL string
	// Title is the HTML page title
	Title string
	// AssetsURL is the base URL of the swagger-ui-dist package
	AssetsURL string
}

// DefaultSwaggerUIConfig returns default Swagger UI configuration
func DefaultSwaggerUIConfig(openAPIURL string) SwaggerUIConfig {
	return SwaggerUIConfig{
		OpenAPIURL: openAPIURL,
		Title:      "API Documentation",
		AssetsURL:  "https://cdn.jsdelivr.net/npm/swagger-ui-dist@5",
	}
}

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8"/>
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="{{.AssetsURL}}/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="{{.AssetsURL}}/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({
    url: {{.OpenAPIURL}},
    dom_id: '#swagger-ui',
    deepLinking: true,
    showExtensions: true,
});
</script>
</body>
</html>`))

// SwaggerUI returns a Gin handler that serves Swagger UI
//
//	router.GET("/openapi.json", api.OpenAPIHandler())
//	router.GET("/docs", ginfields.SwaggerUI("/openapi.json"))
func SwaggerUI(openAPIURL string) gin.HandlerFunc {
	return SwaggerUIWithConfig(DefaultSwaggerUIConfig(openAPIURL))
}

// SwaggerUIWithConfig returns a Gin handler that serves Swagger UI with custom configuration
func SwaggerUIWithConfig(config SwaggerUIConfig) gin.HandlerFunc {
	return servePage(swaggerPage, config)
}

// ReDocConfig holds configuration for ReDoc
type ReDocConfig struct {
	OpenAPIURL string
	Title      string
	// BundleURL is the URL of the standalone ReDoc bundle
	BundleURL string
}

// DefaultReDocConfig returns default ReDoc configuration
func DefaultReDocConfig(openAPIURL string) ReDocConfig {
	return ReDocConfig{
		OpenAPIURL: openAPIURL,
		Title:      "API Documentation",
		BundleURL:  "https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js",
	}
}

var redocPage = template.Must(template.New("redoc").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
<noscript>ReDoc requires Javascript to function.</noscript>
<redoc spec-url="{{.OpenAPIURL}}"></redoc>
<script src="{{.BundleURL}}"></script>
</body>
</html>`))

// ReDoc returns a Gin handler that serves ReDoc, an alternative to Swagger UI
func ReDoc(openAPIURL string) gin.HandlerFunc {
	return ReDocWithConfig(DefaultReDocConfig(openAPIURL))
}

// ReDocWithConfig returns a Gin handler that serves ReDoc with custom configuration
func ReDocWithConfig(config ReDocConfig) gin.HandlerFunc {
	return servePage(redocPage, config)
}

func servePage(page *template.Template, data any) gin.HandlerFunc {
	var buf bytes.Buffer
	err := page.Execute(&buf, data)
	body := buf.Bytes()

	return func(c *gin.Context) {
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	}
}
