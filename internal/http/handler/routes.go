package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docregistry/internal/service"
)

// Deps are the collaborators the routes need. Health and Metrics may be nil: a nil Health
// makes /health report healthy unconditionally and a nil Metrics leaves /metrics unrouted.
type Deps struct {
	Documents service.DocumentService
	Health    Pinger
	Metrics   prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.Health))
	app.Get("/healthz", LivenessProbe())

	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	docs := app.Group("/documents")
	docs.Get("/", ListDocuments(d.Documents))
	docs.Post("/", RegisterDocument(d.Documents))
	docs.Get("/:id", GetDocument(d.Documents))
	docs.Patch("/:id", UpdateDocument(d.Documents))
	docs.Delete("/:id", DeleteDocument(d.Documents))
	docs.Get("/:id/attachments/:index/link", AttachmentLink(d.Documents))

	app.Get("/numbers/next", NextNumber(d.Documents))
	app.Get("/catalogs", ListCatalogs(d.Documents))
}
