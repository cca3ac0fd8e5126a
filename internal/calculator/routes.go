package calculator

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the metadata and calculation endpoints. The trailing
// slash on /calculate/ is optional.
func RegisterRoutes(r chi.Router, d *Dispatcher) {
	r.Get("/", d.Metadata)

	calculate := d.ErrorHandler(d.Calculate)
	r.Method(http.MethodPost, "/calculate", calculate)
	r.Method(http.MethodPost, "/calculate/", calculate)
}
