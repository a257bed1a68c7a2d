// Package contact provides the public contact/booking module: the
// submission endpoint that notifies sales, plus the read-only slot and
// calendar data the booking form renders.
package contact

import (
	"drishti_backend/internal/booking"
	"drishti_backend/internal/contact/handler"
	"drishti_backend/internal/contact/service"
	"drishti_backend/internal/email"
	apphttp "drishti_backend/internal/http"
	"drishti_backend/platform/config"
	"drishti_backend/platform/logger"
	"drishti_backend/platform/validator"
)

// Module is the contact bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the contact service and its handler.
func NewModule(cfg config.ContactConfig, val *validator.Validator, schema *booking.Schema, sender email.Sender, log *logger.Logger, opts ...service.Option) (*Module, error) {
	svc, err := service.New(cfg, schema, sender, log, opts...)
	if err != nil {
		return nil, err
	}

	return &Module{
		handler: handler.New(svc, val),
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "contact"
}

// RegisterRoutes mounts the public contact routes under /api.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
