package handler

import (
	"people-monitor-go/internal/transport/httpserver/handler/common"
	"people-monitor-go/internal/transport/httpserver/handler/events"
)

type Handlers struct {
	Common *common.Handlers
	Events *events.Handlers
}

func New(commonHandlers *common.Handlers, eventHandlers *events.Handlers) *Handlers {
	return &Handlers{
		Common: commonHandlers,
		Events: eventHandlers,
	}
}
