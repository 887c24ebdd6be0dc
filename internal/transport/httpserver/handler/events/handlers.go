package events

import (
	eventdomain "people-monitor-go/internal/domain/event"
	"people-monitor-go/internal/domain/importer"
	"people-monitor-go/internal/domain/stats"
	"people-monitor-go/pkg/logger"
)

const defaultMaxUploadBytes = 10 << 20

type Handlers struct {
	Events         *eventdomain.Service
	Importer       *importer.Service
	Stats          *stats.Service
	maxUploadBytes int64
	log            logger.Logger
}

func New(events *eventdomain.Service, imports *importer.Service, statistics *stats.Service, maxUploadBytes int64, log logger.Logger) *Handlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handlers{
		Events:         events,
		Importer:       imports,
		Stats:          statistics,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}
