package httpserver

import (
	"net/http"
	"time"

	"people-monitor-go/internal/config"
)

func New(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	readHeaderTimeout := cfg.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 5 * time.Second
	}

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
