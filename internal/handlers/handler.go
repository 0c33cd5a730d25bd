// Package handlers exposes the service over JSON REST endpoints.
package handlers

import (
	"time"

	"grcwalk/internal/service"
)

type Handler struct {
	svc *service.Service
	now func() time.Time
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}
