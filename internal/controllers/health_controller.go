package controllers

import (
	"net/http"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/dtos"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "ok"})
}
