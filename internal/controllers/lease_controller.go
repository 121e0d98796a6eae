package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/dtos"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/services"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

var leaseValidate = validator.New()

type LeaseController struct {
	leaseService *services.LeaseService
}

func NewLeaseController(leaseService *services.LeaseService) *LeaseController {
	return &LeaseController{leaseService: leaseService}
}

func (c *LeaseController) List(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	leases, err := c.leaseService.List(r.Context(), actor)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leases)
}

func (c *LeaseController) Get(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	lease, err := c.leaseService.Get(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

func (c *LeaseController) Create(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	var req dtos.CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := leaseValidate.StructCtx(r.Context(), req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", vErrs.Error(), err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	lease, err := c.leaseService.Create(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, lease)
}

func (c *LeaseController) Approve(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.ApproveLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := leaseValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	lease, err := c.leaseService.Approve(r.Context(), actor, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

func (c *LeaseController) Deny(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// The body is optional; a bare POST denies without a reason.
	var req dtos.DenyLeaseRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	lease, err := c.leaseService.Deny(r.Context(), actor, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

func (c *LeaseController) Update(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := leaseValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	lease, err := c.leaseService.Update(r.Context(), actor, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

func (c *LeaseController) Terminate(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	lease, err := c.leaseService.Terminate(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

func (c *LeaseController) Delete(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.leaseService.Delete(r.Context(), actor, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
