package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/dtos"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/services"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

var paymentValidate = validator.New()

type PaymentController struct {
	paymentService *services.PaymentService
}

func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

func (c *PaymentController) List(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	payments, err := c.paymentService.List(r.Context(), actor)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payments)
}

func (c *PaymentController) Get(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payment, err := c.paymentService.Get(r.Context(), actor, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

// CreateLeaseIntent starts the move-in charge (rent + deposit) for an
// approved lease awaiting payment.
func (c *PaymentController) CreateLeaseIntent(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	leaseID, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := c.paymentService.CreateLeaseIntent(r.Context(), actor, leaseID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *PaymentController) ConfirmLeasePayment(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	leaseID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := paymentValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	payment, err := c.paymentService.ConfirmLeasePayment(r.Context(), actor, leaseID, req.IntentID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

func (c *PaymentController) CreateRentIntent(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	resp, err := c.paymentService.CreateRentIntent(r.Context(), actor)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *PaymentController) ConfirmRentPayment(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	var req dtos.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := paymentValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	payment, err := c.paymentService.ConfirmRentPayment(r.Context(), actor, req.IntentID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

// CreateManual records an offline payment (cash, check) entered by a
// landlord or admin.
func (c *PaymentController) CreateManual(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	var req dtos.CreateManualPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := paymentValidate.StructCtx(r.Context(), req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	payment, err := c.paymentService.CreateManual(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, payment)
}
