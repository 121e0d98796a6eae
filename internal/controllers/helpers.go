package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/middleware"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// requireActor pulls the authenticated actor from the context. Routes
// sit behind the auth middleware, so a nil actor means a wiring bug,
// but the check keeps the handlers safe to reorder.
func requireActor(w http.ResponseWriter, r *http.Request) *models.Actor {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No actor in context", nil, nil)
		return nil
	}
	return actor
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid id in path", nil, err)
		return uuid.Nil, false
	}
	return id, true
}
