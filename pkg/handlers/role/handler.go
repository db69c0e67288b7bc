package role

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/aws-profile-manager/pkg/handlers/respond"
	"github.com/de-tools/aws-profile-manager/pkg/models/api"
	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/de-tools/aws-profile-manager/pkg/services/role"
)

// Assumer is the slice of the role service the handler uses.
type Assumer interface {
	AssumeRole(ctx context.Context, spec domain.RoleSpec, sessionName, profileName string) (*role.AssumedCredentials, error)
	RemoveAssumedProfile(ctx context.Context, profileName string) error
	CleanExpired(ctx context.Context) (int, error)
}

type Handler struct {
	assumer Assumer
}

func NewHandler(assumer Assumer) *Handler {
	return &Handler{assumer: assumer}
}

func (h *Handler) AssumeRole(w http.ResponseWriter, r *http.Request) {
	var req api.AssumeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	creds, err := h.assumer.AssumeRole(r.Context(), domain.RoleSpec{
		RoleARN:         req.RoleARN,
		ExternalID:      req.ExternalID,
		DurationSeconds: req.DurationSeconds,
	}, req.SessionName, req.ProfileName)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, api.AssumedCredentials{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		Expiration:      creds.Expiration.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) RemoveAssumedProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.assumer.RemoveAssumedProfile(r.Context(), name); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, r, "removed assumed profile "+name)
}

func (h *Handler) CleanExpired(w http.ResponseWriter, r *http.Request) {
	removed, err := h.assumer.CleanExpired(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]int{"removed": removed})
}
