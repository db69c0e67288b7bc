package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/aws-profile-manager/pkg/adapters"
	"github.com/de-tools/aws-profile-manager/pkg/handlers/respond"
	"github.com/de-tools/aws-profile-manager/pkg/models/api"
	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/de-tools/aws-profile-manager/pkg/services/manager"
)

type Handler struct {
	manager manager.Manager
}

func NewHandler(mgr manager.Manager) *Handler {
	return &Handler{manager: mgr}
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	snapshot := h.manager.GetStatus(r.Context())
	respond.JSON(w, r, http.StatusOK, adapters.MapStatusDomainToApi(snapshot))
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.manager.ListProfiles(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapProfilesDomainToApi(profiles))
}

func (h *Handler) CreateCredentialsProfile(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCredentialsProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.manager.CreateCredentialsProfile(r.Context(), req.Name, domain.Credentials{
		AccessKeyID:     req.AccessKeyID,
		SecretAccessKey: req.SecretAccessKey,
		SessionToken:    req.SessionToken,
	}, req.Region)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, adapters.MapProfileDomainToApi(*created))
}

func (h *Handler) CreateRoleProfile(w http.ResponseWriter, r *http.Request) {
	var req api.CreateRoleProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.manager.CreateRoleProfile(r.Context(), req.Name, domain.RoleSpec{
		RoleARN:         req.RoleARN,
		SourceProfile:   req.SourceProfile,
		Region:          req.Region,
		ExternalID:      req.ExternalID,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, adapters.MapProfileDomainToApi(*created))
}

func (h *Handler) SwitchProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.manager.SwitchProfile(r.Context(), name); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, api.Result{Status: "ok", Message: "switched to profile " + name})
}

func (h *Handler) RemoveProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.manager.RemoveProfile(r.Context(), name); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, api.Result{Status: "ok", Message: "removed profile " + name})
}

func (h *Handler) UpdateCredentials(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	err := h.manager.UpdateCredentials(r.Context(), req.Name, domain.Credentials{
		AccessKeyID:     req.AccessKeyID,
		SecretAccessKey: req.SecretAccessKey,
		SessionToken:    req.SessionToken,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, api.Result{Status: "ok", Message: "credentials updated"})
}

func (h *Handler) ListEnvironments(w http.ResponseWriter, r *http.Request) {
	envs, err := h.manager.ListEnvironments(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapEnvironmentsDomainToApi(envs))
}

func (h *Handler) SyncEnvironment(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.manager.SyncCredentials(r.Context(), name); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, api.Result{Status: "ok", Message: "synced environment " + name})
}

func (h *Handler) ForceRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.ForceRefresh(r.Context()); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, api.Result{Status: "ok", Message: "credentials refreshed"})
}

func (h *Handler) CleanConfig(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.CleanConfig(r.Context()); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, api.Result{Status: "ok", Message: "config cleaned"})
}

func (h *Handler) ForceCleanReset(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.ForceCleanReset(r.Context()); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, api.Result{Status: "ok", Message: "config reset from base file"})
}

