// Package respond writes JSON responses and translates domain errors into
// HTTP status codes for all handler packages.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/aws-profile-manager/pkg/models/api"
	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
)

func JSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func OK(w http.ResponseWriter, r *http.Request, message string) {
	JSON(w, r, http.StatusOK, api.Result{Status: "ok", Message: message})
}

func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrSourceFileMissing):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateName), errors.Is(err, domain.ErrCannotRemoveActive):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownSourceProfile):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrParse):
		status = http.StatusUnprocessableEntity
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")

	JSON(w, r, status, api.Result{Status: "error", Message: err.Error()})
}
