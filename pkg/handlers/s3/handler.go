package s3

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/aws-profile-manager/pkg/adapters"
	"github.com/de-tools/aws-profile-manager/pkg/handlers/respond"
	"github.com/de-tools/aws-profile-manager/pkg/models/api"
	s3svc "github.com/de-tools/aws-profile-manager/pkg/services/s3"
)

// Explorer is the slice of the S3 service the handler uses.
type Explorer interface {
	ListBuckets(ctx context.Context) ([]s3svc.Bucket, error)
	ListObjects(ctx context.Context, bucket, prefix string, maxKeys int, continuationToken string) (*s3svc.ObjectPage, error)
	PresignDownload(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	CheckBucketAccess(ctx context.Context, bucket string) bool
}

type Handler struct {
	explorer Explorer
}

func NewHandler(explorer Explorer) *Handler {
	return &Handler{explorer: explorer}
}

func (h *Handler) ListBuckets(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.explorer.ListBuckets(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapBucketsSvcToApi(buckets))
}

func (h *Handler) ListObjects(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	prefix := r.URL.Query().Get("prefix")
	token := r.URL.Query().Get("token")
	maxKeys, _ := strconv.Atoi(r.URL.Query().Get("max"))

	page, err := h.explorer.ListObjects(r.Context(), bucket, prefix, maxKeys, token)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, adapters.MapObjectPageSvcToApi(page))
}

func (h *Handler) PresignDownload(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	key := r.URL.Query().Get("key")
	expires, _ := strconv.Atoi(r.URL.Query().Get("expires"))
	if expires <= 0 {
		expires = int(time.Hour / time.Second)
	}

	url, err := h.explorer.PresignDownload(r.Context(), bucket, key, time.Duration(expires)*time.Second)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, api.PresignedURL{URL: url, ExpiresIn: expires})
}

func (h *Handler) CheckBucketAccess(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	accessible := h.explorer.CheckBucketAccess(r.Context(), bucket)
	respond.JSON(w, r, http.StatusOK, map[string]bool{"accessible": accessible})
}
