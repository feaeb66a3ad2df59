package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pixelsaas/media-api/internal/video/models"
	"github.com/pixelsaas/media-api/internal/video/service"
)

// CredentialIssuer produces the signed upload credential. Implemented by the
// media host client; the API secret stays on its side of the interface.
type CredentialIssuer interface {
	SignUpload(folder string) (signature string, timestamp int64)
	CloudName() string
	APIKey() string
}

type Handler struct {
	svc    *service.Service
	issuer CredentialIssuer
	folder string
}

func New(svc *service.Service, issuer CredentialIssuer, folder string) *Handler {
	return &Handler{svc: svc, issuer: issuer, folder: folder}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetSignature issues the short-lived upload credential. Stateless; the
// response never contains the signing secret.
func (h *Handler) GetSignature(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sig, ts := h.issuer.SignUpload(h.folder)
	writeJSON(w, http.StatusOK, SignatureResponse{
		Signature: sig,
		Timestamp: ts,
		CloudName: h.issuer.CloudName(),
		APIKey:    h.issuer.APIKey(),
	})
}

// Videos dispatches /api/videos: POST reconciles and saves, GET lists.
func (h *Handler) Videos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.saveVideo(w, r)
	case http.MethodGet:
		h.listVideos(w, r)
	default:
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) saveVideo(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req SaveVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.PublicID) == "" {
		writeErrorJSON(w, http.StatusBadRequest, "missing publicId")
		return
	}

	v, err := h.svc.SaveVideo(r.Context(), service.SaveVideoInput{
		Title:        req.Title,
		Description:  req.Description,
		PublicID:     req.PublicID,
		OriginalSize: req.OriginalSize,
		Duration:     req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidArgument):
			writeErrorJSON(w, http.StatusBadRequest, "invalid argument")
		case errors.Is(err, models.ErrConflict):
			writeErrorJSON(w, http.StatusConflict, "video already exists")
		default:
			writeErrorJSON(w, http.StatusInternalServerError, "failed to save video metadata")
		}
		return
	}

	writeJSON(w, http.StatusOK, toVideoResponse(v))
}

// GetVideo serves /api/videos/{key}. The key is either the record uuid or
// the host-side public id (which may itself contain slashes).
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/videos/")
	if key == "" || key == r.URL.Path {
		writeErrorJSON(w, http.StatusBadRequest, "missing id")
		return
	}

	var v *models.Video
	var err error
	if id, parseErr := uuid.Parse(key); parseErr == nil {
		v, err = h.svc.GetVideo(r.Context(), id)
	} else {
		v, err = h.svc.GetVideoByPublicID(r.Context(), key)
	}
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			writeErrorJSON(w, http.StatusNotFound, "not found")
		case errors.Is(err, models.ErrInvalidArgument):
			writeErrorJSON(w, http.StatusBadRequest, "invalid argument")
		default:
			writeErrorJSON(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toVideoResponse(v))
}

func (h *Handler) listVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.svc.ListVideos(r.Context(), 100)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
