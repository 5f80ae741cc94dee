package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/longkeutn/cong-thong-tin-sht/internal/entity"
)

type Service interface {
	PortalData(ctx context.Context, email string) (entity.PortalData, error)
	ToggleFavorite(ctx context.Context, email, appID string) ([]string, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s: s}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Dịch vụ đang hoạt động!\n"))
}

// GetPortal returns the whole session aggregate in one call: profile,
// categories, role-filtered apps and favorite ids. There is no partial
// response; a store failure is a hard 503 so the client shows a load
// failure instead of an empty catalog.
func (h *Handler) GetPortal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := entity.EmailFromCtx(ctx)

	data, err := h.s.PortalData(ctx, email)
	if err != nil {
		sendErr(ctx, w, http.StatusServiceUnavailable, err, "Không thể tải dữ liệu cổng ứng dụng")
		return
	}

	sendJSON(ctx, w, http.StatusOK, data)
}

type ToggleFavoriteRequest struct {
	AppID string `json:"appId"`
}

type ToggleFavoriteResponse struct {
	Favorites []string `json:"favorites"`
}

// ToggleFavorite flips one app id in the caller's favorite set and echoes
// the authoritative resulting set. Retrying an applied toggle flips it
// back, so clients must not blindly retry on ambiguous failure.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ToggleFavoriteRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, "Dữ liệu gửi lên không hợp lệ")
		return
	}

	req.AppID = strings.TrimSpace(req.AppID)
	if req.AppID == "" {
		sendErr(ctx, w, http.StatusUnprocessableEntity,
			errors.New("empty appId"), "Thiếu mã ứng dụng")

		return
	}

	favorites, err := h.s.ToggleFavorite(ctx, entity.EmailFromCtx(ctx), req.AppID)
	if err != nil {
		sendErr(ctx, w, http.StatusBadGateway, err, "Không thể lưu ứng dụng yêu thích")
		return
	}

	sendJSON(ctx, w, http.StatusOK, ToggleFavoriteResponse{Favorites: favorites})
}
