package frontend

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/cart"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/menu"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
)

const MaxBodyBytes = 1 << 20

// Handler exposes the reconciled state and the command entry point to the renderer.
type Handler struct {
	service *Service
	logger  apt.Logger
	tlm     *telemetry.HTTP
}

func NewHandler(service *Service, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		service: service,
		logger:  logger,
		tlm:     telemetry.NewHTTP(),
	}
}

type openViewRequest struct {
	Kind Kind `json:"kind"`
}

type cartResponse struct {
	Lines cart.Collection `json:"lines"`
	Total string          `json:"total"`
	Count int             `json:"count"`
}

type draftResponse struct {
	Menu       *menu.Tree        `json:"menu"`
	Dirty      []menu.DirtyField `json:"dirty"`
	HasChanges bool              `json:"has_changes"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/views", func(r chi.Router) {
		r.Post("/", h.OpenView)
		r.Get("/{id}", h.GetView)
		r.Delete("/{id}", h.CloseView)
		r.Post("/{id}/dismiss", h.DismissBanner)
		r.Post("/{id}/refresh", h.RefreshView)
	})

	r.Get("/cart", h.GetCart)
	r.Get("/menu/draft", h.GetDraft)

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/commands", h.Dispatch)
}

// OpenView handles POST /views
func (h *Handler) OpenView(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.OpenView")
	defer finish()
	log := h.log(r)

	var req openViewRequest
	if !h.decode(w, r, log, &req) {
		return
	}

	view, err := h.service.Views().Open(req.Kind)
	if err != nil {
		h.respondError(w, log, "cannot open view", err)
		return
	}

	log.Info("view opened", "view_id", view.ID().String(), "kind", string(view.Kind()))
	apt.Respond(w, http.StatusCreated, view.Snapshot(), nil)
}

// GetView handles GET /views/{id}
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetView")
	defer finish()
	log := h.log(r)

	view, ok := h.lookupView(w, r, log)
	if !ok {
		return
	}

	apt.RespondSuccess(w, view.Snapshot())
}

// CloseView handles DELETE /views/{id}
func (h *Handler) CloseView(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CloseView")
	defer finish()
	log := h.log(r)

	id, ok := h.parseViewID(w, r)
	if !ok {
		return
	}

	if err := h.service.Views().Close(id); err != nil {
		h.respondError(w, log, "cannot close view", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DismissBanner handles POST /views/{id}/dismiss
func (h *Handler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DismissBanner")
	defer finish()
	log := h.log(r)

	view, ok := h.lookupView(w, r, log)
	if !ok {
		return
	}

	view.Dismiss()
	apt.RespondSuccess(w, view.Snapshot())
}

// RefreshView handles POST /views/{id}/refresh
func (h *Handler) RefreshView(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RefreshView")
	defer finish()
	log := h.log(r)

	view, ok := h.lookupView(w, r, log)
	if !ok {
		return
	}

	view.Trigger()
	apt.Respond(w, http.StatusAccepted, view.Snapshot(), nil)
}

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetCart")
	defer finish()

	c := h.service.Cart()
	apt.RespondSuccess(w, cartResponse{
		Lines: c.Lines(),
		Total: c.Total().StringFixed(2),
		Count: c.Count(),
	})
}

// GetDraft handles GET /menu/draft
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetDraft")
	defer finish()
	log := h.log(r)

	editor := h.service.Editor()
	tree, err := editor.WorkingCopy()
	if err != nil {
		h.respondError(w, log, "menu draft unavailable", err)
		return
	}

	apt.RespondSuccess(w, draftResponse{
		Menu:       tree,
		Dirty:      editor.DirtyFields(),
		HasChanges: editor.HasChanges(),
	})
}

// GetSettings handles GET /settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetSettings")
	defer finish()

	apt.RespondSuccess(w, h.service.Commands().Config(r.Context()))
}

// UpdateSettings handles PUT /settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateSettings")
	defer finish()
	log := h.log(r)

	var cfg orders.Config
	if !h.decode(w, r, log, &cfg) {
		return
	}

	if err := h.service.Commands().UpdateConfig(r.Context(), cfg); err != nil {
		h.respondError(w, log, "cannot update settings", err)
		return
	}

	log.Info("order settings updated", "cutoff", cfg.CancellationCutoffMinutes, "paid_visibility", cfg.PaidVisibilityMinutes)
	apt.RespondSuccess(w, cfg)
}

// Dispatch handles POST /commands
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Dispatch")
	defer finish()
	log := h.log(r)

	var cmd Command
	if !h.decode(w, r, log, &cmd) {
		return
	}

	res, err := h.service.Dispatch(r.Context(), cmd)
	if err != nil {
		h.respondError(w, log, "command failed", err)
		return
	}

	log.Debug("command applied", "kind", string(cmd.Kind))
	apt.RespondSuccess(w, res)
}

func (h *Handler) lookupView(w http.ResponseWriter, r *http.Request, log apt.Logger) (*View, bool) {
	id, ok := h.parseViewID(w, r)
	if !ok {
		return nil, false
	}

	view, err := h.service.Views().Get(id)
	if err != nil {
		h.respondError(w, log, "view lookup failed", err)
		return nil, false
	}
	return view, true
}

func (h *Handler) parseViewID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid view ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, log apt.Logger, dest interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, dest); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}

	return true
}

func (h *Handler) respondError(w http.ResponseWriter, log apt.Logger, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(msg, "error", err)
	} else {
		log.Debug(msg, "error", err, "status", status)
	}
	apt.RespondError(w, status, err.Error())
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}
