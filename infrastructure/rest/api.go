// Package rest serves the request/response side of the chat: history, search,
// attachments, external events and the admin match list. Live traffic is upgraded to the websocket gateway.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"pair-chat/auth"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/errors"
	"pair-chat/observability"
	"pair-chat/services"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

type TokenParser interface {
	Parse(tokenString string) (*auth.CustomClaims, error)
}

type claimsKey struct{}

type API struct {
	service   services.IChatService
	tokens    TokenParser
	gateway   http.Handler
	metrics   *observability.Metrics
	log       *slog.Logger
	maxUpload int64
}

func NewAPI(service services.IChatService, tokens TokenParser, gateway http.Handler,
	metrics *observability.Metrics, log *slog.Logger, maxUpload int64) *API {
	return &API{
		service:   service,
		tokens:    tokens,
		gateway:   gateway,
		metrics:   metrics,
		log:       log,
		maxUpload: maxUpload,
	}
}

// Router registers every route. The websocket endpoint authenticates on its own.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(a.logRequests)

	r.HandleFunc("/healthz", a.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)
	if a.gateway != nil {
		r.Handle("/ws", a.gateway).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(a.authenticate)
	api.HandleFunc("/conversations/{partner}/messages", a.history).Methods(http.MethodGet)
	api.HandleFunc("/conversations/{partner}/search", a.search).Methods(http.MethodGet)
	api.HandleFunc("/attachments", a.uploadAttachment).Methods(http.MethodPost)
	api.HandleFunc("/attachments/{id}", a.downloadAttachment).Methods(http.MethodGet)
	api.HandleFunc("/events", a.postEvent).Methods(http.MethodPost)
	api.HandleFunc("/partners", a.partners).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(a.requireRole(auth.RoleAdmin))
	admin.HandleFunc("/matches", a.match).Methods(http.MethodPost)
	admin.HandleFunc("/matches", a.unmatch).Methods(http.MethodDelete)
	admin.HandleFunc("/online", a.online).Methods(http.MethodGet)

	return r
}

func (a *API) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) history(w http.ResponseWriter, r *http.Request) {
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}
	page, err := a.service.History(r.Context(), caller(r), partner(r), cursor)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *API) search(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			a.writeError(w, fmt.Errorf("%w: limit must be a positive integer", errors.ErrValidation))
			return
		}
		limit = n
	}
	msgs, err := a.service.Search(r.Context(), caller(r), partner(r), r.URL.Query().Get("q"), limit)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": lo.Ternary(msgs == nil, []chat.Message{}, msgs)})
}

// uploadAttachment takes a multipart form with a single "file" part.
func (a *API) uploadAttachment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.writeError(w, errors.ErrAttachmentTooLarge)
			return
		}
		a.writeError(w, fmt.Errorf("%w: expected a multipart file field: %w", errors.ErrValidation, err))
		return
	}
	defer func() { _ = file.Close() }()

	attachment, err := a.service.UploadAttachment(r.Context(), caller(r), header.Filename, file)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, attachment)
}

func (a *API) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	attachment, body, err := a.service.OpenAttachment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, err)
		return
	}
	defer func() { _ = body.Close() }()

	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(attachment.Size, 10))
	w.Header().Set("Cache-Control", "private, max-age=31536000, immutable")
	if attachment.Name != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", attachment.Name))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		a.log.Debug("attachment download interrupted", "attachment_id", attachment.ID, "error", err)
	}
}

type eventRequest struct {
	SourceUserID chat.UserID    `json:"source_user_id,omitempty"`
	Kind         string         `json:"kind"`
	Payload      map[string]any `json:"payload,omitempty"`
	OccurredAt   *time.Time     `json:"occurred_at,omitempty"`
}

// postEvent relays an event from the caller, e.g. a check-in. Relay services may speak for another user.
func (a *API) postEvent(w http.ResponseWriter, r *http.Request) {
	var body eventRequest
	if err := decodeJSON(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	source := caller(r)
	if body.SourceUserID != "" && body.SourceUserID != source {
		if !slices.Contains(claimsOf(r).Roles, auth.RoleRelay) {
			a.writeError(w, fmt.Errorf("%w: cannot relay on behalf of %q", errors.ErrPermission, body.SourceUserID))
			return
		}
		source = body.SourceUserID
	}
	ext := event.External{SourceUserID: source, Kind: body.Kind, Payload: body.Payload}
	if body.OccurredAt != nil {
		ext.OccurredAt = *body.OccurredAt
	}

	reached, err := a.service.Relay(r.Context(), ext)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]int{"delivered_to": reached})
}

type partnerView struct {
	UserID chat.UserID `json:"user_id"`
	Online bool        `json:"online"`
}

func (a *API) partners(w http.ResponseWriter, r *http.Request) {
	partners, err := a.service.Partners(r.Context(), caller(r))
	if err != nil {
		a.writeError(w, err)
		return
	}
	online := lo.SliceToMap(a.service.OnlineUsers(), func(u chat.UserID) (chat.UserID, struct{}) {
		return u, struct{}{}
	})
	writeJSON(w, http.StatusOK, map[string]any{"partners": lo.Map(partners, func(p chat.UserID, _ int) partnerView {
		_, ok := online[p]
		return partnerView{UserID: p, Online: ok}
	})})
}

type matchRequest struct {
	A chat.UserID `json:"a"`
	B chat.UserID `json:"b"`
}

func (a *API) match(w http.ResponseWriter, r *http.Request) {
	var body matchRequest
	if err := decodeJSON(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	if err := a.service.Match(r.Context(), body.A, body.B); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) unmatch(w http.ResponseWriter, r *http.Request) {
	var body matchRequest
	if err := decodeJSON(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	if err := a.service.Unmatch(r.Context(), body.A, body.B); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) online(w http.ResponseWriter, _ *http.Request) {
	online := a.service.OnlineUsers()
	writeJSON(w, http.StatusOK, map[string]any{"online": lo.Ternary(online == nil, []chat.UserID{}, online)})
}

func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearer(r)
		if !ok {
			a.writeError(w, fmt.Errorf("%w: missing bearer token", errors.ErrAuth))
			return
		}
		claims, err := a.tokens.Parse(token)
		if err != nil {
			a.writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func (a *API) requireRole(role string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(claimsOf(r).Roles, role) {
				a.writeError(w, fmt.Errorf("%w: role %s required", errors.ErrPermission, role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.log.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		a.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"code": string(errors.CodeOf(err)), "error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json: %w", errors.ErrValidation, err)
	}
	return nil
}

func bearer(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return strings.TrimSpace(token), ok && token != ""
}

func claimsOf(r *http.Request) *auth.CustomClaims {
	claims, _ := r.Context().Value(claimsKey{}).(*auth.CustomClaims)
	if claims == nil {
		return &auth.CustomClaims{}
	}
	return claims
}

func caller(r *http.Request) chat.UserID {
	return chat.UserID(claimsOf(r).UserID)
}

func partner(r *http.Request) chat.UserID {
	return chat.UserID(mux.Vars(r)["partner"])
}
