package api

import (
	"net/http"

	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
)

type subscriptionRequest struct {
	InstrumentIDs []string `json:"instrument_ids"`
	DepthLevel    int      `json:"depth_level"`
}

// Subscribe handles POST /v1/subscriptions. depth_level defaults to 1.
func (a *API) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeBody(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if len(req.InstrumentIDs) == 0 {
		a.fail(w, r, badRequest("instrument_ids is required", "instrument_ids"))
		return
	}
	if req.DepthLevel == 0 {
		req.DepthLevel = tickv1.DepthLevel1
	}

	if err := a.feed.Subscribe(r.Context(), req.InstrumentIDs, req.DepthLevel); err != nil {
		a.fail(w, r, err)
		return
	}
	a.success(w, a.feed.Status().Subscriptions)
}

// Unsubscribe handles DELETE /v1/subscriptions.
func (a *API) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeBody(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if len(req.InstrumentIDs) == 0 {
		a.fail(w, r, badRequest("instrument_ids is required", "instrument_ids"))
		return
	}

	if err := a.feed.Unsubscribe(r.Context(), req.InstrumentIDs); err != nil {
		a.fail(w, r, err)
		return
	}
	a.success(w, a.feed.Status().Subscriptions)
}

// GetFeedStats handles GET /v1/feed/stats.
func (a *API) GetFeedStats(w http.ResponseWriter, r *http.Request) {
	a.success(w, a.feed.Status())
}
