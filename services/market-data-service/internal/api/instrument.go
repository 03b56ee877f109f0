package api

import (
	"net/http"

	orderbookv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/orderbook/v1"
)

// GetLatestTick handles GET /v1/instruments/{id}/tick.
func (a *API) GetLatestTick(w http.ResponseWriter, r *http.Request) {
	tick, err := a.orderbook.GetLatestTick(r.Context(), r.PathValue("id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.success(w, tick)
}

// GetOrderBook handles GET /v1/instruments/{id}/orderbook?depth=1|5.
// Without depth the instrument's configured level is used.
func (a *API) GetOrderBook(w http.ResponseWriter, r *http.Request) {
	depth, err := queryInt(r, "depth")
	if err != nil {
		a.fail(w, r, err)
		return
	}

	snapshot, err := a.orderbook.GetOrderBook(r.Context(), r.PathValue("id"), depth)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.success(w, snapshot)
}

// GetPriceHistory handles GET /v1/instruments/{id}/history?count=N.
func (a *API) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	count, err := queryInt(r, "count")
	if err != nil {
		a.fail(w, r, err)
		return
	}

	points, err := a.orderbook.GetPriceHistory(r.Context(), r.PathValue("id"), count)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.success(w, points)
}

// GetHistoricalTicks handles GET /v1/instruments/{id}/ticks?count&start&end.
func (a *API) GetHistoricalTicks(w http.ResponseWriter, r *http.Request) {
	var (
		query orderbookv1.HistoryQuery
		err   error
	)
	if query.Count, err = queryInt(r, "count"); err != nil {
		a.fail(w, r, err)
		return
	}
	if query.Start, err = queryTime(r, "start"); err != nil {
		a.fail(w, r, err)
		return
	}
	if query.End, err = queryTime(r, "end"); err != nil {
		a.fail(w, r, err)
		return
	}

	ticks, err := a.orderbook.GetHistoricalTicks(r.Context(), r.PathValue("id"), query)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.success(w, ticks)
}

// GetMultipleInstruments handles GET /v1/instruments?ids=a,b,c.
func (a *API) GetMultipleInstruments(w http.ResponseWriter, r *http.Request) {
	ids := queryList(r, "ids")
	if len(ids) == 0 {
		a.fail(w, r, badRequest("ids is required", "ids"))
		return
	}
	a.success(w, a.orderbook.GetMultipleInstruments(r.Context(), ids))
}

type depthRequest struct {
	DepthLevel int `json:"depth_level"`
}

// SetDepthLevel handles PUT /v1/instruments/{id}/depth.
func (a *API) SetDepthLevel(w http.ResponseWriter, r *http.Request) {
	var req depthRequest
	if err := decodeBody(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	id := r.PathValue("id")
	if err := a.feed.SetDepthLevel(r.Context(), id, req.DepthLevel); err != nil {
		a.fail(w, r, err)
		return
	}
	a.success(w, map[string]any{
		"instrument_id": id,
		"depth_level":   req.DepthLevel,
	})
}
