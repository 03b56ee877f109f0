package api

import (
	"net/http"

	archivev1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/archive/v1"
)

// GetArchivedTicks handles GET /v1/archive/{id}/ticks?start&end&limit.
func (a *API) GetArchivedTicks(w http.ResponseWriter, r *http.Request) {
	filter := archivev1.Filter{InstrumentID: r.PathValue("id")}

	var err error
	if filter.Start, err = queryTime(r, "start"); err != nil {
		a.fail(w, r, err)
		return
	}
	if filter.End, err = queryTime(r, "end"); err != nil {
		a.fail(w, r, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		a.fail(w, r, err)
		return
	}

	ticks, err := a.archive.GetTicks(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.success(w, ticks)
}
