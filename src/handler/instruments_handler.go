package handler

import (
	"context"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"

	"brokerapi/src/model"
)

type instrumentSearcher interface {
	SearchByTerm(ctx context.Context, term string) ([]model.Instrument, error)
}

// SearchInstrumentsHandler returns the GET /instruments?search= handler.
// Pure pass-through lookup over the instruments reference table.
func SearchInstrumentsHandler(repo instrumentSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := strings.TrimSpace(r.URL.Query().Get("search"))
		if term == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Search parameter must be a non-empty string"})
			return
		}

		instruments, err := repo.SearchByTerm(r.Context(), term)
		if err != nil {
			logger.WithError(err).WithField("term", term).Error("Instrument search failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
			return
		}

		writeJSON(w, http.StatusOK, instruments)
	}
}
