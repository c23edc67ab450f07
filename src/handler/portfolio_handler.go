package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"brokerapi/src/portfolio"
)

type portfolioReader interface {
	Snapshot(ctx context.Context, userID uint) (*portfolio.Portfolio, error)
}

// GetPortfolioHandler returns the GET /users/{id}/portfolio handler.
func GetPortfolioHandler(svc portfolioReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := chi.URLParam(r, "id")
		id, err := strconv.ParseUint(idParam, 10, 64)
		if err != nil || id == 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id must be a positive integer"})
			return
		}

		snapshot, err := svc.Snapshot(r.Context(), uint(id))
		if err != nil {
			logger.WithError(err).WithField("user_id", id).Error("Failed to assemble portfolio")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
			return
		}
		if snapshot == nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}
