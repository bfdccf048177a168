package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/username/wheeltracker/src/logger"
	"github.com/username/wheeltracker/src/services"
	"github.com/username/wheeltracker/src/utils"
)

type SummaryHandler struct {
	summaryService services.SummaryService
}

func NewSummaryHandler(summaryService services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// HandleGetPortfolioSummary returns the portfolio-wide aggregates: total
// net premium across all contract lines and this week's expiring premium.
func (h *SummaryHandler) HandleGetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryService.GetPortfolioSummary(time.Now())
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error computing portfolio summary: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.L.Error("Error encoding JSON response for portfolio summary", "error", err)
	}
}
