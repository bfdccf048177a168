package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/username/wheeltracker/src/database"
	"github.com/username/wheeltracker/src/logger"
	"github.com/username/wheeltracker/src/models"
	"github.com/username/wheeltracker/src/services"
	"github.com/username/wheeltracker/src/utils"
)

type TradeHandler struct {
	summaryService services.SummaryService
}

func NewTradeHandler(summaryService services.SummaryService) *TradeHandler {
	return &TradeHandler{summaryService: summaryService}
}

// tradePayload is the wire form of a trade; dates travel as yyyy-mm-dd.
type tradePayload struct {
	Symbol         string  `json:"symbol"`
	Campaign       string  `json:"campaign"`
	Action         string  `json:"action"`
	Strike         float64 `json:"strike"`
	Delta          float64 `json:"delta"`
	ExpirationDate string  `json:"expiration_date"`
	DateOfAction   string  `json:"date_of_action"`
	NumberOfShares int     `json:"number_of_shares"`
	Credit         float64 `json:"credit"`
}

func (p *tradePayload) toTrade() (*models.OptionTrade, error) {
	action, err := models.ParseAction(p.Action)
	if err != nil {
		return nil, err
	}
	expiration, err := time.Parse(utils.DefaultDateFormat, p.ExpirationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expiration_date %q (expected yyyy-mm-dd)", p.ExpirationDate)
	}
	dateOfAction, err := time.Parse(utils.DefaultDateFormat, p.DateOfAction)
	if err != nil {
		return nil, fmt.Errorf("invalid date_of_action %q (expected yyyy-mm-dd)", p.DateOfAction)
	}
	return &models.OptionTrade{
		Symbol:         strings.ToUpper(strings.TrimSpace(p.Symbol)),
		Campaign:       strings.TrimSpace(p.Campaign),
		Action:         action,
		Strike:         p.Strike,
		Delta:          p.Delta,
		ExpirationDate: expiration,
		DateOfAction:   dateOfAction,
		NumberOfShares: p.NumberOfShares,
		Credit:         p.Credit,
	}, nil
}

func (h *TradeHandler) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := models.FetchAllTrades(database.DB)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error querying trades: %v", err), http.StatusInternalServerError)
		return
	}
	if trades == nil {
		trades = []models.OptionTrade{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(trades); err != nil {
		logger.L.Error("Error generating JSON response for trades", "error", err)
	}
}

func (h *TradeHandler) HandleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var payload tradePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	trade, err := payload.toTrade()
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := trade.Insert(database.DB); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
			utils.SendJSONError(w, "identical trade already recorded", http.StatusConflict)
			return
		}
		utils.SendJSONError(w, fmt.Sprintf("Error inserting trade: %v", err), http.StatusInternalServerError)
		return
	}
	h.summaryService.InvalidateCache()

	logger.L.Info("Trade created", "id", trade.ID, "symbol", trade.Symbol, "action", trade.Action)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(trade); err != nil {
		logger.L.Error("Error encoding JSON response for created trade", "error", err)
	}
}

// HandleUpdateTrade replaces the full record identified by the path id.
func (h *TradeHandler) HandleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "invalid trade id", http.StatusBadRequest)
		return
	}

	var payload tradePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	trade, err := payload.toTrade()
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	trade.ID = id

	if err := trade.Update(database.DB); err != nil {
		if strings.Contains(err.Error(), "no trade found") {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.SendJSONError(w, fmt.Sprintf("Error updating trade %d: %v", id, err), http.StatusInternalServerError)
		return
	}
	h.summaryService.InvalidateCache()

	logger.L.Info("Trade updated", "id", trade.ID, "symbol", trade.Symbol)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(trade); err != nil {
		logger.L.Error("Error encoding JSON response for updated trade", "error", err)
	}
}
