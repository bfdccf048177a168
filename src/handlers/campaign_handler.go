package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/username/wheeltracker/src/database"
	"github.com/username/wheeltracker/src/logger"
	"github.com/username/wheeltracker/src/models"
	"github.com/username/wheeltracker/src/services"
	"github.com/username/wheeltracker/src/utils"
)

type CampaignHandler struct {
	summaryService services.SummaryService
}

func NewCampaignHandler(summaryService services.SummaryService) *CampaignHandler {
	return &CampaignHandler{summaryService: summaryService}
}

func (h *CampaignHandler) HandleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := models.FetchAllCampaigns(database.DB)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error querying campaigns: %v", err), http.StatusInternalServerError)
		return
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(campaigns); err != nil {
		logger.L.Error("Error generating JSON response for campaigns", "error", err)
	}
}

func (h *CampaignHandler) HandleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name            string   `json:"name"`
		Symbol          string   `json:"symbol"`
		TargetExitPrice *float64 `json:"target_exit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Symbol = strings.ToUpper(strings.TrimSpace(payload.Symbol))
	if payload.Name == "" || payload.Symbol == "" {
		utils.SendJSONError(w, "'name' and 'symbol' are required", http.StatusBadRequest)
		return
	}

	campaign := models.Campaign{
		Name:            payload.Name,
		Symbol:          payload.Symbol,
		TargetExitPrice: payload.TargetExitPrice,
		CreatedAt:       time.Now(),
	}
	if err := campaign.Insert(database.DB); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
			utils.SendJSONError(w, fmt.Sprintf("campaign %q already exists", campaign.Name), http.StatusConflict)
			return
		}
		utils.SendJSONError(w, fmt.Sprintf("Error creating campaign: %v", err), http.StatusInternalServerError)
		return
	}

	logger.L.Info("Campaign created", "name", campaign.Name, "symbol", campaign.Symbol)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(campaign); err != nil {
		logger.L.Error("Error encoding JSON response for created campaign", "error", err)
	}
}

func (h *CampaignHandler) HandleGetCampaignSummary(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	summary, err := h.summaryService.GetCampaignSummary(name, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.SendJSONError(w, fmt.Sprintf("Error computing summary for campaign %s: %v", name, err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.L.Error("Error encoding JSON response for campaign summary", "campaign", name, "error", err)
	}
}

func (h *CampaignHandler) HandleGetCampaignTrades(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	campaign, err := models.FetchCampaignByName(database.DB, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.SendJSONError(w, fmt.Sprintf("campaign not found: %s", name), http.StatusNotFound)
			return
		}
		utils.SendJSONError(w, fmt.Sprintf("Error fetching campaign %s: %v", name, err), http.StatusInternalServerError)
		return
	}

	trades, err := models.FetchCampaignTrades(database.DB, campaign.Name, campaign.Symbol)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Error querying trades for campaign %s: %v", name, err), http.StatusInternalServerError)
		return
	}
	if trades == nil {
		trades = []models.OptionTrade{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(trades); err != nil {
		logger.L.Error("Error generating JSON response for campaign trades", "campaign", name, "error", err)
	}
}
