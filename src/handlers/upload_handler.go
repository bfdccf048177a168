package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/wheeltracker/src/config"
	"github.com/username/wheeltracker/src/logger"
	"github.com/username/wheeltracker/src/services"
	"github.com/username/wheeltracker/src/utils"
)

type UploadHandler struct {
	importService services.ImportService
}

func NewUploadHandler(service services.ImportService) *UploadHandler {
	return &UploadHandler{
		importService: service,
	}
}

// HandleImport accepts a multipart CSV upload with 'broker', 'campaign' and
// 'symbol' form fields and runs the import pipeline over it.
func (h *UploadHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	broker := strings.TrimSpace(r.FormValue("broker"))
	campaign := strings.TrimSpace(r.FormValue("campaign"))
	symbol := strings.ToUpper(strings.TrimSpace(r.FormValue("symbol")))
	if broker == "" || campaign == "" || symbol == "" {
		utils.SendJSONError(w, "'broker', 'campaign' and 'symbol' form fields are required", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		logger.L.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	logger.L.Info("Processing import request", "filename", fileHeader.Filename, "broker", broker, "campaign", campaign)
	result, err := h.importService.ProcessImport(file, broker, campaign, symbol)
	if err != nil {
		if errors.Is(err, services.ErrUnknownBroker) {
			logger.L.Warn("Import rejected for unknown broker", "broker", broker, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		} else if errors.Is(err, services.ErrParsingFailed) {
			logger.L.Warn("Import failed due to CSV parsing errors", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing CSV file: %v", err), http.StatusBadRequest)
		} else {
			logger.L.Error("Internal error processing import", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for import result", "error", err)
	}
}
