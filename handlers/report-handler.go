package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"task-manager/backend/logging"
	"task-manager/backend/services"
)

type ReportHandler struct {
	ReportService *services.ReportService
	ExportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{ReportService: reportService, ExportService: exportService}
}

// ExportTasksReport streams the full task listing as a workbook download.
// Admin-only via middleware; the services behind this do not re-check role.
func (h *ReportHandler) ExportTasksReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ReportService.TaskReport(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_REPORT_FAILED, Description: Failed to build task report: %v", err)
		http.Error(w, "Failed to build task report", http.StatusInternalServerError)
		return
	}

	payload, err := h.ExportService.EncodeWorkbook("Task Report", services.TaskReportHeader, rows)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_EXPORT_FAILED, Description: Failed to encode task report: %v", err)
		http.Error(w, "Failed to encode task report", http.StatusInternalServerError)
		return
	}

	logging.Logger.Infof("Event ID: TASK_REPORT_EXPORTED, Description: Exported task report with %d rows", len(rows))
	writeAttachment(w, services.TaskReportFilename, payload)
}

// ExportUsersReport streams the per-user task summary as a workbook
// download. Admin-only via middleware.
func (h *ReportHandler) ExportUsersReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ReportService.UserReport(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: USER_REPORT_FAILED, Description: Failed to build user report: %v", err)
		http.Error(w, "Failed to build user report", http.StatusInternalServerError)
		return
	}

	payload, err := h.ExportService.EncodeWorkbook("User Report", services.UserReportHeader, rows)
	if err != nil {
		logging.Logger.Errorf("Event ID: USER_EXPORT_FAILED, Description: Failed to encode user report: %v", err)
		http.Error(w, "Failed to encode user report", http.StatusInternalServerError)
		return
	}

	logging.Logger.Infof("Event ID: USER_REPORT_EXPORTED, Description: Exported user report with %d rows", len(rows))
	writeAttachment(w, services.UserReportFilename, payload)
}

func writeAttachment(w http.ResponseWriter, filename string, payload []byte) {
	w.Header().Set("Content-Type", services.WorkbookContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.Write(payload)
}
