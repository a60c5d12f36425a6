package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/staffrecord"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/export"
)

type StaffRecordHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	// GetLast handles GET /staff-records/last/{staffId}
	GetLast(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Months(w http.ResponseWriter, r *http.Request)
	// SlipPDF handles GET /staff-records/{id}/slip.pdf
	SlipPDF(w http.ResponseWriter, r *http.Request)
}

type staffRecordHandlerImpl struct {
	recordService staffrecord.RecordService
}

func NewStaffRecordHandler(recordService staffrecord.RecordService) StaffRecordHandler {
	return &staffRecordHandlerImpl{recordService: recordService}
}

func recordFilter(r *http.Request) staffrecord.RecordFilter {
	q := r.URL.Query()
	filter := staffrecord.RecordFilter{
		StaffID:    q.Get("staff_id"),
		Month:      q.Get("month"),
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
		Attendance: q.Get("attendance"),
	}
	filter.Page, filter.Limit = pagination(r)
	return filter
}

func (h *staffRecordHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req staffrecord.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Staff record created successfully", result)
}

func (h *staffRecordHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req staffrecord.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *staffRecordHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req staffrecord.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = id

	result, err := h.recordService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff record updated successfully", result)
}

func (h *staffRecordHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.recordService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff record deleted successfully", nil)
}

func (h *staffRecordHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.recordService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *staffRecordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.recordService.List(r.Context(), recordFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *staffRecordHandlerImpl) GetLast(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "staffId")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.recordService.GetLast(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *staffRecordHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.recordService.Stats(r.Context(), recordFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *staffRecordHandlerImpl) Months(w http.ResponseWriter, r *http.Request) {
	result, err := h.recordService.Months(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *staffRecordHandlerImpl) SlipPDF(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	data, filename, err := h.recordService.SlipPDF(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, export.ContentTypePDF, filename, data)
}
