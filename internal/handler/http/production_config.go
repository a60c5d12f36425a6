package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/response"
)

type ProductionConfigHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	// GetEffective handles GET /production-configs/effective?date=YYYY-MM-DD
	GetEffective(w http.ResponseWriter, r *http.Request)
}

type productionConfigHandlerImpl struct {
	configService productionconfig.ConfigService
}

func NewProductionConfigHandler(configService productionconfig.ConfigService) ProductionConfigHandler {
	return &productionConfigHandlerImpl{configService: configService}
}

func (h *productionConfigHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req productionconfig.CreateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.configService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Production config created successfully", result)
}

func (h *productionConfigHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req productionconfig.UpdateConfigRequest
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

	result, err := h.configService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Production config updated successfully", result)
}

func (h *productionConfigHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.configService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Production config deleted successfully", nil)
}

func (h *productionConfigHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.configService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *productionConfigHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.configService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *productionConfigHandlerImpl) GetEffective(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.GetEffective(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
