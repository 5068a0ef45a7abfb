package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/linemk/medicines/internal/domain/models"
	"github.com/linemk/medicines/internal/service"
	"github.com/linemk/medicines/internal/storage"
)

// лимит памяти под multipart форму
const maxFormMemory = 1 << 20

var validate = validator.New()

// MedicineRequest поля формы create/update
type MedicineRequest struct {
	Name  string  `validate:"required"`
	Price float64 `validate:"gt=0"`
}

// DeleteRequest поля формы delete
type DeleteRequest struct {
	Name string `validate:"required"`
}

// ListResponse — ответ GET /medicines
type ListResponse struct {
	Medicines []models.Medicine `json:"medicines"`
}

// MessageResponse — ответ на успешную мутацию
type MessageResponse struct {
	Message string `json:"message"`
}

// ListHandler обрабатывает запрос GET /medicines
func ListHandler(log *slog.Logger, svc service.MedicineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListHandler"
		logger := log.With(slog.String("op", op))

		medicines, err := svc.List(r.Context())
		if err != nil {
			logger.Error("failed to list medicines", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if medicines == nil {
			medicines = []models.Medicine{}
		}

		writeJSON(logger, w, ListResponse{Medicines: medicines})
	}
}

// GetHandler обрабатывает запрос GET /medicines/{name}
func GetHandler(log *slog.Logger, svc service.MedicineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetHandler"
		logger := log.With(slog.String("op", op))

		name := chi.URLParam(r, "name")
		if name == "" {
			http.Error(w, "name parameter is required", http.StatusBadRequest)
			return
		}

		med, err := svc.Get(r.Context(), name)
		if err != nil {
			logger.Warn("failed to get medicine", slog.String("name", name), slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(logger, w, med)
	}
}

// CreateHandler обрабатывает запрос POST /create
func CreateHandler(log *slog.Logger, svc service.MedicineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateHandler"
		logger := log.With(slog.String("op", op))

		req, ok := decodeMedicineRequest(logger, w, r)
		if !ok {
			return
		}

		if err := svc.Create(r.Context(), req.Name, req.Price); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(logger, w, MessageResponse{Message: "Medicine created successfully"})
	}
}

// UpdateHandler обрабатывает запрос POST /update
func UpdateHandler(log *slog.Logger, svc service.MedicineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateHandler"
		logger := log.With(slog.String("op", op))

		req, ok := decodeMedicineRequest(logger, w, r)
		if !ok {
			return
		}

		if err := svc.Update(r.Context(), req.Name, req.Price); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(logger, w, MessageResponse{Message: "Medicine updated successfully"})
	}
}

// DeleteHandler обрабатывает запрос DELETE /delete
func DeleteHandler(log *slog.Logger, svc service.MedicineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteHandler"
		logger := log.With(slog.String("op", op))

		if err := parseForm(r); err != nil {
			logger.Error("invalid request: form parsing error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req := DeleteRequest{Name: strings.TrimSpace(r.FormValue("name"))}
		if err := validate.Struct(req); err != nil {
			logger.Error("validation failed", slog.Any("error", err))
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), req.Name); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(logger, w, MessageResponse{Message: "Medicine deleted successfully"})
	}
}

// decodeMedicineRequest разбирает и проверяет name и price.
// При ошибке ответ уже записан.
func decodeMedicineRequest(logger *slog.Logger, w http.ResponseWriter, r *http.Request) (MedicineRequest, bool) {
	if err := parseForm(r); err != nil {
		logger.Error("invalid request: form parsing error", slog.Any("error", err))
		http.Error(w, "invalid request", http.StatusBadRequest)
		return MedicineRequest{}, false
	}

	req := MedicineRequest{Name: strings.TrimSpace(r.FormValue("name"))}

	rawPrice := strings.TrimSpace(r.FormValue("price"))
	if rawPrice != "" {
		price, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil {
			logger.Error("invalid price", slog.String("price", rawPrice))
			http.Error(w, "price must be a number", http.StatusBadRequest)
			return MedicineRequest{}, false
		}
		req.Price = price
	}

	if err := validate.Struct(req); err != nil {
		logger.Error("validation failed", slog.Any("error", err))
		http.Error(w, "name is required and price must be positive", http.StatusBadRequest)
		return MedicineRequest{}, false
	}
	return req, true
}

// parseForm принимает multipart и urlencoded тела, для любого метода
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrMedicineNotFound):
		http.Error(w, "medicine not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrMedicineExists):
		http.Error(w, "medicine already exists", http.StatusConflict)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}
