package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/linemk/medicines/internal/domain/models"
)

// Пути бэкенда
const (
	PathMedicines = "/medicines"
	PathCreate    = "/create"
	PathUpdate    = "/update"
	PathDelete    = "/delete"
)

// ListMedicines GET /medicines.
// Допустимы голый массив и объект с полем "medicines"; любая другая форма - пустой список.
func (c *Client) ListMedicines(ctx context.Context) ([]models.Medicine, error) {
	data, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: PathMedicines})
	if err != nil {
		return nil, err
	}
	return decodeMedicines(data)
}

// GetMedicine GET /medicines/{name}
func (c *Client) GetMedicine(ctx context.Context, name string) (*models.Medicine, error) {
	data, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   PathMedicines + "/" + url.PathEscape(name),
	})
	if err != nil {
		return nil, err
	}
	if err := checkErrorField(data); err != nil {
		return nil, err
	}
	var med models.Medicine
	if err := json.Unmarshal(data, &med); err != nil {
		return nil, &Error{Kind: KindDecode, Message: "decode medicine", Err: err}
	}
	return &med, nil
}

// CreateMedicine POST /create с полями name и price
func (c *Client) CreateMedicine(ctx context.Context, name string, price float64) error {
	return c.mutate(ctx, http.MethodPost, PathCreate, []Field{
		{Name: "name", Value: name},
		{Name: "price", Value: FormatPrice(price)},
	})
}

// UpdateMedicine POST /update с полями name и price
func (c *Client) UpdateMedicine(ctx context.Context, name string, price float64) error {
	return c.mutate(ctx, http.MethodPost, PathUpdate, []Field{
		{Name: "name", Value: name},
		{Name: "price", Value: FormatPrice(price)},
	})
}

// DeleteMedicine DELETE /delete, в форме только name
func (c *Client) DeleteMedicine(ctx context.Context, name string) error {
	return c.mutate(ctx, http.MethodDelete, PathDelete, []Field{
		{Name: "name", Value: name},
	})
}

// mutate успех - любой 2xx, тело ответа не разбирается
func (c *Client) mutate(ctx context.Context, method, path string, form []Field) error {
	_, err := c.Do(ctx, &Request{Method: method, Path: path, Form: form})
	return err
}

// FormatPrice кратчайшая десятичная запись: 5, 12.5
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func decodeMedicines(data json.RawMessage) ([]models.Medicine, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []models.Medicine{}, nil
	}

	var list json.RawMessage
	switch trimmed[0] {
	case '[':
		list = trimmed
	case '{':
		var envelope struct {
			Medicines json.RawMessage `json:"medicines"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, &Error{Kind: KindDecode, Message: "decode medicines envelope", Err: err}
		}
		list = bytes.TrimSpace(envelope.Medicines)
	}

	if len(list) == 0 || list[0] != '[' {
		return []models.Medicine{}, nil
	}

	medicines := []models.Medicine{}
	if err := json.Unmarshal(list, &medicines); err != nil {
		return nil, &Error{Kind: KindDecode, Message: "decode medicines", Err: err}
	}
	return medicines, nil
}

// checkErrorField бэкенд может ответить 200 {"error": "..."} на отсутствующую запись.
// Проверяется только при чтении одной записи.
func checkErrorField(data json.RawMessage) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var reply struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &reply); err != nil {
		return nil
	}
	if reply.Error == "" {
		return nil
	}
	return &Error{Kind: KindRequestFailed, StatusCode: http.StatusOK, Message: reply.Error}
}
