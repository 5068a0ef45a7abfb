package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linemk/medicines/internal/apiclient"
	"github.com/linemk/medicines/internal/domain/models"
	"github.com/linemk/medicines/internal/view"
)

const (
	msgLoading    = "Loading medicines..."
	msgLoaded     = "Medicines loaded."
	msgLoadFailed = "Error loading medicines."
)

// LoadMedicines запрашивает весь список и перерисовывает таблицу.
// При ошибке таблица остаётся от последней успешной загрузки.
func (c *Controller) LoadMedicines(ctx context.Context) {
	const op = "controller.LoadMedicines"
	logger := c.log.With(slog.String("op", op))

	c.messenger.SetMessage(msgLoading, view.SeverityInfo)

	medicines, err := c.api.ListMedicines(ctx)
	if err != nil {
		logger.Error("failed to load medicines", slog.Any("error", err))
		c.messenger.SetMessage(msgLoadFailed, view.SeverityError)
		return
	}

	c.RenderMedicines(medicines)
	logger.Debug("medicines loaded", slog.Int("count", len(medicines)))
	c.messenger.SetMessage(msgLoaded, view.SeveritySuccess)
}

// RenderMedicines очищает таблицу и добавляет строки в порядке ответа сервера
func (c *Controller) RenderMedicines(medicines []models.Medicine) {
	if c.table == nil {
		return
	}

	c.table.Clear()
	for _, med := range medicines {
		c.table.AppendRow(view.NewMedicineRow(med.Name, apiclient.FormatPrice(med.Price)))
	}
}

// Show выводит одно лекарство в строку статуса
func (c *Controller) Show(ctx context.Context, name string) {
	const op = "controller.Show"
	name = strings.TrimSpace(name)
	logger := c.log.With(slog.String("op", op), slog.String("name", name))

	if name == "" {
		return
	}

	med, err := c.api.GetMedicine(ctx, name)
	if err != nil || med == nil {
		logger.Error("failed to get medicine", slog.Any("error", err))
		c.messenger.SetMessage(fmt.Sprintf("Medicine \"%s\" not found.", name), view.SeverityError)
		return
	}

	c.messenger.SetMessage(fmt.Sprintf("%s: %s", med.Name, apiclient.FormatPrice(med.Price)), view.SeverityInfo)
}
