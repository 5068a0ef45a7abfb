package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linemk/medicines/internal/view"
)

// Поля форм
const (
	FieldName        = "name"
	FieldPrice       = "price"
	FieldUpdateName  = "update-name"
	FieldUpdatePrice = "update-price"
)

const (
	msgCreateMissing = "Name and price are required."
	msgUpdateMissing = "Name and new price are required."
	msgPriceNotNum   = "Price must be a number."
	msgCreated       = "Medicine created."
	msgCreateFailed  = "Failed to create medicine."
	msgUpdated       = "Medicine updated."
	msgUpdateFailed  = "Failed to update medicine."

	msgPromptPrice    = "Enter new price:"
	msgInvalidPrice   = "Invalid price. Must be a positive number."
	msgPriceUpdated   = "Medicine price updated."
	msgPriceNotUpdate = "Failed to update medicine price."
)

// formSpec отличает форму создания от формы обновления
type formSpec struct {
	op         string
	nameField  string
	priceField string
	missingMsg string
	successMsg string
	failMsg    string
	send       func(ctx context.Context, name string, price float64) error
}

// Create обрабатывает отправку формы создания
func (c *Controller) Create(ctx context.Context, form view.Form) {
	c.submitPriceForm(ctx, form, formSpec{
		op:         "controller.Create",
		nameField:  FieldName,
		priceField: FieldPrice,
		missingMsg: msgCreateMissing,
		successMsg: msgCreated,
		failMsg:    msgCreateFailed,
		send:       c.api.CreateMedicine,
	})
}

// Update обрабатывает отправку формы обновления
func (c *Controller) Update(ctx context.Context, form view.Form) {
	c.submitPriceForm(ctx, form, formSpec{
		op:         "controller.Update",
		nameField:  FieldUpdateName,
		priceField: FieldUpdatePrice,
		missingMsg: msgUpdateMissing,
		successMsg: msgUpdated,
		failMsg:    msgUpdateFailed,
		send:       c.api.UpdateMedicine,
	})
}

func (c *Controller) submitPriceForm(ctx context.Context, form view.Form, fs formSpec) {
	logger := c.log.With(slog.String("op", fs.op))

	if form == nil {
		logger.Warn("form is not bound")
		return
	}

	name := strings.TrimSpace(form.Value(fs.nameField))
	rawPrice := form.Value(fs.priceField)

	price, err := parseFormPrice(name, rawPrice, fs.missingMsg)
	if err != nil {
		logger.Warn("invalid form input", slog.Any("error", err))
		c.messenger.SetMessage(err.Message, view.SeverityError)
		return
	}

	if err := fs.send(ctx, name, price); err != nil {
		logger.Error("request failed", slog.String("name", name), slog.Any("error", err))
		c.messenger.SetMessage(fs.failMsg, view.SeverityError)
		return
	}

	logger.Info("form submitted", slog.String("name", name), slog.Float64("price", price))
	c.messenger.SetMessage(fs.successMsg, view.SeveritySuccess)
	form.Reset()
	c.LoadMedicines(ctx)
}

// ChangePrice меняет цену одного лекарства через диалоги confirm и prompt
func (c *Controller) ChangePrice(ctx context.Context, name string) {
	const op = "controller.ChangePrice"
	logger := c.log.With(slog.String("op", op), slog.String("name", name))

	if c.prompter == nil {
		logger.Warn("prompter is not bound")
		return
	}

	confirmed, err := c.prompter.Confirm(ctx, fmt.Sprintf("Change Price \"%s\"?", name))
	if err != nil {
		logger.Warn("confirmation failed", slog.Any("error", err))
		return
	}
	if !confirmed {
		return
	}

	input, ok, err := c.prompter.Prompt(ctx, msgPromptPrice)
	if err != nil {
		logger.Warn("prompt failed", slog.Any("error", err))
		return
	}
	if !ok {
		return
	}

	price, valid := parsePositivePrice(input)
	if !valid {
		logger.Warn("invalid price entered", slog.String("input", input))
		if err := c.prompter.Alert(ctx, msgInvalidPrice); err != nil {
			logger.Warn("alert failed", slog.Any("error", err))
		}
		return
	}

	if err := c.api.UpdateMedicine(ctx, name, price); err != nil {
		logger.Error("failed to update price", slog.Any("error", err))
		c.messenger.SetMessage(msgPriceNotUpdate, view.SeverityError)
		return
	}

	logger.Info("price updated", slog.Float64("price", price))
	c.messenger.SetMessage(msgPriceUpdated, view.SeveritySuccess)
	c.LoadMedicines(ctx)
}

// Delete удаляет лекарство после подтверждения
func (c *Controller) Delete(ctx context.Context, name string) {
	const op = "controller.Delete"
	logger := c.log.With(slog.String("op", op), slog.String("name", name))

	if strings.TrimSpace(name) == "" {
		return
	}
	if c.prompter == nil {
		logger.Warn("prompter is not bound")
		return
	}

	confirmed, err := c.prompter.Confirm(ctx, fmt.Sprintf("Delete \"%s\"?", name))
	if err != nil {
		logger.Warn("confirmation failed", slog.Any("error", err))
		return
	}
	if !confirmed {
		return
	}

	if err := c.api.DeleteMedicine(ctx, name); err != nil {
		logger.Error("failed to delete medicine", slog.Any("error", err))
		c.messenger.SetMessage(fmt.Sprintf("Failed to delete \"%s\".", name), view.SeverityError)
		return
	}

	logger.Info("medicine deleted")
	c.messenger.SetMessage(fmt.Sprintf("Deleted \"%s\".", name), view.SeveritySuccess)
	c.LoadMedicines(ctx)
}
