package controller

import (
	"context"
	"log/slog"

	"github.com/linemk/medicines/internal/apiclient"
	"github.com/linemk/medicines/internal/domain/models"
	"github.com/linemk/medicines/internal/view"
)

// MedicineAPI методы бэкенда, которые нужны контроллеру
type MedicineAPI interface {
	ListMedicines(ctx context.Context) ([]models.Medicine, error)
	GetMedicine(ctx context.Context, name string) (*models.Medicine, error)
	CreateMedicine(ctx context.Context, name string, price float64) error
	UpdateMedicine(ctx context.Context, name string, price float64) error
	DeleteMedicine(ctx context.Context, name string) error
}

var _ MedicineAPI = (*apiclient.Client)(nil)

// View элементы страницы, в которые пишет контроллер. Любой может быть nil
type View struct {
	Status   view.StatusArea
	Table    view.Table
	Prompter view.Prompter
}

// Controller обработчики списка и мутаций.
// Каждый обработчик сам ловит свои ошибки, пишет их в лог и показывает статус.
// Операции не сериализуются: повторная отправка во время запроса не блокируется.
type Controller struct {
	log       *slog.Logger
	api       MedicineAPI
	messenger *view.Messenger
	table     view.Table
	prompter  view.Prompter
}

func New(log *slog.Logger, api MedicineAPI, v View) *Controller {
	return &Controller{
		log:       log,
		api:       api,
		messenger: view.NewMessenger(v.Status),
		table:     v.Table,
		prompter:  v.Prompter,
	}
}

// Dispatch направляет действие строки таблицы в нужный обработчик
func (c *Controller) Dispatch(ctx context.Context, action view.Action) {
	switch action.Kind {
	case view.ActionDelete:
		c.Delete(ctx, action.Key)
	case view.ActionChangePrice:
		c.ChangePrice(ctx, action.Key)
	default:
		c.log.Warn("unknown row action",
			slog.String("op", "controller.Dispatch"),
			slog.String("kind", string(action.Kind)),
			slog.String("key", action.Key),
		)
	}
}
