package terminal

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/linemk/medicines/internal/view"
)

var (
	_ view.Table        = (*Table)(nil)
	_ view.ActionSource = (*Table)(nil)
)

// Table печатает строки по мере добавления. Номер строки (с 1) - адрес
// для команд delete/price.
type Table struct {
	console *Console
	rows    []view.Row
	handler func(ctx context.Context, action view.Action)
}

func NewTable(console *Console) *Table {
	return &Table{console: console}
}

func (t *Table) Clear() {
	t.rows = nil
	header := color.New(color.Bold)
	header.Fprintf(t.console.out, "%-4s %-28s %10s  %s\n", "#", "Name", "Price", "Actions")
}

func (t *Table) AppendRow(row view.Row) {
	t.rows = append(t.rows, row)
	n := len(t.rows)

	actions := ""
	for _, a := range row.Actions {
		actions += fmt.Sprintf("[%s %d] ", commandFor(a.Kind), n)
	}
	fmt.Fprintf(t.console.out, "%-4d %-28s %10s  %s\n", n, row.Name, row.Price, actions)
}

func (t *Table) OnAction(handler func(ctx context.Context, action view.Action)) {
	t.handler = handler
}

// Trigger выполняет действие kind строки number (с 1)
func (t *Table) Trigger(ctx context.Context, number int, kind view.ActionKind) error {
	if number < 1 || number > len(t.rows) {
		return fmt.Errorf("no row %d", number)
	}
	action, ok := t.rows[number-1].Action(kind)
	if !ok {
		return fmt.Errorf("row %d has no %s action", number, kind)
	}
	if t.handler == nil {
		return fmt.Errorf("row actions are not bound")
	}
	t.handler(ctx, action)
	return nil
}

// Len количество отрисованных строк
func (t *Table) Len() int {
	return len(t.rows)
}

func commandFor(kind view.ActionKind) string {
	switch kind {
	case view.ActionDelete:
		return cmdDelete
	case view.ActionChangePrice:
		return cmdPrice
	}
	return string(kind)
}
