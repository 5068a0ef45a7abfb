package terminal

import (
	"context"
	"io"

	"github.com/linemk/medicines/internal/view"
)

var (
	_ view.Form   = (*Form)(nil)
	_ view.Button = (*Button)(nil)
)

// FormField поле формы и подпись для ввода
type FormField struct {
	Name  string
	Label string
}

// Form заполняется построчно командой страницы, затем вызывается обработчик отправки
type Form struct {
	console *Console
	fields  []FormField
	values  map[string]string
	handler func(ctx context.Context)
}

func NewForm(console *Console, fields ...FormField) *Form {
	return &Form{
		console: console,
		fields:  fields,
		values:  make(map[string]string),
	}
}

func (f *Form) Value(field string) string {
	return f.values[field]
}

func (f *Form) Reset() {
	f.values = make(map[string]string)
}

func (f *Form) OnSubmit(handler func(ctx context.Context)) {
	f.handler = handler
}

// Fill спрашивает все поля и отправляет форму. Конец ввода отменяет отправку
func (f *Form) Fill(ctx context.Context) error {
	for _, field := range f.fields {
		value, ok, err := f.console.Prompt(ctx, field.Label)
		if err != nil {
			return err
		}
		if !ok {
			return io.EOF
		}
		f.values[field.Name] = value
	}
	if f.handler != nil {
		f.handler(ctx)
	}
	return nil
}

// Button команда без данных
type Button struct {
	handler func(ctx context.Context)
}

func (b *Button) OnClick(handler func(ctx context.Context)) {
	b.handler = handler
}

func (b *Button) Click(ctx context.Context) {
	if b.handler != nil {
		b.handler(ctx)
	}
}
