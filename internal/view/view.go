// Package view описывает элементы интерфейса, с которыми работает контроллер:
// строку статуса, таблицу, формы, кнопку обновления и диалоги.
// Реализации: terminal для консоли и mock для тестов.
package view

import "context"

// StatusArea единственный видимый элемент со статусом последней операции
type StatusArea interface {
	SetStatus(text, class string)
}

// Table тело таблицы лекарств
type Table interface {
	Clear()
	AppendRow(row Row)
}

// ActionSource источник событий "действие + ключ" по строкам таблицы
type ActionSource interface {
	OnAction(handler func(ctx context.Context, action Action))
}

// Form форма ввода. Value возвращает сырое значение поля
type Form interface {
	Value(field string) string
	Reset()
	OnSubmit(handler func(ctx context.Context))
}

// Button кнопка без данных (обновить список)
type Button interface {
	OnClick(handler func(ctx context.Context))
}

// Prompter блокирующие диалоги с пользователем.
// Prompt возвращает ok=false, если пользователь закрыл диалог без ввода.
type Prompter interface {
	Confirm(ctx context.Context, message string) (bool, error)
	Prompt(ctx context.Context, message string) (value string, ok bool, err error)
	Alert(ctx context.Context, message string) error
}

// Search поиск одного лекарства по имени
type Search interface {
	OnSearch(handler func(ctx context.Context, name string))
}
