// Package mock реализует элементы view в памяти: записывает вывод и
// проигрывает заранее заданные ответы пользователя.
package mock

import (
	"context"
	"errors"

	"github.com/linemk/medicines/internal/view"
)

var (
	_ view.StatusArea   = (*StatusArea)(nil)
	_ view.Table        = (*Table)(nil)
	_ view.ActionSource = (*Table)(nil)
	_ view.Form         = (*Form)(nil)
	_ view.Button       = (*Button)(nil)
	_ view.Prompter     = (*Prompter)(nil)
	_ view.Search       = (*Search)(nil)
)

// ErrScriptExhausted ответов в сценарии больше нет
var ErrScriptExhausted = errors.New("mock: prompter script exhausted")

// StatusArea запоминает последний статус и историю
type StatusArea struct {
	Text    string
	Class   string
	History []string
}

func (s *StatusArea) SetStatus(text, class string) {
	s.Text = text
	s.Class = class
	s.History = append(s.History, text)
}

// Table хранит отрисованные строки
type Table struct {
	Rows    []view.Row
	Clears  int
	handler func(ctx context.Context, action view.Action)
}

func (t *Table) Clear() {
	t.Rows = nil
	t.Clears++
}

func (t *Table) AppendRow(row view.Row) {
	t.Rows = append(t.Rows, row)
}

func (t *Table) OnAction(handler func(ctx context.Context, action view.Action)) {
	t.handler = handler
}

// Click нажимает кнопку kind в строке index, как это сделал бы пользователь
func (t *Table) Click(ctx context.Context, index int, kind view.ActionKind) bool {
	if t.handler == nil || index < 0 || index >= len(t.Rows) {
		return false
	}
	action, ok := t.Rows[index].Action(kind)
	if !ok {
		return false
	}
	t.handler(ctx, action)
	return true
}

// Form поля формы в map
type Form struct {
	Values  map[string]string
	Resets  int
	handler func(ctx context.Context)
}

func NewForm(values map[string]string) *Form {
	if values == nil {
		values = make(map[string]string)
	}
	return &Form{Values: values}
}

func (f *Form) Value(field string) string {
	return f.Values[field]
}

func (f *Form) Reset() {
	f.Values = make(map[string]string)
	f.Resets++
}

func (f *Form) OnSubmit(handler func(ctx context.Context)) {
	f.handler = handler
}

// Submit отправляет форму; false, если обработчик не привязан
func (f *Form) Submit(ctx context.Context) bool {
	if f.handler == nil {
		return false
	}
	f.handler(ctx)
	return true
}

// Button кнопка с ручным нажатием
type Button struct {
	handler func(ctx context.Context)
}

func (b *Button) OnClick(handler func(ctx context.Context)) {
	b.handler = handler
}

func (b *Button) Click(ctx context.Context) bool {
	if b.handler == nil {
		return false
	}
	b.handler(ctx)
	return true
}

// Search поле поиска по имени
type Search struct {
	handler func(ctx context.Context, name string)
}

func (s *Search) OnSearch(handler func(ctx context.Context, name string)) {
	s.handler = handler
}

func (s *Search) Query(ctx context.Context, name string) bool {
	if s.handler == nil {
		return false
	}
	s.handler(ctx, name)
	return true
}

// Answer ответ на Prompt; Dismissed - диалог закрыт без ввода
type Answer struct {
	Value     string
	Dismissed bool
}

// Prompter проигрывает Confirms и Answers по порядку и записывает все вопросы
type Prompter struct {
	Confirms []bool
	Answers  []Answer

	ConfirmMessages []string
	PromptMessages  []string
	Alerts          []string
}

func (p *Prompter) Confirm(_ context.Context, message string) (bool, error) {
	p.ConfirmMessages = append(p.ConfirmMessages, message)
	if len(p.Confirms) == 0 {
		return false, ErrScriptExhausted
	}
	answer := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return answer, nil
}

func (p *Prompter) Prompt(_ context.Context, message string) (string, bool, error) {
	p.PromptMessages = append(p.PromptMessages, message)
	if len(p.Answers) == 0 {
		return "", false, ErrScriptExhausted
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	if answer.Dismissed {
		return "", false, nil
	}
	return answer.Value, true, nil
}

func (p *Prompter) Alert(_ context.Context, message string) error {
	p.Alerts = append(p.Alerts, message)
	return nil
}
