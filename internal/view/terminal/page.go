package terminal

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/linemk/medicines/internal/view"
)

const (
	cmdList    = "list"
	cmdRefresh = "refresh"
	cmdCreate  = "create"
	cmdUpdate  = "update"
	cmdDelete  = "delete"
	cmdPrice   = "price"
	cmdShow    = "show"
	cmdHelp    = "help"
	cmdQuit    = "quit"
)

const helpText = `commands:
  list | refresh     reload the table
  create             add a medicine
  update             replace the price of a medicine by name
  delete <row>       delete the medicine in row <row>
  price <row>        change the price of the medicine in row <row>
  show <name>        look up one medicine
  help               this text
  quit               exit
`

var _ view.Search = (*Page)(nil)

// Page все элементы консольной страницы и цикл команд
type Page struct {
	Console    *Console
	Status     *StatusLine
	Table      *Table
	CreateForm *Form
	UpdateForm *Form
	Refresh    *Button

	search func(ctx context.Context, name string)
}

// NewPage собирает страницу с полями форм, которые ждёт контроллер
func NewPage(in io.Reader, out io.Writer) *Page {
	console := NewConsole(in, out)
	return &Page{
		Console: console,
		Status:  NewStatusLine(console),
		Table:   NewTable(console),
		CreateForm: NewForm(console,
			FormField{Name: "name", Label: "Name:"},
			FormField{Name: "price", Label: "Price:"},
		),
		UpdateForm: NewForm(console,
			FormField{Name: "update-name", Label: "Name:"},
			FormField{Name: "update-price", Label: "New price:"},
		),
		Refresh: &Button{},
	}
}

func (p *Page) OnSearch(handler func(ctx context.Context, name string)) {
	p.search = handler
}

// Run читает команды до quit, конца ввода или отмены контекста.
// Команды выполняются строго по одной.
func (p *Page) Run(ctx context.Context) error {
	fmt.Fprint(p.Console.out, helpText)
	for {
		fmt.Fprint(p.Console.out, "> ")
		line, err := p.Console.ReadLine(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == cmdQuit || fields[0] == "exit" {
			return nil
		}
		if err := p.exec(ctx, fields[0], fields[1:]); err != nil {
			if err == io.EOF {
				return nil
			}
			fmt.Fprintf(p.Console.out, "error: %v\n", err)
		}
	}
}

func (p *Page) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case cmdList, cmdRefresh:
		p.Refresh.Click(ctx)
	case cmdCreate:
		return p.CreateForm.Fill(ctx)
	case cmdUpdate:
		return p.UpdateForm.Fill(ctx)
	case cmdDelete:
		return p.trigger(ctx, args, view.ActionDelete)
	case cmdPrice:
		return p.trigger(ctx, args, view.ActionChangePrice)
	case cmdShow:
		name := strings.Join(args, " ")
		if name == "" {
			return fmt.Errorf("usage: show <name>")
		}
		if p.search == nil {
			return fmt.Errorf("search is not bound")
		}
		p.search(ctx, name)
	case cmdHelp:
		fmt.Fprint(p.Console.out, helpText)
	default:
		return fmt.Errorf("unknown command %q, type help", cmd)
	}
	return nil
}

func (p *Page) trigger(ctx context.Context, args []string, kind view.ActionKind) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <row>", commandFor(kind))
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("row must be a number: %w", err)
	}
	return p.Table.Trigger(ctx, number, kind)
}
