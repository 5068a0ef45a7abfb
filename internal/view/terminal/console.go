// Package terminal консольная реализация view: строка статуса, таблица,
// формы и диалоги поверх одного потока ввода.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/linemk/medicines/internal/view"
)

var _ view.Prompter = (*Console)(nil)

// Console общий ввод/вывод. Все элементы читают из одного bufio.Reader,
// иначе буферизация одного съест строки другого.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	once  sync.Once
	lines chan readResult
}

type readResult struct {
	line string
	err  error
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// ReadLine строка без перевода строки; io.EOF когда ввод закончился.
// Отмена ctx прерывает ожидание: строка, прочитанная позже, достанется следующему вызову.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.once.Do(c.startReader)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-c.lines:
		return res.line, res.err
	}
}

// startReader единственный читатель c.in; строки отдаются по одной по запросу
func (c *Console) startReader() {
	c.lines = make(chan readResult)
	go func() {
		for {
			line, err := c.in.ReadString('\n')
			if err == io.EOF && line != "" {
				err = nil
			}
			c.lines <- readResult{line: strings.TrimRight(line, "\r\n"), err: err}
		}
	}()
}

func (c *Console) Confirm(ctx context.Context, message string) (bool, error) {
	fmt.Fprintf(c.out, "%s [y/N]: ", message)
	line, err := c.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Prompt конец ввода означает закрытый диалог. Пустая строка - это ввод
func (c *Console) Prompt(ctx context.Context, message string) (string, bool, error) {
	fmt.Fprintf(c.out, "%s ", message)
	line, err := c.ReadLine(ctx)
	if err == io.EOF {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return line, true, nil
}

func (c *Console) Alert(_ context.Context, message string) error {
	_, err := fmt.Fprintf(c.out, "! %s\n", message)
	return err
}
