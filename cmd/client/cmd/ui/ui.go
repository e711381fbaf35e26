// Package ui - оформление вывода и ввод из терминала.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"querytrack/internal/app/client"
	"querytrack/internal/domain/query"
)

var (
	Success = color.New(color.FgGreen).SprintFunc()
	Warning = color.New(color.FgYellow).SprintFunc()
	Failure = color.New(color.FgRed, color.Bold).SprintFunc()
	Muted   = color.New(color.FgHiBlack).SprintFunc()
	Header  = color.New(color.Bold).SprintFunc()
)

var palette = map[string]*color.Color{
	"yellow": color.New(color.FgYellow),
	"blue":   color.New(color.FgBlue),
	"green":  color.New(color.FgGreen),
	"gray":   color.New(color.FgHiBlack),
	"orange": color.New(color.FgHiYellow),
	"red":    color.New(color.FgRed),
}

// Paint раскрашивает подпись стиля; неизвестный цвет выводится как есть.
func Paint(s query.Style) string {
	if c, ok := palette[s.Color]; ok {
		return c.Sprint(s.Label)
	}
	return s.Label
}

func Status(s query.Status) string {
	style := s.Style()
	if style.Label == "" {
		return string(s)
	}
	return Paint(style)
}

func Priority(p query.Priority) string {
	style := p.Style()
	if style.Label == "" {
		return string(p)
	}
	return Paint(style)
}

// Notify переводит ошибку клиента в одну понятную строку.
func Notify(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthenticated):
		return "Вы не вошли в систему. Выполните: querytrack auth login"
	case errors.Is(err, client.ErrNotFound):
		return "Не найдено: " + err.Error()
	case errors.Is(err, client.ErrValidation):
		return "Некорректные данные: " + err.Error()
	case errors.Is(err, client.ErrConflict):
		return "Уже существует: " + err.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "Сервер недоступен: " + err.Error()
	default:
		return err.Error()
	}
}

var stdin = bufio.NewReader(os.Stdin)

// Prompt читает строку после приглашения.
func Prompt(label string) (string, error) {
	fmt.Print(label)
	return readLine(stdin)
}

// Secret читает строку без эха, если stdin - терминал.
func Secret(label string) (string, error) {
	fmt.Print(label)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(stdin)
	}

	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(b), nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}
