package service

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
)

var (
	ErrTerminalNotFound  = errors.New("terminal not found")
	ErrDuplicateTerminal = errors.New("duplicate terminal code")
)

// TerminalDirectory неизменяемый справочник автовокзалов на время сессии
type TerminalDirectory struct {
	terminals []model.Terminal
	byCode    map[string]int
}

// NewTerminalDirectory строит справочник, сохраняя порядок. Повтор кода это ошибка
func NewTerminalDirectory(terminals []model.Terminal) (*TerminalDirectory, error) {
	d := &TerminalDirectory{
		terminals: slices.Clone(terminals),
		byCode:    make(map[string]int, len(terminals)),
	}
	for i, t := range d.terminals {
		if _, exists := d.byCode[t.Code]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTerminal, t.Code)
		}
		d.byCode[t.Code] = i
	}
	return d, nil
}

// Lookup ищет автовокзал по коду
func (d *TerminalDirectory) Lookup(code string) (model.Terminal, bool) {
	i, ok := d.byCode[code]
	if !ok {
		return model.Terminal{}, false
	}
	return d.terminals[i], true
}

// Get как Lookup, но с ошибкой
func (d *TerminalDirectory) Get(code string) (model.Terminal, error) {
	t, ok := d.Lookup(code)
	if !ok {
		return model.Terminal{}, fmt.Errorf("%w: %s", ErrTerminalNotFound, code)
	}
	return t, nil
}

// All копия списка в исходном порядке
func (d *TerminalDirectory) All() []model.Terminal {
	return slices.Clone(d.terminals)
}

// Len размер справочника
func (d *TerminalDirectory) Len() int {
	return len(d.terminals)
}
