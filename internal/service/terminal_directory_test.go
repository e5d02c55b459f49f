package service

import (
	"testing"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalDirectory(t *testing.T) {
	terminals := []model.Terminal{
		{Name: "서울경부", Code: "SEL"},
		{Name: "부산", Code: "BUS"},
		{Name: "강릉", Code: "GAN"},
	}

	d, err := NewTerminalDirectory(terminals)
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, terminals, d.All())

	busan, ok := d.Lookup("BUS")
	assert.True(t, ok)
	assert.Equal(t, "부산", busan.Name)

	_, ok = d.Lookup("POH")
	assert.False(t, ok)
	_, err = d.Get("POH")
	assert.ErrorIs(t, err, ErrTerminalNotFound)
}

func TestTerminalDirectory_Immutable(t *testing.T) {
	terminals := []model.Terminal{{Name: "서울경부", Code: "SEL"}}
	d, err := NewTerminalDirectory(terminals)
	require.NoError(t, err)

	terminals[0].Name = "changed"
	all := d.All()
	all[0].Name = "changed too"

	got, err := d.Get("SEL")
	require.NoError(t, err)
	assert.Equal(t, "서울경부", got.Name)
}

func TestTerminalDirectory_DuplicateCode(t *testing.T) {
	_, err := NewTerminalDirectory([]model.Terminal{
		{Name: "서울경부", Code: "SEL"},
		{Name: "서울", Code: "SEL"},
	})

	assert.ErrorIs(t, err, ErrDuplicateTerminal)
}
