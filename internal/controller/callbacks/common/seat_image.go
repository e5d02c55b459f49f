package common

import (
	"bytes"
	"image/color"

	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	seatCellSize     = 56.0
	seatGap          = 10.0
	seatMarginX      = 40.0
	seatHeaderHeight = 90.0
	seatLegendHeight = 70.0
	seatBorderRadius = 8.0
	seatMinWidth     = 420
	seatTextScale    = 2.0
)

// Цветовая схема
var (
	seatBgColor       = color.RGBA{245, 246, 248, 255}
	seatTextColor     = color.RGBA{80, 85, 90, 255}
	seatFreeColor     = color.RGBA{133, 193, 85, 230}
	seatTakenColor    = color.RGBA{190, 190, 190, 255}
	seatSelectedColor = color.RGBA{66, 133, 244, 255}
	seatLabelColor    = color.RGBA{20, 24, 28, 230}
	seatFrontColor    = color.RGBA{110, 115, 120, 200}
)

// SeatImageSize размер картинки для схемы
func SeatImageSize(layout wizard.Layout) (int, int) {
	width := int(seatMarginX*2 + float64(layout.Cols)*(seatCellSize+seatGap) - seatGap)
	if width < seatMinWidth {
		width = seatMinWidth
	}
	height := int(seatHeaderHeight + float64(layout.Rows)*(seatCellSize+seatGap) + seatLegendHeight)
	return width, height
}

// GenerateSeatImage рисует схему салона: свободные, занятые и выбранные места.
// title печатается латиницей, встроенный шрифт не содержит хангыль
func GenerateSeatImage(layout wizard.Layout, occupied wizard.OccupiedSet, selected []string, title string) ([]byte, error) {
	width, height := SeatImageSize(layout)

	dc := gg.NewContext(width, height)
	dc.SetColor(seatBgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	chosen := make(map[string]bool, len(selected))
	for _, label := range selected {
		chosen[label] = true
	}

	drawSeatHeader(dc, float64(width), title)

	gridWidth := float64(layout.Cols)*(seatCellSize+seatGap) - seatGap
	left := (float64(width) - gridWidth) / 2

	for r, row := range layout.Grid {
		y := seatHeaderHeight + float64(r)*(seatCellSize+seatGap)
		for c, label := range row {
			if label == "" {
				continue
			}
			x := left + float64(c)*(seatCellSize+seatGap)

			fill := seatFreeColor
			switch {
			case chosen[label]:
				fill = seatSelectedColor
			case occupied.Has(label):
				fill = seatTakenColor
			}
			drawSeat(dc, x, y, fill, label)
		}
	}

	drawSeatLegend(dc, float64(height)-seatLegendHeight+20)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawSeatHeader(dc *gg.Context, width float64, title string) {
	drawScaledString(dc, title, width/2, 28, seatTextColor)

	// Водитель и перед автобуса
	dc.SetColor(seatFrontColor)
	dc.SetLineWidth(2)
	dc.DrawLine(seatMarginX, 60, width-seatMarginX, 60)
	dc.Stroke()
	drawScaledString(dc, "FRONT", width-seatMarginX-40, 46, seatFrontColor)
}

func drawSeat(dc *gg.Context, x, y float64, fill color.RGBA, label string) {
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, seatCellSize, seatCellSize, seatBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, seatCellSize, seatCellSize, seatBorderRadius)
	dc.Stroke()

	drawScaledString(dc, label, x+seatCellSize/2, y+seatCellSize/2, seatLabelColor)
}

func drawSeatLegend(dc *gg.Context, y float64) {
	items := []struct {
		label string
		clr   color.RGBA
	}{
		{"FREE", seatFreeColor},
		{"TAKEN", seatTakenColor},
		{"MINE", seatSelectedColor},
	}

	x := seatMarginX
	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, 24, 18, 3)
		dc.Fill()
		drawScaledString(dc, item.label, x+24+40, y+9, seatTextColor)
		x += 120
	}
}

// drawScaledString рисует текст встроенным шрифтом, увеличенным в seatTextScale раз
func drawScaledString(dc *gg.Context, s string, x, y float64, clr color.Color) {
	dc.Push()
	dc.SetColor(clr)
	dc.ScaleAbout(seatTextScale, seatTextScale, x, y)
	dc.DrawStringAnchored(s, x, y, 0.5, 0.35)
	dc.Pop()
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
