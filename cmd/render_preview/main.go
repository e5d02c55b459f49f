package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/bus_booking_bot/internal/gateway"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/schedule"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/google/uuid"
)

// Рисует схему салона и PDF билета для первого рейса Сеул → Пусан на завтра
func main() {
	outDir := "."
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	rng := rand.New(rand.NewPCG(1, 2))
	departure, arrival := gateway.MockTerminals[0], gateway.MockTerminals[3]
	date := wizard.Midnight(time.Now()).AddDate(0, 0, 1)

	schedules, err := schedule.NewSynthesizer(rng).Generate(departure.Code, arrival.Code, date.Format("2006-01-02"))
	if err != nil {
		fmt.Printf("Ошибка генерации рейсов: %v\n", err)
		os.Exit(1)
	}
	bus := schedules[0]

	layout := wizard.GenerateLayout(bus.Grade, bus.TotalSeats)
	occupied := wizard.SynthesizeOccupied(bus.TotalSeats, bus.AvailableSeats, rng)

	// Берём два первых свободных места
	selection := wizard.NewSelection()
	for _, label := range layout.Seats() {
		if selection.Len() == 2 {
			break
		}
		selection.Toggle(label, occupied.Has(label))
	}

	title := fmt.Sprintf("%s -> %s  %s", departure.Code, arrival.Code, bus.DepartureTime)
	imageData, err := common.GenerateSeatImage(layout, occupied, selection.Labels(), title)
	if err != nil {
		fmt.Printf("Ошибка генерации схемы: %v\n", err)
		os.Exit(1)
	}
	write(filepath.Join(outDir, "seats.png"), imageData)

	total := selection.TotalPrice(bus.Price)
	ticket, err := model.NewTicket(uuid.New(), 0, model.BookingDetails{
		Departure:  &departure,
		Arrival:    &arrival,
		Date:       &date,
		Bus:        &bus,
		Seats:      selection.Labels(),
		TotalPrice: &total,
	})
	if err != nil {
		fmt.Printf("Ошибка сборки билета: %v\n", err)
		os.Exit(1)
	}

	pdfData, err := common.GenerateTicketPDF(ticket)
	if err != nil {
		fmt.Printf("Ошибка генерации PDF: %v\n", err)
		os.Exit(1)
	}
	write(filepath.Join(outDir, "ticket.pdf"), pdfData)

	fmt.Printf("🚌 Рейс: %s %s → %s, %s\n", bus.Company, bus.DepartureTime, bus.ArrivalTime, bus.Grade.Label())
	fmt.Printf("💺 Места: %v, занято %d из %d\n", selection.Labels(), len(occupied), bus.TotalSeats)
	fmt.Printf("🎫 Бронь: %s\n", ticket.ReservationNo)
}

func write(filename string, data []byte) {
	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Сохранено в %s\n", filename)
}
