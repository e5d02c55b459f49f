package common

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/phpdave11/gofpdf"
)

// Базовые шрифты PDF не содержат хангыль, поэтому билет печатается латиницей
var companyLatin = map[string]string{
	"중앙고속": "Jungang Express",
	"금호고속": "Kumho Express",
	"동양고속": "Dongyang Express",
	"삼화고속": "Samhwa Express",
	"한일고속": "Hanil Express",
}

var gradeLatin = map[model.Grade]string{
	model.GradePremium:   "Premium",
	model.GradeExcellent: "Excellent",
	model.GradeStandard:  "Standard",
}

// GenerateTicketPDF печатает билет в PDF формата A5
func GenerateTicketPDF(ticket *model.Ticket) ([]byte, error) {
	return renderTicketPDF(ticket, true)
}

func renderTicketPDF(ticket *model.Ticket, compress bool) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetCompression(compress)
	pdf.SetTitle("Express bus ticket "+ticket.ReservationNo, false)
	pdf.SetAuthor("bus_booking_bot", false)
	pdf.SetCreationDate(ticket.IssuedAt)
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pdf.SetFillColor(66, 133, 244)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 12, "EXPRESS BUS TICKET", "", 1, "C", true, 0, "")
	pdf.Ln(3)

	pdf.SetTextColor(20, 24, 28)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s  ->  %s", ticket.Departure.Code, ticket.Arrival.Code), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	rows := [][2]string{
		{"Reservation", ticket.ReservationNo},
		{"Date", ticket.TravelDate.Format("2006-01-02 (Mon)")},
		{"Departure", ticket.DepartureTime},
		{"Arrival", ticket.ArrivalTime},
		{"Operator", latinOr(companyLatin[ticket.Company], "Express bus")},
		{"Class", latinOr(gradeLatin[ticket.Grade], string(ticket.Grade))},
		{"Seats", strings.Join(ticket.Seats, ", ")},
		{"Total", "KRW " + formatting.GroupThousands(ticket.TotalPrice)},
	}

	for _, row := range rows {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(110, 115, 120)
		pdf.CellFormat(30, 7, row[0], "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(20, 24, 28)
		pdf.CellFormat(0, 7, row[1], "B", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Courier", "", 9)
	pdf.MultiCell(0, 5, "QR: "+ticket.QRPayload(), "", "C", false)

	if !ticket.IssuedAt.IsZero() {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(110, 115, 120)
		pdf.CellFormat(0, 6, "Issued "+formatting.FormatDateTime(ticket.IssuedAt), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func latinOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
