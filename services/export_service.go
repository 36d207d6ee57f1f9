package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"lodge-backend/models"
)

const exportSheet = "Bookings"

var exportHeaders = []string{
	"Booking ID", "Lodge", "Room", "Units", "Check-in", "Check-out",
	"Guests", "Customer", "Mobile", "Status", "Payment", "Amount", "Created",
}

// BookingsWorkbook renders bookings into a spreadsheet for the back office.
// Pure builder so it can be exercised without a database.
func BookingsWorkbook(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	// Drop the default sheet so the workbook opens on the data.
	_ = f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating style: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
		f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	for row, b := range bookings {
		values := []interface{}{
			b.BookingRef,
			b.LodgeName,
			b.RoomName,
			b.RoomUnits,
			b.CheckIn.Format("2006-01-02"),
			b.CheckOut.Format("2006-01-02"),
			b.Guests,
			b.CustomerName,
			b.CustomerMobile,
			b.Status,
			b.PaymentStatus,
			b.TotalAmount,
			b.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	return f, nil
}
