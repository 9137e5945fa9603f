package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/royalcourier/backoffice-backend/internal/models"
)

// GenerateReceiptPDF renders the printable receipt for a freshly created
// shipment. The layout mirrors the paper slips branch staff hand to senders:
// waybill number up top, sender/receiver block, then the charges.
func GenerateReceiptPDF(shipment *models.Shipment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Shipment Receipt "+shipment.WaybillNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Royal Courier", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Shipment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Waybill: "+shipment.WaybillNumber, "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}

	row("Date", shipment.CreatedAt.Format(time.RFC822))
	row("Sender", shipment.SenderName)
	row("Sender Phone", shipment.SenderPhoneNumber)
	row("Receiver", shipment.ReceiverName)
	row("Receiver Address", shipment.ReceiverAddress)
	row("Receiver Phone", shipment.ReceiverPhone)
	row("Description", shipment.Description)
	row("Delivery Type", shipment.DeliveryType)
	row("Route", fmt.Sprintf("%s -> %s", shipment.OriginState, shipment.DestinationState))
	row("Weight", fmt.Sprintf("%.2f kg", shipment.Weight))
	row("Category", shipment.Category)
	row("Item Condition", shipment.ItemCondition)
	row("Branch", shipment.BranchName)
	pdf.Ln(2)

	row("Insurance", fmt.Sprintf("%.2f", shipment.InsuranceAmount))
	row("Total Price", fmt.Sprintf("%.2f", shipment.TotalPrice))
	row("Amount Paid", fmt.Sprintf("%.2f", shipment.AmountPaid))
	row("Payment Method", shipment.PaymentMethod)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Keep this receipt. The waybill number is required to track your shipment.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt PDF: %v", err)
	}
	return buf.Bytes(), nil
}
