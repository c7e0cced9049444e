package service

// QRCodeService generates and parses order receipt QR codes used during
// fulfillment handoff.
type QRCodeService interface {
	// GenerateReceiptQR renders a PNG QR code encoding the order reference.
	GenerateReceiptQR(orderID string, totalPrice int64) ([]byte, error)

	// ParseReceiptQR decodes scanned QR payload back to the order ID.
	ParseReceiptQR(qrData string) (string, error)
}
