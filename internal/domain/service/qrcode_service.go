package service

// QRCodeService defines the interface for generating QR codes that point at a
// professional's public contact card.
type QRCodeService interface {
	// GenerateContactQR returns a PNG image encoding the contact URL for the
	// given profile id.
	GenerateContactQR(profileID string) ([]byte, error)
}
