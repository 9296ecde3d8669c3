package qrcode

import (
	"bytes"
	"testing"

	"directorio/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeService_GenerateContactQR(t *testing.T) {
	cfg := &config.Config{
		QRCode: &config.QRCodeConfig{
			Size:                 256,
			ErrorCorrectionLevel: "M",
			BaseURL:              "https://directorio.example.com/",
		},
	}

	svc := NewQRCodeService(cfg)

	png, err := svc.GenerateContactQR(uuid.NewString())
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 0x50, 0x4E, 0x47}))
}

func TestQRCodeService_DefaultsWithoutConfig(t *testing.T) {
	svc := NewQRCodeService(&config.Config{})

	png, err := svc.GenerateContactQR(uuid.NewString())
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
