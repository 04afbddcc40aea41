package share

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRText(t *testing.T) {
	out, err := QRText("https://www.agri-one.com/#/invoice/view/INV-1")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestWriteQRPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr.png")
	require.NoError(t, WriteQRPNG("https://www.agri-one.com/#/invoice/view/INV-1", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
