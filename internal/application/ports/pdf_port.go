package ports

import (
	"context"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// ReceiptPDFGenerator puerto de salida para la representación gráfica (PDF) de un comprobante.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *entity.Receipt) ([]byte, error)
}
