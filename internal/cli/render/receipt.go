package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// ReceiptRenderer prints committed transactions and their events
type ReceiptRenderer struct {
	out io.Writer
}

// NewReceiptRenderer creates a new receipt renderer
func NewReceiptRenderer(out io.Writer) *ReceiptRenderer {
	return &ReceiptRenderer{out: out}
}

// Render implements Renderer
func (r *ReceiptRenderer) Render(receipt *models.Receipt) error {
	if receipt == nil {
		return nil
	}
	status := okStyle.Sprint("success")
	if !receipt.Succeeded() {
		status = failStyle.Sprint("reverted")
	}
	fmt.Fprintf(r.out, "  %s %s %s %d %s\n",
		labelStyle.Sprint("tx"), hashStyle.Sprint(receipt.TxHash.Hex()),
		labelStyle.Sprint("block"), receipt.BlockNumber, status)
	if receipt.Error != "" {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("error"), failStyle.Sprint(receipt.Error))
	}
	for _, log := range receipt.Logs {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("└─"), log.Event.String())
	}
	return nil
}

// RenderAll renders each receipt in order
func (r *ReceiptRenderer) RenderAll(receipts []*models.Receipt) error {
	for _, receipt := range receipts {
		if err := r.Render(receipt); err != nil {
			return err
		}
	}
	return nil
}

var _ Renderer[*models.Receipt] = (*ReceiptRenderer)(nil)
