package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/opsgov/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AdminRenderer renders registry and proxy administration results
type AdminRenderer struct {
	out      io.Writer
	receipts *ReceiptRenderer
}

// NewAdminRenderer creates a new admin renderer
func NewAdminRenderer(out io.Writer) *AdminRenderer {
	return &AdminRenderer{out: out, receipts: NewReceiptRenderer(out)}
}

func (r *AdminRenderer) via(relayed bool) string {
	if relayed {
		return labelStyle.Sprint(" (relayed by the proxy)")
	}
	return ""
}

// RenderClient renders a client operation
func (r *AdminRenderer) RenderClient(result *usecase.ManageClientsResult) error {
	var msg string
	switch result.Action {
	case usecase.ClientAdd:
		msg = fmt.Sprintf("Added client %s owned by %s", result.Client, result.Owner.Hex())
	case usecase.ClientSet:
		msg = fmt.Sprintf("Set owner of client %s to %s", result.Client, result.Owner.Hex())
	case usecase.ClientRemove:
		msg = fmt.Sprintf("Removed client %s", result.Client)
	case usecase.ClientTransfer:
		msg = fmt.Sprintf("Transferred client %s to %s", result.Client, result.Owner.Hex())
	case usecase.ClientRequire:
		msg = fmt.Sprintf("Marked client %s as required", result.Client)
		if !result.Required {
			msg = fmt.Sprintf("Marked client %s as not required", result.Client)
		}
	}
	fmt.Fprintln(r.out, FormatSuccess(msg)+r.via(result.Relayed))
	if result.PreviousOwner != result.Owner && result.Action != usecase.ClientAdd && result.Action != usecase.ClientRequire {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("previous owner"), formatAddress(result.PreviousOwner))
	}
	return r.receipts.Render(result.Receipt)
}

// RenderOwnership renders an ownership transfer
func (r *AdminRenderer) RenderOwnership(result *usecase.TransferOwnershipResult) error {
	target := cases.Title(language.English).String(string(result.Target))
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s ownership transferred from %s to %s", target, result.Old.Hex(), result.Now.Hex())))
	return r.receipts.Render(result.Receipt)
}

// RenderFork renders a fork ratification
func (r *AdminRenderer) RenderFork(result *usecase.RatifyForkResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Ratified fork %d", result.ForkNumber))+r.via(result.Relayed))
	return r.receipts.Render(result.Receipt)
}

// RenderTrack renders a track role change
func (r *AdminRenderer) RenderTrack(result *usecase.ConfigureTrackResult) error {
	role := cases.Title(language.English).String(string(result.Role))
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s of %s set to %s", role, result.Track, formatAddress(result.Now))))
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("was"), formatAddress(result.Was))
	return r.receipts.Render(result.Receipt)
}

// RenderRelay renders a relayed call
func (r *AdminRenderer) RenderRelay(result *usecase.RelayCallResult) error {
	fmt.Fprintln(r.out, FormatSuccess("Relayed "+result.Description))
	if len(result.ReturnData) > 0 {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("returned"), result.ReturnData.String())
	}
	return r.receipts.Render(result.Receipt)
}

// RenderInit renders a new ledger
func (r *AdminRenderer) RenderInit(result *usecase.InitLedgerResult) error {
	fmt.Fprintln(r.out, FormatSuccess("Ledger initialized"))
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("registry"), formatAddress(result.Deployment.Registry))
	if result.Deployment.HasProxy() {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("proxy   "), formatAddress(result.Deployment.Proxy))
	}
	fmt.Fprintln(r.out)
	return r.receipts.RenderAll(result.Receipts)
}
