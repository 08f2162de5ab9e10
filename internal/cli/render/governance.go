package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// ProposalRenderer renders the outcome of a proposal
type ProposalRenderer struct {
	out      io.Writer
	receipts *ReceiptRenderer
}

// NewProposalRenderer creates a new proposal renderer
func NewProposalRenderer(out io.Writer) *ProposalRenderer {
	return &ProposalRenderer{out: out, receipts: NewReceiptRenderer(out)}
}

// Render implements Renderer
func (r *ProposalRenderer) Render(result *usecase.ProposalResult) error {
	switch {
	case result.Waiting:
		fmt.Fprintln(r.out, pendingStyle.Sprintf("⏳ Request waiting for the %s confirmer", result.Track))
	case result.Success:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Executed on the registry (%s)", trackLabel(result.Track, result.Direct))))
	default:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Accepted without confirmation but the registry call failed (%s)", trackLabel(result.Track, result.Direct))))
	}
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("call"), result.Description)
	if !result.Direct {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("request"), formatHash(result.Hash))
	}
	return r.receipts.Render(result.Receipt)
}

func trackLabel(track domain.Track, direct bool) string {
	if direct {
		return "direct"
	}
	return "track " + track.String()
}

// ResolveRenderer renders a confirmed or rejected request
type ResolveRenderer struct {
	out      io.Writer
	receipts *ReceiptRenderer
}

// NewResolveRenderer creates a new resolve renderer
func NewResolveRenderer(out io.Writer) *ResolveRenderer {
	return &ResolveRenderer{out: out, receipts: NewReceiptRenderer(out)}
}

// Render implements Renderer
func (r *ResolveRenderer) Render(result *usecase.ResolveRequestResult) error {
	switch {
	case result.Rejected:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Rejected request %s on %s", result.Hash.Hex(), result.Track)))
	case result.Success:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Confirmed request %s on %s", result.Hash.Hex(), result.Track)))
	default:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Confirmed request %s on %s but the registry call failed", result.Hash.Hex(), result.Track)))
	}
	if result.Request != nil {
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("call"), result.Request.Description)
	}
	return r.receipts.Render(result.Receipt)
}

// RequestsRenderer renders waiting requests
type RequestsRenderer struct {
	out io.Writer
}

// NewRequestsRenderer creates a new requests renderer
func NewRequestsRenderer(out io.Writer) *RequestsRenderer {
	return &RequestsRenderer{out: out}
}

// Render implements Renderer
func (r *RequestsRenderer) Render(result *usecase.ListRequestsResult) error {
	if len(result.Requests) == 0 {
		fmt.Fprintln(r.out, "No requests waiting for confirmation")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"TRACK", "REQUEST", "CALL", "PROPOSER", "BLOCK"})
	for _, req := range result.Requests {
		t.AppendRow(table.Row{
			trackStyle.Sprint(req.Track.String()),
			formatHash(req.Hash),
			req.Description,
			formatAddress(req.ProposedBy),
			req.ProposedAt,
		})
	}
	fmt.Fprintln(r.out, t.Render())

	tracks := lo.Keys(result.ByTrack)
	sort.Slice(tracks, func(i, j int) bool { return tracks[i] < tracks[j] })
	summary := lo.Map(tracks, func(track domain.Track, _ int) string {
		return track.String() + "=" + strconv.Itoa(result.ByTrack[track])
	})
	fmt.Fprintf(r.out, "\n%d waiting (%s)\n", len(result.Requests), strings.Join(summary, ", "))
	return nil
}

// TracksRenderer renders track assignments
type TracksRenderer struct {
	out io.Writer
}

// NewTracksRenderer creates a new tracks renderer
func NewTracksRenderer(out io.Writer) *TracksRenderer {
	return &TracksRenderer{out: out}
}

// Render implements Renderer
func (r *TracksRenderer) Render(assignments []models.TrackAssignment) error {
	t := newTable()
	t.AppendHeader(table.Row{"TRACK", "DELEGATE", "CONFIRMER", "MODE"})
	for _, a := range assignments {
		mode := okStyle.Sprint("immediate")
		if a.RequiresConfirmation() {
			mode = pendingStyle.Sprint("confirmed")
		}
		t.AppendRow(table.Row{
			trackStyle.Sprint(a.Track.String()),
			formatAddress(a.Delegate),
			formatAddress(a.Confirmer),
			mode,
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

var (
	_ Renderer[*usecase.ProposalResult]       = (*ProposalRenderer)(nil)
	_ Renderer[*usecase.ResolveRequestResult] = (*ResolveRenderer)(nil)
	_ Renderer[*usecase.ListRequestsResult]   = (*RequestsRenderer)(nil)
	_ Renderer[[]models.TrackAssignment]      = (*TracksRenderer)(nil)
)
