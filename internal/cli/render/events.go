package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// EventsRenderer renders journaled events
type EventsRenderer struct {
	out io.Writer
}

// NewEventsRenderer creates a new events renderer
func NewEventsRenderer(out io.Writer) *EventsRenderer {
	return &EventsRenderer{out: out}
}

// Render implements Renderer
func (r *EventsRenderer) Render(result *usecase.ListEventsResult) error {
	if len(result.Events) == 0 {
		fmt.Fprintln(r.out, "No events found")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"BLOCK", "CONTRACT", "EVENT", "TX"})
	for _, e := range result.Events {
		t.AppendRow(table.Row{
			e.BlockNumber,
			contractLabel(result, e.Address),
			e.Event.String(),
			hashStyle.Sprint(shortHex(e.TxHash.Hex())),
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

func contractLabel(result *usecase.ListEventsResult, addr common.Address) string {
	switch addr {
	case result.Deployment.Registry:
		return "registry"
	case result.Deployment.Proxy:
		return "proxy"
	}
	return addr.Hex()
}

func shortHex(s string) string {
	if len(s) <= 14 {
		return s
	}
	return s[:10] + "…"
}

var _ Renderer[*usecase.ListEventsResult] = (*EventsRenderer)(nil)
