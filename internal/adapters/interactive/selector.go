package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// ErrNonInteractive is returned when a selection is needed but prompts are disabled
var ErrNonInteractive = fmt.Errorf("interactive selection not available in non-interactive mode")

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectRequest lets the operator pick one of the waiting requests
func (s *SelectorAdapter) SelectRequest(ctx context.Context, prompt string, requests []*usecase.RequestView) (*usecase.RequestView, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("no waiting requests to select from")
	}
	if len(requests) == 1 {
		return requests[0], nil
	}
	if s.config.NonInteractive {
		return nil, ErrNonInteractive
	}

	options := formatRequestOptions(requests)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select, / to search"),
	}

	promptSelect := promptui.Select{
		Label:     prompt,
		Items:     options,
		Templates: templates,
		Size:      10,
		Searcher:  createFuzzySearchFunc(plainRequestOptions(requests)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return requests[index], nil
}

// Confirm asks a yes/no question. Without a terminal the answer is yes.
func (s *SelectorAdapter) Confirm(label string) bool {
	if s.config.NonInteractive {
		return true
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

// formatRequestOptions renders "[track] description (hash)" lines
func formatRequestOptions(requests []*usecase.RequestView) []string {
	options := make([]string, len(requests))
	for i, req := range requests {
		track := color.New(color.FgMagenta).Sprintf("[%s]", req.Track)
		desc := color.New(color.FgWhite, color.Bold).Sprint(req.Description)
		hash := color.New(color.FgBlue).Sprint(shortHash(req.Hash.Hex()))
		options[i] = fmt.Sprintf("%s %s (%s)", track, desc, hash)
	}
	return options
}

func plainRequestOptions(requests []*usecase.RequestView) []string {
	options := make([]string, len(requests))
	for i, req := range requests {
		options[i] = fmt.Sprintf("%s %s %s %s", req.Track, req.Description, req.Hash.Hex(), req.ProposedBy.Hex())
	}
	return options
}

func shortHash(h string) string {
	if len(h) <= 14 {
		return h
	}
	return h[:10] + "…" + h[len(h)-4:]
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.RequestSelector = (*SelectorAdapter)(nil)
