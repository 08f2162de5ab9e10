package render

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	labelStyle   = color.New(color.Faint)
	addressStyle = color.New(color.FgWhite)
	hashStyle    = color.New(color.FgBlue)
	trackStyle   = color.New(color.FgMagenta)
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	pendingStyle = color.New(color.FgYellow)
	okStyle      = color.New(color.FgGreen)
	failStyle    = color.New(color.FgRed)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Keep only the innermost cause of an error chain
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// formatAddress renders addr, or "-" for the zero address
func formatAddress(addr common.Address) string {
	if addr == (common.Address{}) {
		return labelStyle.Sprint("-")
	}
	return addressStyle.Sprint(addr.Hex())
}

func formatHash(h common.Hash) string {
	if h == (common.Hash{}) {
		return labelStyle.Sprint("-")
	}
	return hashStyle.Sprint(h.Hex())
}

func formatYesNo(v bool) string {
	if v {
		return okStyle.Sprint("yes")
	}
	return labelStyle.Sprint("no")
}

// newTable creates a borderless table in the CLI's list style
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Options.SeparateHeader = true
	t.Style().Box.PaddingRight = "  "
	t.Style().Format.Header = text.FormatDefault
	return t
}
