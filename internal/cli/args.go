package cli

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/opsgov/internal/app"
	"github.com/trebuchet-org/opsgov/internal/config"
	"github.com/trebuchet-org/opsgov/internal/domain"
)

// parseAccount resolves a hex address or a sender name from the config file
func parseAccount(a *app.App, ref string) (common.Address, error) {
	return config.ResolveAccount(a.Config.File, ref)
}

// parseBytes32 accepts 0x-prefixed hex (left-padded to 32 bytes) or text of at most 32
// bytes, stored left-aligned like a Solidity bytes32 string literal.
func parseBytes32(kind, s string) (common.Hash, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		raw, err := hexutil.Decode(s)
		if err != nil {
			return common.Hash{}, fmt.Errorf("invalid %s %q: %w", kind, s, err)
		}
		if len(raw) > common.HashLength {
			return common.Hash{}, fmt.Errorf("invalid %s %q: longer than 32 bytes", kind, s)
		}
		return common.BytesToHash(raw), nil
	}
	if s == "" {
		return common.Hash{}, fmt.Errorf("invalid %s: empty", kind)
	}
	if len(s) > common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid %s %q: longer than 32 bytes", kind, s)
	}
	var h common.Hash
	copy(h[:], s)
	return h, nil
}

func parseRequestHash(s string) (common.Hash, error) {
	raw, err := hexutil.Decode(s)
	if err != nil || len(raw) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid request hash %q: expected 32 bytes of hex", s)
	}
	return common.BytesToHash(raw), nil
}

func parseTrackFlag(s string) (domain.Track, error) {
	if s == "" {
		return domain.TrackNone, nil
	}
	return domain.ParseTrack(s)
}
