package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ClientName identifies a client as a bytes32 value: UTF-8 text right-padded with zeros.
type ClientName [32]byte

// ParseClientName converts text into a ClientName. A 0x-prefixed 64 digit hex string is
// taken as the raw bytes32 value.
func ParseClientName(s string) (ClientName, error) {
	var name ClientName
	if strings.HasPrefix(s, "0x") && len(s) == 66 {
		raw, err := hexutil.Decode(s)
		if err != nil {
			return name, fmt.Errorf("%w: %v", ErrInvalidClientName, err)
		}
		copy(name[:], raw)
		if name.IsZero() {
			return name, fmt.Errorf("%w: zero name", ErrInvalidClientName)
		}
		return name, nil
	}
	if s == "" {
		return name, fmt.Errorf("%w: empty name", ErrInvalidClientName)
	}
	if len(s) > len(name) {
		return name, fmt.Errorf("%w: %q is longer than 32 bytes", ErrInvalidClientName, s)
	}
	copy(name[:], s)
	return name, nil
}

// MustClientName is ParseClientName for constants and tests.
func MustClientName(s string) ClientName {
	name, err := ParseClientName(s)
	if err != nil {
		panic(err)
	}
	return name
}

// IsZero reports whether the name is the empty bytes32 value.
func (n ClientName) IsZero() bool {
	return n == ClientName{}
}

// String returns the name as text when it is printable, otherwise as hex.
func (n ClientName) String() string {
	trimmed := bytes.TrimRight(n[:], "\x00")
	if len(trimmed) == 0 {
		return ""
	}
	if utf8.Valid(trimmed) && strings.IndexFunc(string(trimmed), func(r rune) bool {
		return !unicode.IsPrint(r)
	}) == -1 {
		return string(trimmed)
	}
	return n.Hex()
}

// Hex returns the 0x-prefixed bytes32 encoding.
func (n ClientName) Hex() string {
	return hexutil.Encode(n[:])
}

// Hash returns the name as a common.Hash.
func (n ClientName) Hash() common.Hash {
	return common.Hash(n)
}

// MarshalText encodes the name as 0x-prefixed hex of all 32 bytes.
func (n ClientName) MarshalText() ([]byte, error) {
	return []byte(n.Hex()), nil
}

// UnmarshalText decodes the 32-byte hex form written by MarshalText.
func (n *ClientName) UnmarshalText(text []byte) error {
	raw, err := hexutil.Decode(string(text))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidClientName, err)
	}
	if len(raw) != len(n) {
		return fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidClientName, len(raw))
	}
	copy(n[:], raw)
	return nil
}

// Track is a release channel.
type Track uint8

const (
	TrackNone    Track = 0
	TrackStable  Track = 1
	TrackBeta    Track = 2
	TrackNightly Track = 3
)

var trackNames = map[Track]string{
	TrackStable:  "stable",
	TrackBeta:    "beta",
	TrackNightly: "nightly",
}

// DefaultTracks are the tracks a fresh proxy is configured with.
var DefaultTracks = []Track{TrackStable, TrackBeta, TrackNightly}

func (t Track) String() string {
	if name, ok := trackNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// ParseTrack accepts a track name ("stable", "beta", "nightly") or a positive number.
func ParseTrack(s string) (Track, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for track, name := range trackNames {
		if name == s {
			return track, nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n == 0 {
		return TrackNone, fmt.Errorf("%w: %q", ErrInvalidTrack, s)
	}
	return Track(n), nil
}

// Semver is a semantic version packed as major<<16 | minor<<8 | patch (a uint24).
type Semver uint32

// MaxSemver is the largest value a uint24 can hold.
const MaxSemver Semver = 1<<24 - 1

// NewSemver packs a version.
func NewSemver(major, minor, patch uint8) Semver {
	return Semver(major)<<16 | Semver(minor)<<8 | Semver(patch)
}

// ParseSemver parses "major.minor.patch" (an optional leading "v" is ignored) or a raw
// packed integer.
func ParseSemver(s string) (Semver, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(s, ".")
	if len(parts) == 1 {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil || Semver(n) > MaxSemver {
			return 0, fmt.Errorf("invalid semver %q", s)
		}
		return Semver(n), nil
	}
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid semver %q: expected major.minor.patch", s)
	}
	var fields [3]uint8
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid semver %q: %w", s, err)
		}
		fields[i] = uint8(n)
	}
	return NewSemver(fields[0], fields[1], fields[2]), nil
}

func (v Semver) Major() uint8 { return uint8(v >> 16) }
func (v Semver) Minor() uint8 { return uint8(v >> 8) }
func (v Semver) Patch() uint8 { return uint8(v) }

func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}
