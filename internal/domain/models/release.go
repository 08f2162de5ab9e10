package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
)

// Release is an attested release of a client
type Release struct {
	ForkBlock uint32        `json:"forkBlock"`
	Track     domain.Track  `json:"track"`
	Semver    domain.Semver `json:"semver"`
	Critical  bool          `json:"critical"`
}

// IsZero reports whether r is the empty sentinel returned for unknown releases
func (r Release) IsZero() bool {
	return r == Release{}
}

// Build locates the release and platform a checksum was recorded for
type Build struct {
	Release  common.Hash `json:"release"`
	Platform common.Hash `json:"platform"`
}

// IsZero reports whether b is the empty sentinel returned for unknown checksums
func (b Build) IsZero() bool {
	return b == Build{}
}
