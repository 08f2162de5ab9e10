package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// maxSuggestions caps the "did you mean" list for unknown clients
const maxSuggestions = 3

// ClientInfo describes a client and its owner
type ClientInfo struct {
	Name  domain.ClientName
	Owner common.Address
	// Required is set when the client's releases are required; unregistered clients are never required
	Required bool
	// Suggestions lists registered clients with similar names when Name is not registered
	Suggestions []string
}

// Registered reports whether the client has an owner
func (c *ClientInfo) Registered() bool {
	return c.Owner != (common.Address{})
}

// ReleaseInfo describes a release of a client
type ReleaseInfo struct {
	Client   domain.ClientName
	ID       common.Hash
	Release  models.Release
	IsLatest bool
	// LatestInTrack is the newest release in the release's track
	LatestInTrack common.Hash
}

// ChecksumInfo describes the checksum of a release on one platform
type ChecksumInfo struct {
	Client   domain.ClientName
	Release  common.Hash
	Platform common.Hash
	Checksum common.Hash
}

// BuildInfo locates the release and platform of a checksum
type BuildInfo struct {
	Client   domain.ClientName
	Checksum common.Hash
	Build    models.Build
}

// LatestInfo is the newest release of a client in a track
type LatestInfo struct {
	Client  domain.ClientName
	Track   domain.Track
	ID      common.Hash
	Release models.Release
}

// RegistryStatus summarizes the deployment
type RegistryStatus struct {
	Deployment  models.Deployment
	GrandOwner  common.Address
	LatestFork  uint32
	ProxyOwner  common.Address
	ProxyClient domain.ClientName
	Tracks      []models.TrackAssignment
	BlockNumber uint64
}

// QueryRegistry answers the read calls of the registry and proxy
type QueryRegistry struct {
	tx      *Transactor
	journal EventJournal
}

// NewQueryRegistry creates a new QueryRegistry use case
func NewQueryRegistry(tx *Transactor, journal EventJournal) *QueryRegistry {
	return &QueryRegistry{tx: tx, journal: journal}
}

// Client returns the owner of name, with suggestions when it is not registered
func (uc *QueryRegistry) Client(ctx context.Context, name domain.ClientName) (*ClientInfo, error) {
	info := &ClientInfo{Name: name}
	err := uc.tx.View(ctx, func(ctx context.Context, ledger Ledger) error {
		var err error
		if info.Owner, err = ownerOfClient(ctx, ledger, name); err != nil {
			return err
		}
		info.Required, err = clientRequired(ctx, ledger, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !info.Registered() {
		info.Suggestions, err = uc.suggest(ctx, name.String())
		if err != nil {
			return nil, err
		}
	}
	return info, nil
}

// ClientOf returns the client owned by owner
func (uc *QueryRegistry) ClientOf(ctx context.Context, owner common.Address) (*ClientInfo, error) {
	info := &ClientInfo{}
	err := uc.tx.View(ctx, func(ctx context.Context, ledger Ledger) error {
		var err error
		info.Name, err = clientOwnedBy(ctx, ledger, owner)
		if err != nil || info.Name.IsZero() {
			return err
		}
		info.Owner = owner
		info.Required, err = clientRequired(ctx, ledger, info.Name)
		return err
	})
	return info, err
}

// Release returns a release of a client. Unknown releases are reported as domain.ErrNotFound.
func (uc *QueryRegistry) Release(ctx context.Context, name domain.ClientName, id common.Hash) (*ReleaseInfo, error) {
	info := &ReleaseInfo{Client: name, ID: id}
	err := uc.tx.View(ctx, func(ctx context.Context, ledger Ledger) error {
		registry := ledger.Deployment().Registry

		out, err := ledger.Call(ctx, registry, operations.PackRelease(name, id))
		if err != nil {
			return err
		}
		if info.Release, err = operations.UnpackRelease(out); err != nil {
			return err
		}
		if info.Release.IsZero() {
			return fmt.Errorf("release %s of %s: %w", id.Hex(), name, domain.ErrNotFound)
		}

		if out, err = ledger.Call(ctx, registry, operations.PackIsLatest(name, id)); err != nil {
			return err
		}
		if info.IsLatest, err = operations.UnpackIsLatest(out); err != nil {
			return err
		}

		if out, err = ledger.Call(ctx, registry, operations.PackLatestInTrack(name, info.Release.Track)); err != nil {
			return err
		}
		info.LatestInTrack, err = operations.UnpackLatestInTrack(out)
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Checksum returns the checksum of a release on platform
func (uc *QueryRegistry) Checksum(ctx context.Context, name domain.ClientName, release, platform common.Hash) (*ChecksumInfo, error) {
	info := &ChecksumInfo{Client: name, Release: release, Platform: platform}
	err := uc.tx.View(ctx, func(ctx context.Context, ledger Ledger) error {
		out, err := ledger.Call(ctx, ledger.Deployment().Registry, operations.PackChecksum(name, release, platform))
		if err != nil {
			return err
		}
		if info.Checksum, err = operations.UnpackChecksum(out); err != nil {
			return err
		}
		if info.Checksum == (common.Hash{}) {
			return fmt.Errorf("checksum of %s on %s: %w", release.Hex(), platform.Hex(), domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Build returns the release and platform a checksum was recorded for
func (uc *QueryRegistry) Build(ctx context.Context, name domain.ClientName, checksum common.Hash) (*BuildInfo, error) {
	info := &BuildInfo{Client: name, Checksum: checksum}
	err := uc.tx.View(ctx, func(ctx context.Context, ledger Ledger) error {
		out, err := ledger.Call(ctx, ledger.Deployment().Registry, operations.PackBuild(name, checksum))
		if err != nil {
			return err
		}
		if info.Build, err = operations.UnpackBuild(out); err != nil {
			return err
		}
		if info.Build.IsZero() {
			return fmt.Errorf("build with checksum %s: %w", checksum.Hex(), domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Latest returns the newest release of a client in track
func (uc *QueryRegistry) Latest(ctx context.Context, name domain.ClientName, track domain.Track) (*LatestInfo, error) {
	info := &LatestInfo{Client: name, Track: track}
	err := uc.tx.View(ctx, func(ctx context.Context, ledger Ledger) error {
		registry := ledger.Deployment().Registry
		out, err := ledger.Call(ctx, registry, operations.PackLatestInTrack(name, track))
		if err != nil {
			return err
		}
		if info.ID, err = operations.UnpackLatestInTrack(out); err != nil {
			return err
		}
		if info.ID == (common.Hash{}) {
			return fmt.Errorf("no %s release of %s: %w", track, name, domain.ErrNotFound)
		}
		if out, err = ledger.Call(ctx, registry, operations.PackRelease(name, info.ID)); err != nil {
			return err
		}
		info.Release, err = operations.UnpackRelease(out)
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Status summarizes the registry and proxy
func (uc *QueryRegistry) Status(ctx context.Context) (*RegistryStatus, error) {
	status := &RegistryStatus{}
	err := uc.tx.View(ctx, func(ctx context.Context, ledger Ledger) error {
		dep := ledger.Deployment()
		status.Deployment = dep

		var err error
		if status.GrandOwner, err = grandOwner(ctx, ledger); err != nil {
			return err
		}
		out, err := ledger.Call(ctx, dep.Registry, operations.PackLatestFork())
		if err != nil {
			return err
		}
		if status.LatestFork, err = operations.UnpackLatestFork(out); err != nil {
			return err
		}
		if state, err := ledger.Export(); err == nil {
			status.BlockNumber = state.BlockNumber
		}

		if !dep.HasProxy() {
			return nil
		}
		if out, err = ledger.Call(ctx, dep.Proxy, proxyCalls.PackOwner()); err != nil {
			return err
		}
		if status.ProxyOwner, err = proxyCalls.UnpackOwner(out); err != nil {
			return err
		}
		if status.ProxyClient, err = clientOwnedBy(ctx, ledger, dep.Proxy); err != nil {
			return err
		}
		status.Tracks, err = readTracks(ctx, ledger, dep.Proxy, domain.DefaultTracks)
		return err
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// suggest returns registered client names similar to pattern, best match first
func (uc *QueryRegistry) suggest(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, nil
	}
	names, err := uc.knownClients(ctx)
	if err != nil {
		return nil, err
	}
	matches := fuzzy.Find(pattern, names)
	return lo.Map(lo.Slice(matches, 0, maxSuggestions), func(m fuzzy.Match, _ int) string {
		return m.Str
	}), nil
}

// knownClients replays the journal to list the clients that currently have an owner
func (uc *QueryRegistry) knownClients(ctx context.Context) ([]string, error) {
	logs, err := uc.journal.List(ctx, domain.EventFilter{
		Names: []string{domain.EventClientAdded, domain.EventClientRemoved},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read client events: %w", err)
	}

	registered := make(map[string]bool)
	for _, log := range logs {
		switch ev := log.Event.(type) {
		case *domain.ClientAdded:
			registered[ev.Client.String()] = true
		case *domain.ClientRemoved:
			delete(registered, ev.Client.String())
		}
	}
	names := lo.Keys(registered)
	sort.Strings(names)
	return names, nil
}
