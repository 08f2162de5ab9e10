package config

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// ErrNoGenesis is returned when the config file has no [genesis] section
var ErrNoGenesis = errors.New("no genesis configured")

// BuildGenesis resolves the [genesis] section of file into a models.Genesis. Account
// fields may name senders declared in the same file.
func BuildGenesis(file *config.FileConfig) (*models.Genesis, error) {
	if file == nil || file.Genesis == nil {
		return nil, ErrNoGenesis
	}
	g := file.Genesis

	owner, err := requiredAccount(file, "genesis.registry.owner", g.Registry.Owner)
	if err != nil {
		return nil, err
	}
	genesis := &models.Genesis{RegistryOwner: owner}

	seen := make(map[domain.ClientName]bool)
	for i, c := range g.Clients {
		name, err := domain.ParseClientName(c.Name)
		if err != nil {
			return nil, fmt.Errorf("genesis.clients[%d]: %w", i, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("genesis.clients[%d]: client %s listed twice", i, name)
		}
		seen[name] = true

		clientOwner, err := requiredAccount(file, fmt.Sprintf("genesis.clients[%d].owner", i), c.Owner)
		if err != nil {
			return nil, err
		}
		genesis.Clients = append(genesis.Clients, models.GenesisClient{
			Name:     name,
			Owner:    clientOwner,
			Optional: c.Required != nil && !*c.Required,
		})
	}

	if g.Proxy != nil {
		proxy, err := buildGenesisProxy(file, g.Proxy)
		if err != nil {
			return nil, err
		}
		if !proxy.Client.IsZero() && !seen[proxy.Client] {
			return nil, fmt.Errorf("genesis.proxy.client: %s is not among genesis.clients", proxy.Client)
		}
		genesis.Proxy = proxy
	}

	return genesis, nil
}

func buildGenesisProxy(file *config.FileConfig, p *config.GenesisProxyConfig) (*models.GenesisProxy, error) {
	owner, err := requiredAccount(file, "genesis.proxy.owner", p.Owner)
	if err != nil {
		return nil, err
	}
	proxy := &models.GenesisProxy{Owner: owner, OwnsRegistry: p.OwnsRegistry}

	if p.Client != "" {
		name, err := domain.ParseClientName(p.Client)
		if err != nil {
			return nil, fmt.Errorf("genesis.proxy.client: %w", err)
		}
		proxy.Client = name
	}

	for i, t := range p.Tracks {
		track, err := domain.ParseTrack(t.Track)
		if err != nil {
			return nil, fmt.Errorf("genesis.proxy.tracks[%d]: %w", i, err)
		}
		assignment := models.TrackAssignment{Track: track}
		if t.Delegate != "" {
			if assignment.Delegate, err = ResolveAccount(file, t.Delegate); err != nil {
				return nil, fmt.Errorf("genesis.proxy.tracks[%d].delegate: %w", i, err)
			}
		}
		if t.Confirmer != "" {
			if assignment.Confirmer, err = ResolveAccount(file, t.Confirmer); err != nil {
				return nil, fmt.Errorf("genesis.proxy.tracks[%d].confirmer: %w", i, err)
			}
		}
		proxy.Tracks = append(proxy.Tracks, assignment)
	}

	return proxy, nil
}

func requiredAccount(file *config.FileConfig, field, ref string) (common.Address, error) {
	if ref == "" {
		return common.Address{}, fmt.Errorf("%s is required", field)
	}
	addr, err := ResolveAccount(file, ref)
	if err != nil {
		return common.Address{}, fmt.Errorf("%s: %w", field, err)
	}
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%s: %w", field, domain.ErrInvalidOwner)
	}
	return addr, nil
}
