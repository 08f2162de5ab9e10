package registry

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
)

func (r *Registry) addClient(c *call, name domain.ClientName, owner common.Address) error {
	if err := r.onlyGrandOwner(c); err != nil {
		return err
	}
	if owner == (common.Address{}) {
		return domain.ErrInvalidOwner
	}
	if r.st.Identities.ownerOf(name) != (common.Address{}) {
		return fmt.Errorf("%w: client %s", domain.ErrAlreadyExists, name)
	}
	if r.st.Identities.conflicts(owner, name) {
		return fmt.Errorf("%w: %s already owns a client", domain.ErrOwnerConflict, owner.Hex())
	}

	r.st.Identities.assign(name, owner)
	r.log.Debug("Client added", "client", name.String(), "owner", owner.Hex())
	return c.emit(&domain.ClientAdded{Client: name, Owner: owner})
}

// setClient assigns name to owner whether or not it has one already
func (r *Registry) setClient(c *call, name domain.ClientName, owner common.Address) error {
	if err := r.onlyGrandOwner(c); err != nil {
		return err
	}
	if owner == (common.Address{}) {
		return domain.ErrInvalidOwner
	}
	if r.st.Identities.conflicts(owner, name) {
		return fmt.Errorf("%w: %s already owns a client", domain.ErrOwnerConflict, owner.Hex())
	}

	previous := r.st.Identities.assign(name, owner)
	if previous == (common.Address{}) {
		r.log.Debug("Client added", "client", name.String(), "owner", owner.Hex())
		return c.emit(&domain.ClientAdded{Client: name, Owner: owner})
	}
	r.log.Debug("Client owner reset", "client", name.String(), "old", previous.Hex(), "now", owner.Hex())
	return c.emit(&domain.ClientOwnerChanged{Client: name, Old: previous, Now: owner})
}

func (r *Registry) removeClient(c *call, name domain.ClientName) error {
	if err := r.onlyGrandOwner(c); err != nil {
		return err
	}
	if r.st.Identities.ownerOf(name) == (common.Address{}) {
		return fmt.Errorf("%w: client %s", domain.ErrNotFound, name)
	}

	previous := r.st.Identities.release(name)
	delete(r.st.Optional, name)
	r.log.Debug("Client removed", "client", name.String(), "owner", previous.Hex())
	return c.emit(&domain.ClientRemoved{Client: name})
}

// setClientOwner hands the caller's client over to owner
func (r *Registry) setClientOwner(c *call, owner common.Address) error {
	name, ok := r.st.Identities.clientOf(c.caller)
	if !ok {
		return fmt.Errorf("%w: %s owns no client", domain.ErrUnauthorized, c.caller.Hex())
	}
	if owner == (common.Address{}) {
		return domain.ErrInvalidOwner
	}
	if r.st.Identities.conflicts(owner, name) {
		return fmt.Errorf("%w: %s already owns a client", domain.ErrOwnerConflict, owner.Hex())
	}

	r.st.Identities.assign(name, owner)
	r.log.Debug("Client owner changed", "client", name.String(), "old", c.caller.Hex(), "now", owner.Hex())
	return c.emit(&domain.ClientOwnerChanged{Client: name, Old: c.caller, Now: owner})
}

// setClientRequired flags whether the releases of an owned client are required
func (r *Registry) setClientRequired(c *call, name domain.ClientName, required bool) error {
	if err := r.onlyGrandOwner(c); err != nil {
		return err
	}
	if !r.owned(name) {
		return fmt.Errorf("%w: client %s", domain.ErrNotFound, name)
	}

	if required {
		delete(r.st.Optional, name)
	} else {
		r.st.Optional[name] = true
	}
	r.log.Debug("Client required changed", "client", name.String(), "required", required)
	return c.emit(&domain.ClientRequiredChanged{Client: name, Required: required})
}
