package tracks

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b0")
)

func TestTable_Assignments(t *testing.T) {
	table := NewTable()

	assert.False(t, table.IsDelegate(domain.TrackStable, common.Address{}))
	assert.False(t, table.RequiresConfirmation(domain.TrackStable))

	was := table.SetDelegate(domain.TrackStable, alice)
	assert.Equal(t, common.Address{}, was)
	assert.True(t, table.IsDelegate(domain.TrackStable, alice))
	assert.False(t, table.IsDelegate(domain.TrackBeta, alice))

	was = table.SetConfirmer(domain.TrackStable, bob)
	assert.Equal(t, common.Address{}, was)
	assert.True(t, table.RequiresConfirmation(domain.TrackStable))
	assert.True(t, table.IsConfirmer(domain.TrackStable, bob))

	was = table.SetDelegate(domain.TrackStable, bob)
	assert.Equal(t, alice, was)
	assert.Equal(t, bob, table.Delegate(domain.TrackStable))

	assert.Equal(t, models.TrackAssignment{Track: domain.TrackStable, Delegate: bob, Confirmer: bob}, table.Get(domain.TrackStable))

	t.Run("zero address unassigns", func(t *testing.T) {
		was := table.SetConfirmer(domain.TrackStable, common.Address{})
		assert.Equal(t, bob, was)
		assert.False(t, table.RequiresConfirmation(domain.TrackStable))
		assert.False(t, table.IsConfirmer(domain.TrackStable, common.Address{}))
		assert.False(t, table.Get(domain.TrackStable).RequiresConfirmation())
	})
}

func TestTable_Tracks(t *testing.T) {
	table := NewTable()
	table.SetConfirmer(domain.TrackNightly, alice)
	table.SetDelegate(domain.TrackStable, alice)
	table.SetDelegate(domain.TrackNightly, bob)

	assert.Equal(t, []domain.Track{domain.TrackStable, domain.TrackNightly}, table.Tracks())

	assignments := table.Assignments()
	require.Len(t, assignments, 2)
	assert.Equal(t, models.TrackAssignment{Track: domain.TrackNightly, Delegate: bob, Confirmer: alice}, assignments[1])

	rebuilt := NewTableFrom(assignments)
	assert.Equal(t, table.Assignments(), rebuilt.Assignments())
}

func TestTable_CloneAndJSON(t *testing.T) {
	table := NewTable()
	table.SetDelegate(domain.TrackBeta, alice)
	table.SetConfirmer(domain.TrackBeta, bob)

	clone := table.Clone()
	clone.SetDelegate(domain.TrackBeta, bob)
	assert.Equal(t, alice, table.Delegate(domain.TrackBeta))

	data, err := json.Marshal(table)
	require.NoError(t, err)

	var decoded Table
	require.NoError(t, json.Unmarshal(data, &decoded))
	decoded.Init()
	assert.Equal(t, table.Get(domain.TrackBeta), decoded.Get(domain.TrackBeta))

	var empty Table
	empty.Init()
	empty.SetDelegate(domain.TrackStable, alice)
	assert.Equal(t, alice, empty.Delegate(domain.TrackStable))
}
