package proxy

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
	"github.com/trebuchet-org/opsgov/internal/tracks"
)

// state is the proxy storage
type state struct {
	Owner      common.Address `json:"owner"`
	Operations common.Address `json:"operations"`
	Tracks     *tracks.Table  `json:"tracks"`

	// Waiting holds the proposals of each track by content hash
	Waiting map[domain.Track]map[common.Hash]models.PendingRequest `json:"waiting"`
	// PendingRelease maps a waiting addRelease request to its release id
	PendingRelease map[common.Hash]common.Hash `json:"pendingRelease"`
	// TrackOfPendingRelease maps a release id with a waiting addRelease to its track
	TrackOfPendingRelease map[common.Hash]domain.Track `json:"trackOfPendingRelease"`
}

func newState(owner, operations common.Address, table *tracks.Table) state {
	if table == nil {
		table = tracks.NewTable()
	}
	st := state{
		Owner:      owner,
		Operations: operations,
		Tracks:     table.Clone(),
	}
	st.init()
	return st
}

// init allocates maps missing after decoding
func (st *state) init() {
	if st.Tracks == nil {
		st.Tracks = tracks.NewTable()
	}
	st.Tracks.Init()
	if st.Waiting == nil {
		st.Waiting = make(map[domain.Track]map[common.Hash]models.PendingRequest)
	}
	if st.PendingRelease == nil {
		st.PendingRelease = make(map[common.Hash]common.Hash)
	}
	if st.TrackOfPendingRelease == nil {
		st.TrackOfPendingRelease = make(map[common.Hash]domain.Track)
	}
}

func (st *state) waiting(track domain.Track, hash common.Hash) (models.PendingRequest, bool) {
	req, ok := st.Waiting[track][hash]
	return req, ok
}

// store records req, replacing an identical earlier proposal
func (st *state) store(req models.PendingRequest, release *common.Hash) {
	if st.Waiting[req.Track] == nil {
		st.Waiting[req.Track] = make(map[common.Hash]models.PendingRequest)
	}
	st.Waiting[req.Track][req.Hash] = req
	if release != nil {
		st.PendingRelease[req.Hash] = *release
		st.TrackOfPendingRelease[*release] = req.Track
	}
}

// clear drops a request and its side indices
func (st *state) clear(track domain.Track, hash common.Hash) {
	delete(st.Waiting[track], hash)
	if len(st.Waiting[track]) == 0 {
		delete(st.Waiting, track)
	}
	if release, ok := st.PendingRelease[hash]; ok {
		delete(st.PendingRelease, hash)
		delete(st.TrackOfPendingRelease, release)
	}
}

// pending lists the waiting requests of track (every track for TrackNone), oldest first
func (st *state) pending(track domain.Track) []models.PendingRequest {
	var out []models.PendingRequest
	for t, reqs := range st.Waiting {
		if track != domain.TrackNone && t != track {
			continue
		}
		for _, req := range reqs {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProposedAt != out[j].ProposedAt {
			return out[i].ProposedAt < out[j].ProposedAt
		}
		if out[i].Track != out[j].Track {
			return out[i].Track < out[j].Track
		}
		return out[i].Hash.Cmp(out[j].Hash) < 0
	})
	return out
}
