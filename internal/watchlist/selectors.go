package watchlist

import "coinScope/internal/model"

// Snapshot is a read-only view of the watchlist at one point in time.
type Snapshot struct {
	ids []model.AssetID
	set map[model.AssetID]struct{}
}

func newSnapshot(ids []model.AssetID) Snapshot {
	set := make(map[model.AssetID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Snapshot{ids: ids, set: set}
}

func (s Snapshot) IDs() []model.AssetID {
	return append([]model.AssetID(nil), s.ids...)
}

func (s Snapshot) Count() int {
	return len(s.ids)
}

func (s Snapshot) Contains(id model.AssetID) bool {
	_, ok := s.set[id]
	return ok
}

// SelectCoins returns the coins that are in the snapshot, in coin-list order.
func SelectCoins(s Snapshot, coins []model.MarketCoin) []model.MarketCoin {
	if len(coins) == 0 || s.Count() == 0 {
		return []model.MarketCoin{}
	}
	out := make([]model.MarketCoin, 0, s.Count())
	for _, c := range coins {
		if s.Contains(c.ID) {
			out = append(out, c)
		}
	}
	return out
}
