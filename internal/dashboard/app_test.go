package dashboard

import (
	"context"
	"errors"
	"testing"

	"coinScope/internal/detail"
	"coinScope/internal/filter"
	"coinScope/internal/gecko"
	"coinScope/internal/model"
	"coinScope/internal/storage"
	"coinScope/internal/watchlist"
)

type fakeGateway struct {
	coins   []model.MarketCoin
	details map[model.AssetID]*model.CoinDetail
	charts  map[model.AssetID]*model.MarketChart
}

func (f *fakeGateway) ListMarketCoins(ctx context.Context, currency string, page, perPage int) ([]model.MarketCoin, error) {
	return f.coins, nil
}

func (f *fakeGateway) GetCoinDetail(ctx context.Context, id model.AssetID) (*model.CoinDetail, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, &gecko.NetworkError{Path: "/coins/" + id.String(), Err: errors.New("connection reset")}
}

func (f *fakeGateway) GetCoinMarketChart(ctx context.Context, id model.AssetID, currency string, days int) (*model.MarketChart, error) {
	if c, ok := f.charts[id]; ok {
		return c, nil
	}
	return nil, errors.New("no chart")
}

func newTestApp(t *testing.T, gw *fakeGateway, watched ...model.AssetID) *App {
	t.Helper()
	ctx := context.Background()
	wl := watchlist.New(storage.NewMemoryKV(), nil)
	wl.Load(ctx)
	for _, id := range watched {
		wl.Toggle(ctx, id)
	}
	return New(gw, wl, detail.NewCache(gw), nil)
}

func TestHome(t *testing.T) {
	gw := &fakeGateway{coins: []model.MarketCoin{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", CurrentPrice: 50000, TotalVolume: 2e9, PriceChangePercentage24h: 3.2},
		{ID: "ethereum", Name: "Ethereum", Symbol: "eth", CurrentPrice: 3000, TotalVolume: 1e9, PriceChangePercentage24h: -1},
		{ID: "solana", Name: "Solana", Symbol: "sol", CurrentPrice: 150, TotalVolume: 5e8, PriceChangePercentage24h: 4},
	}}
	app := newTestApp(t, gw, "solana")

	rows, err := app.Home(context.Background(), HomeQuery{Criteria: filter.Criteria{OnlyGainers: true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0].Coin.ID != "bitcoin" || rows[1].Coin.ID != "solana" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rows[0].Watched || !rows[1].Watched {
		t.Fatalf("unexpected watched flags: %+v", rows)
	}

	rows, err = app.Home(context.Background(), HomeQuery{Query: "ETH"})
	if err != nil || len(rows) != 1 || rows[0].Coin.ID != "ethereum" {
		t.Fatalf("query filter failed: %+v, %v", rows, err)
	}

	_, err = app.Home(context.Background(), HomeQuery{Criteria: filter.Criteria{MinPrice: filter.Float(10), MaxPrice: filter.Float(5)}})
	if !errors.Is(err, filter.ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestWatchlistView(t *testing.T) {
	gw := &fakeGateway{details: map[model.AssetID]*model.CoinDetail{
		"bitcoin": {ID: "bitcoin", Name: "Bitcoin"},
		"solana":  {ID: "solana", Name: "Solana"},
	}}
	app := newTestApp(t, gw, "solana", "ethereum", "bitcoin")

	rows, err := app.WatchlistView(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantStatus := map[model.AssetID]detail.Status{
		"solana":   detail.StatusSucceeded,
		"ethereum": detail.StatusFailed,
		"bitcoin":  detail.StatusSucceeded,
	}
	for i, id := range []model.AssetID{"solana", "ethereum", "bitcoin"} {
		if rows[i].ID != id {
			t.Fatalf("row %d: id = %s, want %s", i, rows[i].ID, id)
		}
		if rows[i].Entry.Status != wantStatus[id] {
			t.Fatalf("row %s: status = %s, want %s", id, rows[i].Entry.Status, wantStatus[id])
		}
	}
	if rows[1].Entry.Err != detail.DefaultErrorMessage {
		t.Fatalf("unexpected error message: %q", rows[1].Entry.Err)
	}
}

func TestWatchlistViewEmpty(t *testing.T) {
	app := newTestApp(t, &fakeGateway{})
	rows, err := app.WatchlistView(context.Background())
	if err != nil || len(rows) != 0 {
		t.Fatalf("unexpected result: %+v, %v", rows, err)
	}
}

func TestCoinView(t *testing.T) {
	gw := &fakeGateway{
		details: map[model.AssetID]*model.CoinDetail{"bitcoin": {ID: "bitcoin", Name: "Bitcoin"}},
		charts: map[model.AssetID]*model.MarketChart{"bitcoin": {
			Prices:       []model.SeriesPoint{{1000, 10}, {2000, 12}},
			TotalVolumes: []model.SeriesPoint{{1000, 100}, {2000, 110}},
			MarketCaps:   []model.SeriesPoint{{1000, 5000}, {2000, 5200}},
		}},
	}
	app := newTestApp(t, gw, "bitcoin")

	page, err := app.CoinView(context.Background(), "bitcoin", "usd", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Entry.Status != detail.StatusSucceeded || page.Entry.Data.Name != "Bitcoin" || !page.Watched {
		t.Fatalf("unexpected page: %+v", page)
	}
	if len(page.Chart.Points) != 2 || page.Chart.Points[1].MarketCap != 5200 || page.Chart.Err != nil {
		t.Fatalf("unexpected chart: %+v", page.Chart)
	}

	missing, err := app.CoinView(context.Background(), "dogecoin", "usd", 7)
	if err != nil {
		t.Fatalf("fetch failures should be reported in the page: %v", err)
	}
	if missing.Entry.Status != detail.StatusFailed || missing.Chart.Err == nil {
		t.Fatalf("unexpected page: %+v", missing)
	}
}
