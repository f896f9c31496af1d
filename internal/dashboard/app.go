package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"coinScope/internal/chart"
	"coinScope/internal/detail"
	"coinScope/internal/filter"
	"coinScope/internal/model"
	"coinScope/internal/watchlist"
)

// watchlistConcurrency bounds parallel detail loads for the watchlist view.
const watchlistConcurrency = 4

// Gateway is the subset of the market-data client the views use.
type Gateway interface {
	ListMarketCoins(ctx context.Context, currency string, page, perPage int) ([]model.MarketCoin, error)
	detail.Fetcher
	chart.Fetcher
}

// App wires the gateway, the watchlist and the detail cache together and
// exposes one method per view.
type App struct {
	gateway   Gateway
	watchlist *watchlist.Store
	details   *detail.Cache
	logger    *zap.Logger
}

func New(gateway Gateway, wl *watchlist.Store, details *detail.Cache, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{gateway: gateway, watchlist: wl, details: details, logger: logger}
}

func (a *App) Watchlist() *watchlist.Store {
	return a.watchlist
}

func (a *App) Details() *detail.Cache {
	return a.details
}

// HomeQuery selects and narrows the markets listing.
type HomeQuery struct {
	Currency string
	Page     int
	PerPage  int
	Criteria filter.Criteria
	Query    string
}

// Row is one listing row.
type Row struct {
	Coin    model.MarketCoin
	Watched bool
}

// Home fetches one markets page and returns the rows passing q, in server order.
func (a *App) Home(ctx context.Context, q HomeQuery) ([]Row, error) {
	if err := q.Criteria.Validate(); err != nil {
		return nil, err
	}

	coins, err := a.gateway.ListMarketCoins(ctx, q.Currency, q.Page, q.PerPage)
	if err != nil {
		return nil, err
	}

	filtered := filter.Apply(coins, q.Criteria, q.Query)
	snap := a.watchlist.Snapshot()

	rows := make([]Row, len(filtered))
	for i, c := range filtered {
		rows[i] = Row{Coin: c, Watched: snap.Contains(c.ID)}
	}
	a.logger.Debug("home view", zap.Int("fetched", len(coins)), zap.Int("shown", len(rows)))
	return rows, nil
}

// WatchRow is one watchlist row. Entry.Status tells whether Data is usable.
type WatchRow struct {
	ID    model.AssetID
	Entry detail.Entry
}

// WatchlistView loads details for every watched id through the cache. A
// failed id shows up as a failed entry; only cancellation fails the view.
func (a *App) WatchlistView(ctx context.Context) ([]WatchRow, error) {
	ids := a.watchlist.IDs()
	rows := make([]WatchRow, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(watchlistConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			entry, err := a.details.Ensure(gctx, id).Wait(gctx)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				entry = a.details.Get(id)
			}
			rows[i] = WatchRow{ID: id, Entry: entry}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	return rows, nil
}

// CoinPage is everything the coin view renders.
type CoinPage struct {
	ID      model.AssetID
	Entry   detail.Entry
	Watched bool
	Chart   chart.State
}

// CoinView loads the cached detail record and the chart for id. Fetch
// failures are reported in the page, not as an error.
func (a *App) CoinView(ctx context.Context, id model.AssetID, currency string, days int) (CoinPage, error) {
	loader := chart.NewLoader(a.gateway, a.logger)
	defer loader.Close()

	detailTask := a.details.Ensure(ctx, id)
	chartTask := loader.Load(ctx, id, currency, days)

	if _, err := chartTask.Wait(ctx); err != nil && ctx.Err() != nil {
		return CoinPage{}, ctx.Err()
	}
	entry, err := detailTask.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return CoinPage{}, ctx.Err()
		}
		entry = a.details.Get(id)
	}

	return CoinPage{
		ID:      id,
		Entry:   entry,
		Watched: a.watchlist.Contains(id),
		Chart:   loader.State(),
	}, nil
}
