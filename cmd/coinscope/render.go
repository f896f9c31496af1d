package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"coinScope/internal/chart"
	"coinScope/internal/dashboard"
	"coinScope/internal/detail"
	"coinScope/internal/format"
	"coinScope/internal/model"
)

const watchedMark = "*"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderMarkets(w io.Writer, rows []dashboard.Row, currency string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No coins match the current filters.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tNAME\tSYMBOL\tPRICE\t24H\tVOLUME\tMARKET CAP\tWATCHED")
	for _, row := range rows {
		c := row.Coin
		mark := ""
		if row.Watched {
			mark = watchedMark
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.MarketCapRank,
			c.Name,
			strings.ToUpper(c.Symbol),
			format.Currency(format.Value(c.CurrentPrice), currency, 2),
			format.Percent(format.Value(c.PriceChangePercentage24h), 2),
			format.Currency(format.Value(c.TotalVolume), currency, 0),
			format.Currency(format.Value(c.MarketCap), currency, 0),
			mark,
		)
	}
	return tw.Flush()
}

func renderWatchlist(w io.Writer, rows []dashboard.WatchRow, currency string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "Watchlist is empty.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\t24H\tSTATUS")
	for _, row := range rows {
		name, price, change := format.Placeholder, format.Placeholder, format.Placeholder
		if d := row.Entry.Data; d != nil {
			name = d.Name
			price = priceIn(d, currency)
			change = format.Percent(format.Value(d.MarketData.PriceChangePercentage24h), 2)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.ID, name, price, change, statusText(row.Entry))
	}
	return tw.Flush()
}

func renderCoin(w io.Writer, page dashboard.CoinPage, currency string) error {
	d := page.Entry.Data
	if d == nil {
		_, err := fmt.Fprintf(w, "%s: %s\n", page.ID, statusText(page.Entry))
		return err
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Name:\t%s (%s)\n", d.Name, strings.ToUpper(d.Symbol))
	fmt.Fprintf(tw, "Price:\t%s\n", priceIn(d, currency))
	fmt.Fprintf(tw, "24h change:\t%s\n", format.Percent(format.Value(d.MarketData.PriceChangePercentage24h), 2))
	fmt.Fprintf(tw, "Market cap:\t%s\n", valueIn(d.MarketData.MarketCap, currency))
	fmt.Fprintf(tw, "Volume:\t%s\n", valueIn(d.MarketData.TotalVolume, currency))
	for _, link := range d.Homepages() {
		fmt.Fprintf(tw, "Homepage:\t%s\n", link)
	}
	chains := make([]string, 0, len(d.Platforms))
	for chain := range d.Platforms {
		chains = append(chains, chain)
	}
	sort.Strings(chains)
	for _, chain := range chains {
		fmt.Fprintf(tw, "Contract (%s):\t%s\n", chain, d.Platforms[chain])
	}
	fmt.Fprintf(tw, "Watched:\t%t\n", page.Watched)
	if page.Entry.Status == detail.StatusFailed {
		fmt.Fprintf(tw, "Refresh:\t%s\n", page.Entry.Err)
	}
	if !page.Entry.LastUpdated.IsZero() {
		fmt.Fprintf(tw, "Updated:\t%s\n", page.Entry.LastUpdated.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return renderChartSummary(w, page.Chart, currency)
}

func renderChartSummary(w io.Writer, st chart.State, currency string) error {
	if st.Err != nil {
		_, err := fmt.Fprintln(w, chart.LoadErrorMessage)
		return err
	}
	if len(st.Points) == 0 {
		_, err := fmt.Fprintln(w, "No chart data.")
		return err
	}

	lo, hi := st.Points[0].Price, st.Points[0].Price
	for _, p := range st.Points[1:] {
		if p.Price < lo {
			lo = p.Price
		}
		if p.Price > hi {
			hi = p.Price
		}
	}
	_, err := fmt.Fprintf(w, "%dd range: %s - %s over %d points\n",
		st.Days,
		format.Currency(format.Value(lo), currency, 2),
		format.Currency(format.Value(hi), currency, 2),
		len(st.Points),
	)
	return err
}

func renderChart(w io.Writer, points []model.ChartPoint, currency string) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tPRICE\tVOLUME\tMARKET CAP")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			time.UnixMilli(p.Date).UTC().Format(time.RFC3339),
			format.Currency(format.Value(p.Price), currency, 2),
			format.Number(format.Value(p.Volume), 0),
			format.Number(format.Value(p.MarketCap), 0),
		)
	}
	return tw.Flush()
}

func statusText(e detail.Entry) string {
	if e.Status == detail.StatusFailed {
		return fmt.Sprintf("%s: %s", e.Status, e.Err)
	}
	return string(e.Status)
}

func priceIn(d *model.CoinDetail, currency string) string {
	v, ok := d.PriceIn(currency)
	if !ok {
		return format.Placeholder
	}
	return format.Currency(&v, currency, 2)
}

func valueIn(values map[string]float64, currency string) string {
	v, ok := values[currency]
	if !ok {
		return format.Placeholder
	}
	return format.Currency(&v, currency, 0)
}
