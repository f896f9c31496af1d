package filter

import (
	"errors"
	"reflect"
	"testing"
	"testing/quick"

	"coinScope/internal/model"
)

var bitcoin = model.MarketCoin{
	ID:                       "bitcoin",
	Symbol:                   "btc",
	Name:                     "Bitcoin",
	CurrentPrice:             50000,
	TotalVolume:              2e9,
	PriceChangePercentage24h: 3.2,
}

func TestEvaluateScenarios(t *testing.T) {
	if !Evaluate(bitcoin, Criteria{MinPrice: Float(40000), OnlyGainers: true}, "") {
		t.Fatalf("bitcoin should pass min price 40000 with only gainers")
	}

	loser := bitcoin
	loser.PriceChangePercentage24h = -1.0
	if Evaluate(loser, Criteria{OnlyGainers: true}, "") {
		t.Fatalf("coin with negative change should be excluded by only gainers")
	}

	flat := bitcoin
	flat.PriceChangePercentage24h = 0
	if Evaluate(flat, Criteria{OnlyGainers: true}, "") {
		t.Fatalf("coin with zero change is not a gainer")
	}
}

func TestEvaluatePriceBoundary(t *testing.T) {
	c := Criteria{MinPrice: Float(100), MaxPrice: Float(100)}

	cases := []struct {
		price float64
		want  bool
	}{
		{100, true},
		{99, false},
		{101, false},
	}
	for _, tc := range cases {
		coin := bitcoin
		coin.CurrentPrice = tc.price
		if got := Evaluate(coin, c, ""); got != tc.want {
			t.Errorf("price %v: got %v, want %v", tc.price, got, tc.want)
		}
	}
}

func TestEvaluateMinVolume(t *testing.T) {
	if Evaluate(bitcoin, Criteria{MinVolume: Float(3e9)}, "") {
		t.Fatalf("volume below minimum should be excluded")
	}
	if !Evaluate(bitcoin, Criteria{MinVolume: Float(2e9)}, "") {
		t.Fatalf("volume equal to minimum should pass")
	}
}

func TestEvaluateQuery(t *testing.T) {
	cases := map[string]bool{
		"":        true,
		"BIT":     true,
		"coin":    true,
		"BtC":     true,
		"eth":     false,
		"bitcoin": true,
	}
	for query, want := range cases {
		if got := Evaluate(bitcoin, Criteria{}, query); got != want {
			t.Errorf("query %q: got %v, want %v", query, got, want)
		}
	}
}

func TestApplyKeepsOrder(t *testing.T) {
	coins := []model.MarketCoin{
		{ID: "a", Name: "Alpha", Symbol: "a", CurrentPrice: 5, PriceChangePercentage24h: 1},
		{ID: "b", Name: "Beta", Symbol: "b", CurrentPrice: 50, PriceChangePercentage24h: -1},
		{ID: "c", Name: "Gamma", Symbol: "c", CurrentPrice: 1, PriceChangePercentage24h: 2},
	}
	got := Apply(coins, Criteria{OnlyGainers: true}, "")
	var ids []model.AssetID
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	if want := []model.AssetID{"a", "c"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids mismatch: %v != %v", ids, want)
	}

	if got := Apply(nil, Criteria{}, ""); len(got) != 0 {
		t.Fatalf("expected empty result")
	}
}

func referenceFilter(coin model.MarketCoin, c Criteria) bool {
	pass := true
	if c.MinPrice != nil {
		pass = pass && coin.CurrentPrice >= *c.MinPrice
	}
	if c.MaxPrice != nil {
		pass = pass && coin.CurrentPrice <= *c.MaxPrice
	}
	if c.MinVolume != nil {
		pass = pass && coin.TotalVolume >= *c.MinVolume
	}
	if c.OnlyGainers {
		pass = pass && coin.PriceChangePercentage24h > 0
	}
	return pass
}

func TestEvaluateMatchesReference(t *testing.T) {
	property := func(price, volume, change, minP, maxP, minV float64, setMin, setMax, setVol, gainers bool) bool {
		coin := model.MarketCoin{ID: "x", Name: "X", Symbol: "x", CurrentPrice: price, TotalVolume: volume, PriceChangePercentage24h: change}
		c := Criteria{OnlyGainers: gainers}
		if setMin {
			c.MinPrice = Float(minP)
		}
		if setMax {
			c.MaxPrice = Float(maxP)
		}
		if setVol {
			c.MinVolume = Float(minV)
		}
		return Evaluate(coin, c, "") == referenceFilter(coin, c)
	}
	if err := quick.Check(property, &quick.Config{MaxCount: 2000}); err != nil {
		t.Fatal(err)
	}
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria("", " 10 ", "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MinPrice != nil || c.MaxPrice == nil || *c.MaxPrice != 10 || c.MinVolume != nil || !c.OnlyGainers {
		t.Fatalf("unexpected criteria: %+v", c)
	}

	empty, err := ParseCriteria("", "", "", false)
	if err != nil || !empty.IsZero() {
		t.Fatalf("expected zero criteria, got %+v, %v", empty, err)
	}

	invalid := [][3]string{
		{"-1", "", ""},
		{"", "", "-5"},
		{"10", "5", ""},
		{"abc", "", ""},
		{"NaN", "", ""},
	}
	for _, in := range invalid {
		if _, err := ParseCriteria(in[0], in[1], in[2], false); !errors.Is(err, ErrInvalidCriteria) {
			t.Errorf("input %q: expected ErrInvalidCriteria, got %v", in, err)
		}
	}

	if _, err := ParseCriteria("5", "5", "0", false); err != nil {
		t.Fatalf("equal bounds should be valid: %v", err)
	}
}
