package keno

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// probPrecision is the number of decimal places kept when dividing exact counts.
const probPrecision = 20

var drawCombos = new(big.Int).Binomial(MaxNumber, DrawSize)

// HitProbability is the chance that exactly `matches` of `spots` picks are drawn.
// Hypergeometric: C(spots,m) * C(80-spots, 20-m) / C(80,20).
func HitProbability(spots, matches int) decimal.Decimal {
	if spots < 0 || spots > MaxSpots || matches < 0 || matches > spots {
		return decimal.Zero
	}
	if matches > DrawSize || DrawSize-matches > MaxNumber-spots {
		return decimal.Zero
	}
	num := new(big.Int).Binomial(int64(spots), int64(matches))
	num.Mul(num, new(big.Int).Binomial(int64(MaxNumber-spots), int64(DrawSize-matches)))
	return decimal.NewFromBigInt(num, 0).DivRound(decimal.NewFromBigInt(drawCombos, 0), probPrecision)
}

// ExpectedReturn is the long-run payout per unit bet for a spot count (RTP).
func ExpectedReturn(t *PayoutTable, spots int) decimal.Decimal {
	total := decimal.Zero
	for m := 0; m <= spots; m++ {
		mult := t.Multiplier(spots, m)
		if mult == 0 {
			continue
		}
		total = total.Add(HitProbability(spots, m).Mul(decimal.NewFromInt(mult)))
	}
	return total
}

// ReturnRow summarises one spot count of a table.
type ReturnRow struct {
	Spots   int             `json:"spots"`
	RTP     decimal.Decimal `json:"rtp"`
	HitRate decimal.Decimal `json:"hit_rate"` // chance of any payout
	Top     int64           `json:"top_multiplier"`
}

// ReturnTable computes ReturnRow for every spot count 1..10.
func ReturnTable(t *PayoutTable) []ReturnRow {
	rows := make([]ReturnRow, 0, MaxSpots)
	for spots := 1; spots <= MaxSpots; spots++ {
		hit := decimal.Zero
		for m := 0; m <= spots; m++ {
			if t.Multiplier(spots, m) > 0 {
				hit = hit.Add(HitProbability(spots, m))
			}
		}
		rows = append(rows, ReturnRow{
			Spots:   spots,
			RTP:     ExpectedReturn(t, spots),
			HitRate: hit,
			Top:     t.Top(spots),
		})
	}
	return rows
}
