package processor

import (
	"github.com/coinbacked/coinbacked/cbgo/fault"
	cbmath "github.com/coinbacked/coinbacked/cbgo/math"
)

// Payout returns floor(units * (balance - exempt) / supply) in lamports.
// The multiplication happens before the division so small burns against a
// large supply do not round to zero early. A balance at or below exempt
// pays nothing.
func Payout(units, supply, balance, exempt uint64) (uint64, error) {
	if supply == 0 {
		return 0, fault.Math.New("payout against zero supply")
	}
	if balance <= exempt {
		return 0, nil
	}
	v, err := cbmath.FromUint64(balance - exempt).TryMulUint64(units)
	if err != nil {
		return 0, err
	}
	if v, err = v.TryDivUint64(supply); err != nil {
		return 0, err
	}
	return v.TryFloorUint64()
}

// OneUnit is the smallest-unit count of one whole token.
func OneUnit(decimals uint8) (uint64, error) {
	unit := uint64(1)
	for i := uint8(0); i < decimals; i++ {
		next := unit * 10
		if next/10 != unit {
			return 0, fault.Math.New("10^%d exceeds 64 bits", decimals)
		}
		unit = next
	}
	return unit, nil
}

// lamportsPerSol converts lamports for display.
const lamportsPerSol = 1_000_000_000

// Sol renders lamports as a decimal SOL amount.
func Sol(lamports uint64) string {
	v, err := cbmath.FromUint64(lamports).TryDivUint64(lamportsPerSol)
	if err != nil {
		return "?"
	}
	return v.String()
}

// available is what balance can give away without dipping below floor.
func available(balance, floor uint64) uint64 {
	if balance < floor {
		return 0
	}
	return balance - floor
}
