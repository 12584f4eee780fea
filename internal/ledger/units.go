package ledger

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the ledger's value scale: amounts cross the wire as
// integers of 10^-18 of the display unit.
const NativeDecimals = 18

// FromNative converts a native-unit integer string into its human-decimal
// representation. The input can exceed 64 bits; precision is preserved.
func FromNative(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid native amount %q", raw)
	}
	return decimal.NewFromBigInt(n, -NativeDecimals), nil
}

// ToNative converts a human-decimal amount into the ledger's native integer
// string. Amounts with more precision than the ledger can represent are
// rejected rather than silently truncated.
func ToNative(d decimal.Decimal) (string, error) {
	shifted := d.Shift(NativeDecimals)
	if !shifted.IsInteger() {
		return "", fmt.Errorf("amount %s exceeds ledger precision of %d decimals", d, NativeDecimals)
	}
	return shifted.BigInt().String(), nil
}

// parseUint64 guards uint64 wire fields (quantities, timestamps) against
// precision loss.
func parseUint64(field, raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok || n.Sign() < 0 || !n.IsUint64() {
		return 0, fmt.Errorf("field %s: value %q does not fit uint64", field, raw)
	}
	return n.Uint64(), nil
}
