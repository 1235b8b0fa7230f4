package record

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// ErrUnhashable is returned by JoinKey for arrays and objects.
var ErrUnhashable = errors.New("value cannot be used as a join key")

// JoinKey returns a map key for v such that two values get the same key
// exactly when the dictionary tooling treats them as the same identifier:
// strings by content, numbers by numeric value (1, 1.0 and true coincide),
// null on its own. NaN gets a key too, but callers must check IsNaN since
// no two NaN identifiers are the same.
func JoinKey(v Value) (string, error) {
	switch v.kind {
	case KindNull:
		return "null", nil
	case KindString:
		return "s:" + v.text, nil
	case KindBool:
		if v.text == "true" {
			return "n:1", nil
		}
		return "n:0", nil
	case KindNumber:
		return numberKey(v.text)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnhashable, v.kind)
	}
}

func numberKey(lit string) (string, error) {
	if f, ok := nonFiniteValue(lit); ok {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	if isIntLiteral(lit) {
		n, ok := new(big.Int).SetString(lit, 10)
		if !ok {
			return "", fmt.Errorf("invalid integer literal %q", lit)
		}
		return "n:" + n.String(), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !math.IsInf(f, 0) {
		return "", fmt.Errorf("invalid number literal %q: %w", lit, err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	n, _ := new(big.Float).SetFloat64(f).Int(nil)
	return "n:" + n.String(), nil
}
