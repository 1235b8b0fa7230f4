package record

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Non-finite number literals. encoding/json rejects them, but the
// dictionary tooling both reads and writes them.
var nonFiniteLiterals = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// prescan checks data for problems encoding/json would silently repair and
// rewrites non-finite literals so encoding/json accepts the document.
//
// Each NaN/Infinity/-Infinity outside a string is replaced in place by "0"
// padded with spaces, so byte offsets are unchanged. The returned map is
// keyed by the offset just past that "0", which is what
// json.Decoder.InputOffset reports after the token is read.
func prescan(data []byte) ([]byte, map[int64]string, error) {
	if !utf8.Valid(data) {
		return nil, nil, fmt.Errorf("%w: input is not valid UTF-8", ErrSyntax)
	}

	var (
		out       []byte
		nonFinite map[int64]string
		inString  bool
	)
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch c {
			case '"':
				inString = false
			case '\\':
				n, err := checkEscape(data, i)
				if err != nil {
					return nil, nil, err
				}
				i += n - 1
			}
			continue
		}
		if c == '"' {
			inString = true
			continue
		}
		for _, lit := range nonFiniteLiterals {
			if !bytes.HasPrefix(data[i:], lit) {
				continue
			}
			if out == nil {
				out = append([]byte(nil), data...)
				nonFinite = make(map[int64]string)
			}
			out[i] = '0'
			for j := i + 1; j < i+len(lit); j++ {
				out[j] = ' '
			}
			nonFinite[int64(i+1)] = string(lit)
			i += len(lit) - 1
			break
		}
	}
	if out == nil {
		return data, nil, nil
	}
	return out, nonFinite, nil
}

// checkEscape validates the escape sequence starting at data[i] == '\\' and
// returns its length. A \u escape for a UTF-16 surrogate must be a high
// surrogate immediately followed by a low one.
func checkEscape(data []byte, i int) (int, error) {
	if i+1 >= len(data) || data[i+1] != 'u' {
		return 2, nil
	}
	hi, ok := hex4(data, i+2)
	if !ok {
		// Malformed; the JSON validator reports it.
		return 2, nil
	}
	switch {
	case hi < 0xD800 || hi > 0xDFFF:
		return 6, nil
	case hi >= 0xDC00:
		return 0, fmt.Errorf("%w: unpaired surrogate escape \\u%04x at offset %d", ErrSyntax, hi, i)
	}
	if i+7 < len(data) && data[i+6] == '\\' && data[i+7] == 'u' {
		if lo, ok := hex4(data, i+8); ok && lo >= 0xDC00 && lo <= 0xDFFF {
			return 12, nil
		}
	}
	return 0, fmt.Errorf("%w: unpaired surrogate escape \\u%04x at offset %d", ErrSyntax, hi, i)
}

func hex4(data []byte, at int) (uint64, bool) {
	if at+4 > len(data) {
		return 0, false
	}
	v, err := strconv.ParseUint(string(data[at:at+4]), 16, 16)
	return v, err == nil
}
