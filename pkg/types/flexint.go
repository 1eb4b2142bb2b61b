package types

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidNumber = errors.New("types: value is not a number")

// FlexInt целое, которое в JSON может прийти числом или строкой ("2")
// Дробная часть отбрасывается. Set сообщает, было ли поле в запросе.
type FlexInt struct {
	Value int
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}

	raw := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return ErrInvalidNumber
		}
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*f = FlexInt{}
			return nil
		}
	}

	if n, err := strconv.Atoi(raw); err == nil {
		*f = FlexInt{Value: n, Set: true}
		return nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n > math.MaxInt32 || n < math.MinInt32 {
		return ErrInvalidNumber
	}
	*f = FlexInt{Value: int(n), Set: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(f.Value)), nil
}
