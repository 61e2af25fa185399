package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderNumber is ORD_NUM coerced from either a JSON number or a numeric string.
type OrderNumber int64

func (n *OrderNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	v, err := ParseOrderNumber(raw)
	if err != nil {
		return err
	}
	*n = OrderNumber(v)
	return nil
}

// ParseOrderNumber coerces a path or body value to an ORD_NUM.
func ParseOrderNumber(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ORD_NUM %q is not an integer", s)
	}
	return v, nil
}

// OrderInput is the POST and PUT body. Absent fields bind as NULL.
type OrderInput struct {
	OrdNum         *OrderNumber        `json:"ORD_NUM,omitempty"`
	OrdAmount      decimal.NullDecimal `json:"ORD_AMOUNT"`
	AdvanceAmount  decimal.NullDecimal `json:"ADVANCE_AMOUNT"`
	OrdDate        *string             `json:"ORD_DATE"`
	CustCode       *string             `json:"CUST_CODE"`
	AgentCode      *string             `json:"AGENT_CODE"`
	OrdDescription *string             `json:"ORD_DESCRIPTION"`
}

// Number returns ORD_NUM as a bind value, nil when the body left it out.
func (in OrderInput) Number() *int64 {
	if in.OrdNum == nil {
		return nil
	}
	v := int64(*in.OrdNum)
	return &v
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
