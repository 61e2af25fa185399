package dao

import "time"

// Row is one table record exactly as the backend returned it, keyed by upper-case column name.
type Row = map[string]any

const (
	TableAgents    = "agents"
	TableCustomers = "customer"
	TableOrders    = "orders"
)

// orders columns
const (
	ColOrdNum         = "ORD_NUM"
	ColOrdAmount      = "ORD_AMOUNT"
	ColAdvanceAmount  = "ADVANCE_AMOUNT"
	ColOrdDate        = "ORD_DATE"
	ColCustCode       = "CUST_CODE"
	ColAgentCode      = "AGENT_CODE"
	ColOrdDescription = "ORD_DESCRIPTION"
)

// OrderColumns lists every orders column in table order.
var OrderColumns = []string{
	ColOrdNum,
	ColOrdAmount,
	ColAdvanceAmount,
	ColOrdDate,
	ColCustCode,
	ColAgentCode,
	ColOrdDescription,
}

// FOR RABBITMQ MESSAGE

type OrderEventType string

const (
	OrderCreated OrderEventType = "order.created"
	OrderUpdated OrderEventType = "order.updated"
	OrderPatched OrderEventType = "order.patched"
	OrderDeleted OrderEventType = "order.deleted"
)

type OrderEvent struct {
	Type        OrderEventType `json:"type"`
	OrderNumber *int64         `json:"order_number"`
	Payload     any            `json:"payload,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}
