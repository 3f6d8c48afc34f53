package conquest

import "fmt"

// Order directs ships from a controlled system toward a destination. The
// rationale is free text carried onto the fleet for reporting; the engine
// never interprets it.
type Order struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Ships     int    `json:"ships"`
	Rationale string `json:"rationale,omitempty"`
}

// Describe returns a compact human-readable rendering, e.g. "K -> F x12".
func (o *Order) Describe() string {
	return fmt.Sprintf("%s -> %s x%d", o.From, o.To, o.Ships)
}

// OrderError reports why a submitted order was rejected. Rejections are
// recoverable: the turn proceeds with the remaining valid orders.
type OrderError struct {
	Player  Player
	Order   Order
	Message string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("order %s rejected for %s: %s", e.Order.Describe(), e.Player, e.Message)
}
