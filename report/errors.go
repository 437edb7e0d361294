package report

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrUnknownMetric    = errors.New("unknown metric")
	ErrUnknownOp        = errors.New("unknown aggregate op")
	ErrInvalidAggregate = errors.New("aggregate op not applicable to metric")
	ErrNoOrders         = errors.New("average order value undefined: no orders")
)

// JoinIntegrityError reports product keys that cannot be joined safely:
// duplicated product IDs, or more unmatched sales than the join policy allows.
type JoinIntegrityError struct {
	DuplicateIDs []string
	Unmatched    int
	Total        int
	Limit        float64
}

func (e *JoinIntegrityError) Error() string {
	if len(e.DuplicateIDs) > 0 {
		return fmt.Sprintf("join integrity: duplicate product IDs: %s", strings.Join(e.DuplicateIDs, ", "))
	}
	return fmt.Sprintf("join integrity: %d of %d sales reference unknown products (limit %.2f%%)",
		e.Unmatched, e.Total, e.Limit*100)
}

// ParseError reports a field of a sale that could not be parsed.
// Row is the 1-based position of the sale in the sales table.
type ParseError struct {
	Row         int
	OrderNumber string
	Field       string
	Value       string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sale %d (order %s): cannot parse %s %q: %v", e.Row, e.OrderNumber, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
