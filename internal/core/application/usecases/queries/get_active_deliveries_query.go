package queries

// GetActiveDeliveriesQuery requests every delivery that has not yet completed.
type GetActiveDeliveriesQuery struct{}

// NewGetActiveDeliveriesQuery creates the query.
func NewGetActiveDeliveriesQuery() (GetActiveDeliveriesQuery, error) {
	return GetActiveDeliveriesQuery{}, nil
}
