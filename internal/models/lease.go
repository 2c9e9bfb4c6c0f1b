package models

// LeaseStatus is the closed set of lease states. Leases have a flat
// lifecycle: active until completed or cancelled.
type LeaseStatus string

// Lease statuses.
const (
	LeaseActive    LeaseStatus = "active"
	LeaseCompleted LeaseStatus = "completed"
	LeaseCancelled LeaseStatus = "cancelled"
)

// DefaultLeaseStatus is assigned when a lease is created without an explicit status.
const DefaultLeaseStatus = LeaseActive

var leaseStatuses = map[LeaseStatus]struct{}{
	LeaseActive:    {},
	LeaseCompleted: {},
	LeaseCancelled: {},
}

// Valid reports whether s is a member of the lease status enum.
func (s LeaseStatus) Valid() bool {
	_, ok := leaseStatuses[s]

	return ok
}

func assertLeaseStatus(s LeaseStatus) error {
	if !s.Valid() {
		return validationErrorf("status", "invalid status %q", string(s))
	}

	return nil
}

// Lease is a confirmed rental instance, optionally linked back to the lease
// request and order that produced it.
type Lease struct {
	ID          int64          `json:"id"`
	ProductID   int64          `json:"product_id"`
	VariationID *int64         `json:"variation_id"`
	OrderID     *int64         `json:"order_id"`
	OrderItemID *int64         `json:"order_item_id"`
	CustomerID  int64          `json:"customer_id"`
	RequestID   *int64         `json:"request_id"`
	StartDate   Time           `json:"start_date"`
	EndDate     Time           `json:"end_date"`
	Quantity    int            `json:"qty"`
	Meta        map[string]any `json:"meta"`
	Status      LeaseStatus    `json:"status"`
	CreatedAt   Time           `json:"created_at"`
	UpdatedAt   *Time          `json:"updated_at"`
}

func (l *Lease) validate() error {
	if err := assertPositiveInt(l.ProductID, "product_id"); err != nil {
		return err
	}

	if err := assertOptionalPositiveInt(l.VariationID, "variation_id"); err != nil {
		return err
	}

	if err := assertOptionalPositiveInt(l.OrderID, "order_id"); err != nil {
		return err
	}

	if err := assertOptionalPositiveInt(l.OrderItemID, "order_item_id"); err != nil {
		return err
	}

	if err := assertPositiveInt(l.CustomerID, "customer_id"); err != nil {
		return err
	}

	if err := assertOptionalPositiveInt(l.RequestID, "request_id"); err != nil {
		return err
	}

	if err := assertMinInt(l.Quantity, 1, "qty"); err != nil {
		return err
	}

	if err := assertJSONMap(l.Meta, "meta"); err != nil {
		return err
	}

	if err := assertLeaseStatus(l.Status); err != nil {
		return err
	}

	return assertStartBeforeOrEqualEnd(l.StartDate, l.EndDate)
}

// CreateLeaseInput is the payload for creating a lease.
type CreateLeaseInput struct {
	ProductID   int64          `json:"product_id"`
	VariationID *int64         `json:"variation_id,omitempty"`
	OrderID     *int64         `json:"order_id,omitempty"`
	OrderItemID *int64         `json:"order_item_id,omitempty"`
	CustomerID  int64          `json:"customer_id"`
	RequestID   *int64         `json:"request_id,omitempty"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	Quantity    int            `json:"qty"`
	Meta        map[string]any `json:"meta,omitempty"`
	Status      string         `json:"status,omitempty"`
}

// NewLease validates in and builds an unpersisted Lease. An omitted status
// defaults to DefaultLeaseStatus.
func NewLease(in CreateLeaseInput) (*Lease, error) {
	status := LeaseStatus(in.Status)
	if in.Status == "" {
		status = DefaultLeaseStatus
	}

	start, err := ParseDate(in.StartDate, "start_date")
	if err != nil {
		return nil, err
	}

	end, err := ParseDate(in.EndDate, "end_date")
	if err != nil {
		return nil, err
	}

	meta := in.Meta
	if meta == nil {
		meta = map[string]any{}
	}

	l := &Lease{
		ProductID:   in.ProductID,
		VariationID: in.VariationID,
		OrderID:     in.OrderID,
		OrderItemID: in.OrderItemID,
		CustomerID:  in.CustomerID,
		RequestID:   in.RequestID,
		StartDate:   start,
		EndDate:     end,
		Quantity:    in.Quantity,
		Meta:        meta,
		Status:      status,
	}

	if err := l.validate(); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate checks in without constructing the entity.
func (in CreateLeaseInput) Validate() error {
	_, err := NewLease(in)

	return err
}

// UpdateLeaseInput is a partial update for a lease; only non-nil fields apply.
type UpdateLeaseInput struct {
	VariationID *int64         `json:"variation_id,omitempty"`
	OrderID     *int64         `json:"order_id,omitempty"`
	OrderItemID *int64         `json:"order_item_id,omitempty"`
	RequestID   *int64         `json:"request_id,omitempty"`
	StartDate   *string        `json:"start_date,omitempty"`
	EndDate     *string        `json:"end_date,omitempty"`
	Quantity    *int           `json:"qty,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
	Status      *string        `json:"status,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (in UpdateLeaseInput) IsEmpty() bool {
	return in.VariationID == nil && in.OrderID == nil && in.OrderItemID == nil &&
		in.RequestID == nil && in.StartDate == nil && in.EndDate == nil &&
		in.Quantity == nil && in.Meta == nil && in.Status == nil
}

// Validate runs the per-field checks that do not require the stored record.
func (in UpdateLeaseInput) Validate() error {
	if in.StartDate != nil {
		if _, err := ParseDate(*in.StartDate, "start_date"); err != nil {
			return err
		}
	}

	if in.EndDate != nil {
		if _, err := ParseDate(*in.EndDate, "end_date"); err != nil {
			return err
		}
	}

	if in.Quantity != nil {
		if err := assertMinInt(*in.Quantity, 1, "qty"); err != nil {
			return err
		}
	}

	if in.Status != nil {
		if err := assertLeaseStatus(LeaseStatus(*in.Status)); err != nil {
			return err
		}
	}

	for field, v := range map[string]*int64{
		"variation_id":  in.VariationID,
		"order_id":      in.OrderID,
		"order_item_id": in.OrderItemID,
		"request_id":    in.RequestID,
	} {
		if err := assertOptionalPositiveInt(v, field); err != nil {
			return err
		}
	}

	return assertJSONMap(in.Meta, "meta")
}

// Apply merges in over existing and re-validates the merged record.
// existing is not mutated.
func (in UpdateLeaseInput) Apply(existing *Lease) (*Lease, error) {
	merged := *existing

	if in.StartDate != nil {
		start, err := ParseDate(*in.StartDate, "start_date")
		if err != nil {
			return nil, err
		}

		merged.StartDate = start
	}

	if in.EndDate != nil {
		end, err := ParseDate(*in.EndDate, "end_date")
		if err != nil {
			return nil, err
		}

		merged.EndDate = end
	}

	if in.VariationID != nil {
		merged.VariationID = in.VariationID
	}

	if in.OrderID != nil {
		merged.OrderID = in.OrderID
	}

	if in.OrderItemID != nil {
		merged.OrderItemID = in.OrderItemID
	}

	if in.RequestID != nil {
		merged.RequestID = in.RequestID
	}

	if in.Quantity != nil {
		merged.Quantity = *in.Quantity
	}

	if in.Meta != nil {
		merged.Meta = in.Meta
	}

	if in.Status != nil {
		merged.Status = LeaseStatus(*in.Status)
	}

	if err := merged.validate(); err != nil {
		return nil, err
	}

	return &merged, nil
}

// UpdateLeaseStatusInput is the payload for the direct status transition endpoint.
type UpdateLeaseStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// Validate checks enum membership.
func (in UpdateLeaseStatusInput) Validate() error {
	return assertLeaseStatus(LeaseStatus(in.Status))
}

// ListLeasesQuery holds filters for lease listings. Lease listings are
// single-page: newest first, capped at MaxLeaseListResults.
type ListLeasesQuery struct {
	Status     string
	ProductID  int64
	CustomerID int64
}

// MaxLeaseListResults caps the lease listing result set.
const MaxLeaseListResults = 100
