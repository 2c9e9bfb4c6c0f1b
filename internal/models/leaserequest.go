// Package models defines the rental domain entities and their validation rules.
package models

// RequestStatus is the closed set of lease request workflow states.
//
// The intended flow is lessor response first (the creation default), then
// accept -> awaiting payment -> accepted, or decline/cancel; the lessee may be
// asked to counter via "awaiting lessee response". Accepted, declined, and
// cancelled are terminal in normal operation, though updates do not enforce a
// transition graph — any allowed status may be set.
type RequestStatus string

// Lease request statuses.
const (
	StatusAwaitingLesseeResponse RequestStatus = "awaiting lessee response"
	StatusAwaitingLessorResponse RequestStatus = "awaiting lessor response"
	StatusAwaitingPayment        RequestStatus = "awaiting payment"
	StatusAccepted               RequestStatus = "accepted"
	StatusDeclined               RequestStatus = "declined"
	StatusCancelled              RequestStatus = "cancelled"
)

// DefaultRequestStatus is assigned when a request is created without an
// explicit status.
const DefaultRequestStatus = StatusAwaitingLessorResponse

var requestStatuses = map[RequestStatus]struct{}{
	StatusAwaitingLesseeResponse: {},
	StatusAwaitingLessorResponse: {},
	StatusAwaitingPayment:        {},
	StatusAccepted:               {},
	StatusDeclined:               {},
	StatusCancelled:              {},
}

// Valid reports whether s is a member of the request status enum.
func (s RequestStatus) Valid() bool {
	_, ok := requestStatuses[s]

	return ok
}

func assertRequestStatus(s RequestStatus) error {
	if !s.Valid() {
		return validationErrorf("status", "invalid status %q", string(s))
	}

	return nil
}

// LeaseRequest is a customer's ask to rent a product for a date range,
// awaiting (or past) vendor resolution. Instances are only built through
// NewLeaseRequest or UpdateLeaseRequestInput.Apply, so a LeaseRequest value
// always satisfies its invariants.
type LeaseRequest struct {
	ID                 int64          `json:"id"`
	ProductID          int64          `json:"product_id"`
	VariationID        *int64         `json:"variation_id"`
	RequesterID        int64          `json:"requester_id"`
	RequestingVendorID int64          `json:"requesting_vendor_id"`
	StartDate          Time           `json:"start_date"`
	EndDate            Time           `json:"end_date"`
	Quantity           int            `json:"qty"`
	Notes              *string        `json:"notes"`
	TotalPrice         int64          `json:"total_price"`
	Meta               map[string]any `json:"meta"`
	Status             RequestStatus  `json:"status"`
	CreatedAt          Time           `json:"created_at"`
	UpdatedAt          *Time          `json:"updated_at"`
}

func (r *LeaseRequest) validate() error {
	if err := assertPositiveInt(r.ProductID, "product_id"); err != nil {
		return err
	}

	if err := assertOptionalPositiveInt(r.VariationID, "variation_id"); err != nil {
		return err
	}

	if err := assertPositiveInt(r.RequesterID, "requester_id"); err != nil {
		return err
	}

	if err := assertPositiveInt(r.RequestingVendorID, "requesting_vendor_id"); err != nil {
		return err
	}

	if err := assertMinInt(r.Quantity, 1, "qty"); err != nil {
		return err
	}

	if err := assertPositiveInt(r.TotalPrice, "total_price"); err != nil {
		return err
	}

	if err := assertJSONMap(r.Meta, "meta"); err != nil {
		return err
	}

	if err := assertRequestStatus(r.Status); err != nil {
		return err
	}

	return assertStartBeforeOrEqualEnd(r.StartDate, r.EndDate)
}

// CreateLeaseRequestInput is the payload for creating a lease request.
type CreateLeaseRequestInput struct {
	ProductID          int64          `json:"product_id"`
	VariationID        *int64         `json:"variation_id,omitempty"`
	RequesterID        int64          `json:"requester_id"`
	RequestingVendorID int64          `json:"requesting_vendor_id"`
	StartDate          string         `json:"start_date"`
	EndDate            string         `json:"end_date"`
	Quantity           int            `json:"qty"`
	Notes              *string        `json:"notes,omitempty"`
	TotalPrice         int64          `json:"total_price"`
	Meta               map[string]any `json:"meta,omitempty"`
	Status             string         `json:"status,omitempty"`
}

// NewLeaseRequest validates in and builds an unpersisted LeaseRequest
// (ID and CreatedAt are assigned by the store). An omitted status defaults
// to DefaultRequestStatus.
func NewLeaseRequest(in CreateLeaseRequestInput) (*LeaseRequest, error) {
	status := RequestStatus(in.Status)
	if in.Status == "" {
		status = DefaultRequestStatus
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

	r := &LeaseRequest{
		ProductID:          in.ProductID,
		VariationID:        in.VariationID,
		RequesterID:        in.RequesterID,
		RequestingVendorID: in.RequestingVendorID,
		StartDate:          start,
		EndDate:            end,
		Quantity:           in.Quantity,
		Notes:              in.Notes,
		TotalPrice:         in.TotalPrice,
		Meta:               meta,
		Status:             status,
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks in without constructing the entity.
func (in CreateLeaseRequestInput) Validate() error {
	_, err := NewLeaseRequest(in)

	return err
}

// UpdateLeaseRequestInput is a partial update: only non-nil fields are
// applied, everything else keeps its stored value.
type UpdateLeaseRequestInput struct {
	VariationID        *int64         `json:"variation_id,omitempty"`
	StartDate          *string        `json:"start_date,omitempty"`
	EndDate            *string        `json:"end_date,omitempty"`
	Quantity           *int           `json:"qty,omitempty"`
	Notes              *string        `json:"notes,omitempty"`
	TotalPrice         *int64         `json:"total_price,omitempty"`
	Meta               map[string]any `json:"meta,omitempty"`
	Status             *string        `json:"status,omitempty"`
	RequestingVendorID *int64         `json:"requesting_vendor_id,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (in UpdateLeaseRequestInput) IsEmpty() bool {
	return in.VariationID == nil && in.StartDate == nil && in.EndDate == nil &&
		in.Quantity == nil && in.Notes == nil && in.TotalPrice == nil &&
		in.Meta == nil && in.Status == nil && in.RequestingVendorID == nil
}

// Validate runs the per-field checks that do not require the stored record.
// Cross-field rules (start <= end on the merged result) run in Apply.
func (in UpdateLeaseRequestInput) Validate() error {
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
		if err := assertRequestStatus(RequestStatus(*in.Status)); err != nil {
			return err
		}
	}

	if err := assertOptionalPositiveInt(in.VariationID, "variation_id"); err != nil {
		return err
	}

	if err := assertOptionalPositiveInt(in.TotalPrice, "total_price"); err != nil {
		return err
	}

	if err := assertOptionalPositiveInt(in.RequestingVendorID, "requesting_vendor_id"); err != nil {
		return err
	}

	return assertJSONMap(in.Meta, "meta")
}

// Apply merges in over existing and re-validates the merged record exactly as
// construction would. existing is not mutated.
func (in UpdateLeaseRequestInput) Apply(existing *LeaseRequest) (*LeaseRequest, error) {
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

	if in.Quantity != nil {
		merged.Quantity = *in.Quantity
	}

	if in.Notes != nil {
		merged.Notes = in.Notes
	}

	if in.TotalPrice != nil {
		merged.TotalPrice = *in.TotalPrice
	}

	if in.Meta != nil {
		merged.Meta = in.Meta
	}

	if in.Status != nil {
		merged.Status = RequestStatus(*in.Status)
	}

	if in.RequestingVendorID != nil {
		merged.RequestingVendorID = *in.RequestingVendorID
	}

	if err := merged.validate(); err != nil {
		return nil, err
	}

	return &merged, nil
}

// ListLeaseRequestsQuery holds filters and pagination for request listings.
type ListLeaseRequestsQuery struct {
	Status             string
	ProductID          int64
	RequesterID        int64
	RequestingVendorID int64
	Page               int
	PerPage            int
}

// DefaultPerPage is the page size applied when a listing does not set one.
const DefaultPerPage = 20

// Normalize clamps pagination to sane values.
func (q *ListLeaseRequestsQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}

	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
}

// LeaseRequestPage is one page of a request listing.
type LeaseRequestPage struct {
	Items   []LeaseRequest `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}
