package models_test

import (
	"errors"
	"testing"

	"github.com/leasekit/leasekit/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func validRequestInput() models.CreateLeaseRequestInput {
	return models.CreateLeaseRequestInput{
		ProductID:          10,
		RequesterID:        7,
		RequestingVendorID: 3,
		StartDate:          "2026-06-01",
		EndDate:            "2026-06-08",
		Quantity:           2,
		TotalPrice:         5000,
	}
}

func TestNewLeaseRequest_Defaults(t *testing.T) {
	t.Parallel()

	r, err := models.NewLeaseRequest(validRequestInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Status != models.StatusAwaitingLessorResponse {
		t.Errorf("expected default status %q, got %q", models.StatusAwaitingLessorResponse, r.Status)
	}

	if r.Meta == nil {
		t.Error("expected meta to be initialized to an empty map")
	}
}

func TestNewLeaseRequest_ExplicitStatus(t *testing.T) {
	t.Parallel()

	in := validRequestInput()
	in.Status = string(models.StatusAccepted)

	r, err := models.NewLeaseRequest(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Status != models.StatusAccepted {
		t.Errorf("expected status %q, got %q", models.StatusAccepted, r.Status)
	}
}

func TestNewLeaseRequest_SameDayRange(t *testing.T) {
	t.Parallel()

	in := validRequestInput()
	in.StartDate = "2026-06-01"
	in.EndDate = "2026-06-01"

	if _, err := models.NewLeaseRequest(in); err != nil {
		t.Fatalf("same-day range should be valid, got: %v", err)
	}
}

func TestNewLeaseRequest_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*models.CreateLeaseRequestInput)
		field  string
	}{
		{"zero product", func(in *models.CreateLeaseRequestInput) { in.ProductID = 0 }, "product_id"},
		{"negative product", func(in *models.CreateLeaseRequestInput) { in.ProductID = -4 }, "product_id"},
		{"zero requester", func(in *models.CreateLeaseRequestInput) { in.RequesterID = 0 }, "requester_id"},
		{"zero vendor", func(in *models.CreateLeaseRequestInput) { in.RequestingVendorID = 0 }, "requesting_vendor_id"},
		{"zero variation", func(in *models.CreateLeaseRequestInput) { in.VariationID = int64Ptr(0) }, "variation_id"},
		{"zero qty", func(in *models.CreateLeaseRequestInput) { in.Quantity = 0 }, "qty"},
		{"negative qty", func(in *models.CreateLeaseRequestInput) { in.Quantity = -1 }, "qty"},
		{"zero price", func(in *models.CreateLeaseRequestInput) { in.TotalPrice = 0 }, "total_price"},
		{"negative price", func(in *models.CreateLeaseRequestInput) { in.TotalPrice = -100 }, "total_price"},
		{"bad start date", func(in *models.CreateLeaseRequestInput) { in.StartDate = "June 1st" }, "start_date"},
		{"bad end date", func(in *models.CreateLeaseRequestInput) { in.EndDate = "2026-6-8" }, "end_date"},
		{"start after end", func(in *models.CreateLeaseRequestInput) {
			in.StartDate = "2026-06-09"
			in.EndDate = "2026-06-08"
		}, "start_date"},
		{"unknown status", func(in *models.CreateLeaseRequestInput) { in.Status = "pending" }, "status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := validRequestInput()
			tc.mutate(&in)

			_, err := models.NewLeaseRequest(in)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}

			if ve.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, ve.Field)
			}
		})
	}
}

func TestUpdateLeaseRequestInput_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(models.UpdateLeaseRequestInput{}).IsEmpty() {
		t.Error("zero-value input should be empty")
	}

	in := models.UpdateLeaseRequestInput{Quantity: intPtr(3)}
	if in.IsEmpty() {
		t.Error("input with qty should not be empty")
	}
}

func TestUpdateLeaseRequestInput_Apply(t *testing.T) {
	t.Parallel()

	existing, err := models.NewLeaseRequest(validRequestInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := models.UpdateLeaseRequestInput{
		Quantity: intPtr(5),
		Status:   strPtr(string(models.StatusAccepted)),
	}

	merged, err := in.Apply(existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if merged.Quantity != 5 {
		t.Errorf("expected qty 5, got %d", merged.Quantity)
	}

	if merged.Status != models.StatusAccepted {
		t.Errorf("expected status accepted, got %q", merged.Status)
	}

	// Untouched fields keep their stored values.
	if merged.TotalPrice != existing.TotalPrice {
		t.Errorf("total_price changed: %d != %d", merged.TotalPrice, existing.TotalPrice)
	}

	// The source record is not mutated.
	if existing.Quantity != 2 {
		t.Errorf("existing record mutated: qty %d", existing.Quantity)
	}
}

func TestUpdateLeaseRequestInput_ApplyCrossFieldCheck(t *testing.T) {
	t.Parallel()

	existing, err := models.NewLeaseRequest(validRequestInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Moving only the end date before the stored start must fail on the
	// merged record even though the field is valid in isolation.
	in := models.UpdateLeaseRequestInput{EndDate: strPtr("2026-05-01")}

	if _, err := in.Apply(existing); err == nil {
		t.Fatal("expected merged-range validation error")
	} else if !models.IsValidation(err) {
		t.Fatalf("expected validation error, got %T", err)
	}
}

func TestUpdateLeaseRequestInput_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   models.UpdateLeaseRequestInput
	}{
		{"bad start", models.UpdateLeaseRequestInput{StartDate: strPtr("tomorrow")}},
		{"zero qty", models.UpdateLeaseRequestInput{Quantity: intPtr(0)}},
		{"unknown status", models.UpdateLeaseRequestInput{Status: strPtr("waitlisted")}},
		{"zero price", models.UpdateLeaseRequestInput{TotalPrice: int64Ptr(0)}},
		{"zero vendor", models.UpdateLeaseRequestInput{RequestingVendorID: int64Ptr(0)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if err := tc.in.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}

	ok := models.UpdateLeaseRequestInput{Quantity: intPtr(3), Notes: strPtr("call first")}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestListLeaseRequestsQuery_Normalize(t *testing.T) {
	t.Parallel()

	q := models.ListLeaseRequestsQuery{Page: -3, PerPage: 0}
	q.Normalize()

	if q.Page != 1 {
		t.Errorf("expected page 1, got %d", q.Page)
	}

	if q.PerPage != models.DefaultPerPage {
		t.Errorf("expected per_page %d, got %d", models.DefaultPerPage, q.PerPage)
	}

	q = models.ListLeaseRequestsQuery{Page: 4, PerPage: 50}
	q.Normalize()

	if q.Page != 4 || q.PerPage != 50 {
		t.Errorf("explicit pagination altered: page=%d per_page=%d", q.Page, q.PerPage)
	}
}
