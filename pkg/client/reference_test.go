package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestCategoryNamesDeduplicated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prices" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `[
			{"categories": [{"name": "Parcel"}, {"name": "Document"}]},
			{"categories": [{"name": "Parcel"}, {"name": "Freight"}, {"name": ""}]}
		]`)
	}))
	defer server.Close()

	names, err := New(server.URL).CategoryNames(context.Background())
	if err != nil {
		t.Fatalf("CategoryNames returned error: %v", err)
	}

	want := []string{"Parcel", "Document", "Freight"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v (deduplicated, first-seen order)", names, want)
	}
}

func TestLoadReferenceDataIsolatesFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/prices", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"categories": [{"name": "Parcel"}]}]`)
	})
	mux.HandleFunc("/branch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 1, "name": "Ikeja"}, {"id": 2, "name": "Abuja Central"}]`)
	})
	mux.HandleFunc("/payroll", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "Failed to fetch payrolls"}`)
	})
	mux.HandleFunc("/riders", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"ID": 7, "riderName": "Musa Bello", "vehicleType": "Motorcycle"}]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	data := New(server.URL).LoadReferenceData(context.Background())

	if err := data.Err(ResourceStaff); err == nil {
		t.Fatal("expected a recorded error for the staff resource")
	}
	if len(data.Staff) != 0 {
		t.Errorf("staff = %v, want empty on failure", data.Staff)
	}

	// The other resources are unaffected by the staff failure.
	if data.Err(ResourceCategories) != nil || data.Err(ResourceBranches) != nil || data.Err(ResourceRiders) != nil {
		t.Fatalf("unexpected errors: %v", data.Errors)
	}
	if len(data.CategoryNames) != 1 || data.CategoryNames[0] != "Parcel" {
		t.Errorf("categories = %v, want [Parcel]", data.CategoryNames)
	}
	if len(data.Branches) != 2 || data.Branches[0].Name != "Ikeja" {
		t.Errorf("branches = %v, want Ikeja and Abuja Central", data.Branches)
	}
	if len(data.Riders) != 1 || data.Riders[0].RiderName != "Musa Bello" {
		t.Errorf("riders = %v, want Musa Bello", data.Riders)
	}
}

func TestCustomerByPhoneNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "No customer found for phone number"}`)
	}))
	defer server.Close()

	_, err := New(server.URL).CustomerByPhone(context.Background(), "08099990000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "No customer found for phone number" {
		t.Errorf("message = %q, want the server's error string", apiErr.Message)
	}
}
