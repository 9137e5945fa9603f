package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// deskServer is a fake back office covering the calls a shipment form makes.
type deskServer struct {
	*httptest.Server
	shipmentPosts atomic.Int64

	mu               sync.Mutex
	lastShipment     map[string]interface{}
	failShipments    bool
	holdShipments    chan struct{} // when set, POST /shipments blocks until closed
	shipmentsEntered chan struct{}
}

func newDeskServer(t *testing.T) *deskServer {
	t.Helper()
	ds := &deskServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("/customers/phone/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/customers/phone/08011112222":
			fmt.Fprint(w, `{"ID": 4, "name": "Jane Doe", "address": "12 Allen Avenue", "phoneNumber": "08011112222"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error": "No customer found for phone number"}`)
		}
	})
	mux.HandleFunc("/prices/calculate", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"totalPrice": 1100}`)
	})
	mux.HandleFunc("/shipments", func(w http.ResponseWriter, r *http.Request) {
		ds.shipmentPosts.Add(1)

		ds.mu.Lock()
		hold := ds.holdShipments
		entered := ds.shipmentsEntered
		fail := ds.failShipments
		ds.mu.Unlock()

		if entered != nil {
			entered <- struct{}{}
		}
		if hold != nil {
			<-hold
		}
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error": "Failed to create shipment"}`)
			return
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode shipment payload: %v", err)
		}
		ds.mu.Lock()
		ds.lastShipment = body
		ds.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"shipment": {"ID": 31, "waybillNumber": "RC-20260830-9F3A21BC", "totalPrice": 1600, "status": "Pending"}}`)
	})

	ds.Server = httptest.NewServer(mux)
	t.Cleanup(ds.Close)
	return ds
}

func fillForm(f *ShipmentForm) {
	f.ReceiverName = "Ada Obi"
	f.ReceiverAddress = "3 Marina Road, Lagos"
	f.ReceiverPhone = "08133334444"
	f.Description = "Two cartons of books"
	f.DeliveryType = "hubToHub"
	f.OriginState = "Lagos"
	f.DestinationState = "Lagos"
	f.Weight = 2.5
	f.Category = "Parcel"
	f.BranchName = "Ikeja"
	f.StaffID = 2
	f.RiderID = 7
}

// readyWorkflow builds a workflow with a resolved sender, a filled form and
// a computed price, one step away from submission.
func readyWorkflow(t *testing.T, ds *deskServer) *Workflow {
	t.Helper()
	w := NewWorkflow(New(ds.URL))
	if err := w.CommitSenderPhone(context.Background(), "08011112222"); err != nil {
		t.Fatalf("CommitSenderPhone failed: %v", err)
	}
	w.Edit(fillForm)
	if _, err := w.RequestPrice(context.Background()); err != nil {
		t.Fatalf("RequestPrice failed: %v", err)
	}
	return w
}

func TestCommitSenderPhoneResolvesCustomer(t *testing.T) {
	ds := newDeskServer(t)
	w := NewWorkflow(New(ds.URL))

	if err := w.CommitSenderPhone(context.Background(), "08011112222"); err != nil {
		t.Fatalf("CommitSenderPhone failed: %v", err)
	}

	form := w.Form()
	if form.SenderName != "Jane Doe" {
		t.Fatalf("sender name = %q, want Jane Doe", form.SenderName)
	}
	if w.SenderNotFound() {
		t.Fatal("sender-not-found flag set after a successful lookup")
	}

	// The resolved name is read-only.
	w.Edit(func(f *ShipmentForm) { f.SenderName = "Somebody Else" })
	if got := w.Form().SenderName; got != "Jane Doe" {
		t.Fatalf("sender name = %q after edit, want Jane Doe (read-only once resolved)", got)
	}
}

func TestCommitSenderPhoneNotFoundBlocksSubmit(t *testing.T) {
	ds := newDeskServer(t)
	w := NewWorkflow(New(ds.URL))

	if err := w.CommitSenderPhone(context.Background(), "08099990000"); err != nil {
		t.Fatalf("a lookup miss is not an error, got: %v", err)
	}
	if !w.SenderNotFound() {
		t.Fatal("expected the sender-not-found flag")
	}

	// Even a complete, priced form cannot be submitted for an
	// unregistered sender.
	w.Edit(func(f *ShipmentForm) {
		fillForm(f)
		f.SenderName = "Walk-in Sender"
	})
	if _, err := w.RequestPrice(context.Background()); err != nil {
		t.Fatalf("RequestPrice failed: %v", err)
	}

	_, err := w.Submit(context.Background())
	if !errors.Is(err, ErrSenderUnresolved) {
		t.Fatalf("error = %v, want ErrSenderUnresolved", err)
	}
	if ds.shipmentPosts.Load() != 0 {
		t.Fatalf("shipment posts = %d, want 0", ds.shipmentPosts.Load())
	}
}

func TestSubmitRejectsIncompleteFormWithoutNetwork(t *testing.T) {
	ds := newDeskServer(t)
	w := NewWorkflow(New(ds.URL))

	_, err := w.Submit(context.Background())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(verr.Problems) < 10 {
		t.Fatalf("problems = %v, want every missing required field reported", verr.Problems)
	}
	if ds.shipmentPosts.Load() != 0 {
		t.Fatalf("shipment posts = %d, want 0 for an invalid form", ds.shipmentPosts.Load())
	}
	if w.State() != StateEditing {
		t.Fatalf("state = %v, want editing after a validation failure", w.State())
	}
}

func TestSubmitRequiresComputedPrice(t *testing.T) {
	ds := newDeskServer(t)
	w := NewWorkflow(New(ds.URL))
	if err := w.CommitSenderPhone(context.Background(), "08011112222"); err != nil {
		t.Fatalf("CommitSenderPhone failed: %v", err)
	}
	w.Edit(fillForm)

	_, err := w.Submit(context.Background())
	if !errors.Is(err, ErrPriceRequired) {
		t.Fatalf("error = %v, want ErrPriceRequired", err)
	}
	if ds.shipmentPosts.Load() != 0 {
		t.Fatalf("shipment posts = %d, want 0 without a quote", ds.shipmentPosts.Load())
	}
}

func TestSubmitCreatesShipment(t *testing.T) {
	ds := newDeskServer(t)
	w := readyWorkflow(t, ds)

	created, err := w.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if created.WaybillNumber != "RC-20260830-9F3A21BC" {
		t.Fatalf("waybill = %q, want the server-generated number", created.WaybillNumber)
	}
	if w.State() != StateCreated {
		t.Fatalf("state = %v, want created", w.State())
	}
	if got := w.Created(); got == nil || got.WaybillNumber != created.WaybillNumber {
		t.Fatalf("Created() = %+v, want the submission result", got)
	}

	ds.mu.Lock()
	payload := ds.lastShipment
	ds.mu.Unlock()
	if payload["senderName"] != "Jane Doe" {
		t.Errorf("payload senderName = %v, want the resolved customer name", payload["senderName"])
	}
	if payload["amountPaid"] != 1100.0 {
		t.Errorf("payload amountPaid = %v, want the computed total 1100", payload["amountPaid"])
	}
}

func TestSubmitSingleFlight(t *testing.T) {
	ds := newDeskServer(t)
	w := readyWorkflow(t, ds)

	hold := make(chan struct{})
	entered := make(chan struct{}, 1)
	ds.mu.Lock()
	ds.holdShipments = hold
	ds.shipmentsEntered = entered
	ds.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		done <- err
	}()

	<-entered // the first submission is now in flight

	if _, err := w.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("racing submit: error = %v, want ErrSubmitInFlight", err)
	}

	close(hold)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if ds.shipmentPosts.Load() != 1 {
		t.Fatalf("shipment posts = %d, want exactly 1", ds.shipmentPosts.Load())
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	ds := newDeskServer(t)
	w := readyWorkflow(t, ds)

	ds.mu.Lock()
	ds.failShipments = true
	ds.mu.Unlock()

	if _, err := w.Submit(context.Background()); err == nil {
		t.Fatal("expected submit failure")
	}
	if w.State() != StateFailed {
		t.Fatalf("state = %v, want failed", w.State())
	}
	if w.FailReason() == "" {
		t.Fatal("expected a recorded failure reason")
	}

	form := w.Form()
	if form.ReceiverName != "Ada Obi" || form.SenderName != "Jane Doe" {
		t.Fatalf("form was not preserved after failure: %+v", form)
	}

	// The guard is released, a retry reaches the server again.
	ds.mu.Lock()
	ds.failShipments = false
	ds.mu.Unlock()
	if _, err := w.Submit(context.Background()); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if ds.shipmentPosts.Load() != 2 {
		t.Fatalf("shipment posts = %d, want 2 after retry", ds.shipmentPosts.Load())
	}
}

func TestRequestPriceSupersededByFailure(t *testing.T) {
	firstReceived := make(chan struct{})
	releaseFirst := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/prices/calculate", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Weight float64 `json:"weight"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if body.Weight == 1 {
			close(firstReceived)
			<-releaseFirst
			fmt.Fprint(w, `{"totalPrice": 1000}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "No price found for category"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	w := NewWorkflow(New(server.URL))
	w.Edit(func(f *ShipmentForm) {
		fillForm(f)
		f.Weight = 1
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Overtaken by the failed recompute below; must surface as an
		// error, not a panic or a silent nil quote.
		if _, err := w.RequestPrice(context.Background()); err == nil {
			t.Error("superseded price request returned no error")
		}
	}()

	<-firstReceived
	w.Edit(func(f *ShipmentForm) { f.Weight = 2 })
	if _, err := w.RequestPrice(context.Background()); !errors.Is(err, ErrPriceCalculation) {
		t.Fatalf("recompute error = %v, want ErrPriceCalculation", err)
	}
	close(releaseFirst)
	<-done

	if w.Pricing().Quote() != nil {
		t.Fatal("no quote should be held after the recompute failed")
	}
}

func TestRequestPriceOverwritesAmountPaid(t *testing.T) {
	ds := newDeskServer(t)
	w := NewWorkflow(New(ds.URL))
	w.Edit(func(f *ShipmentForm) {
		fillForm(f)
		f.Insurance = true
		f.ItemValue = 100000
	})

	quote, err := w.RequestPrice(context.Background())
	if err != nil {
		t.Fatalf("RequestPrice failed: %v", err)
	}
	if quote.TotalPrice != 1600 {
		t.Fatalf("quote total = %v, want 1600 (1100 remote + 500 insurance)", quote.TotalPrice)
	}

	// A manual edit of amountPaid is discarded on recompute.
	w.Edit(func(f *ShipmentForm) { f.AmountPaid = 50 })
	if _, err := w.RequestPrice(context.Background()); err != nil {
		t.Fatalf("second RequestPrice failed: %v", err)
	}
	if got := w.Form().AmountPaid; got != 1600 {
		t.Fatalf("amountPaid = %v after recompute, want 1600", got)
	}
}
