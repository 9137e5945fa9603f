package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/royalcourier/backoffice-backend/internal/models"
	"github.com/royalcourier/backoffice-backend/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Customer{},
		&models.Branch{},
		&models.Payroll{},
		&models.Rider{},
		&models.Price{},
		&models.PriceCategory{},
		&models.WeightCharge{},
		&models.DeliveryCharge{},
		&models.ScopeCharge{},
		&models.Shipment{},
		&models.Receipt{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	customer := models.Customer{Name: "Jane Doe", Address: "12 Allen Avenue", PhoneNumber: "08011112222"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	branch := models.Branch{Name: "Ikeja", Password: "secret-pass"}
	if err := branch.HashPassword(); err != nil {
		t.Fatalf("failed to hash branch password: %v", err)
	}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("failed to seed branch: %v", err)
	}
	rider := models.Rider{RiderName: "Musa Bello", VehicleModel: "CG125", PlateNumber: "LAG-123-XY", ContactNumber: "08120001111", VehicleType: "Motorcycle"}
	if err := db.Create(&rider).Error; err != nil {
		t.Fatalf("failed to seed rider: %v", err)
	}
	staff := models.Payroll{EmployeeName: "Chidi Okeke", Branch: "Ikeja", EmployeeRole: "Operations", PayPeriod: "weekly", BasicSalary: 120000}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("failed to seed staff: %v", err)
	}
	price := models.Price{Categories: []models.PriceCategory{{
		Name:      "Parcel",
		BasePrice: 500,
		WeightCharges: []models.WeightCharge{
			{Range: "0-5", Charge: 200},
			{Range: "5+", Charge: 350},
		},
		DeliveryCharges: []models.DeliveryCharge{
			{Type: "hubToHub", Charge: 300},
			{Type: "officeToHub", Charge: 450},
		},
		DeliveryScopeCharges: []models.ScopeCharge{
			{Scope: "withinState", Charge: 100},
			{Scope: "interstate", Charge: 600},
		},
	}}}
	if err := db.Create(&price).Error; err != nil {
		t.Fatalf("failed to seed price: %v", err)
	}

	return db
}

func newShipmentRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("RECEIPT_ARCHIVE_DIR", t.TempDir())
	if err := services.InitStorage(); err != nil {
		t.Fatalf("failed to initialize storage: %v", err)
	}

	hub := services.NewHub()
	go hub.Run()

	r := gin.New()
	r.POST("/shipments", CreateShipment(db, hub))
	r.GET("/shipments/:id", GetShipmentByID(db))
	r.GET("/shipments/waybill/:waybillNumber", GetShipmentByWaybill(db))
	r.GET("/receipts/waybill/:waybillNumber", GetReceiptByWaybill(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func shipmentPayload() map[string]interface{} {
	return map[string]interface{}{
		"senderName":        "Jane Doe",
		"senderPhoneNumber": "08011112222",
		"receiverName":      "Ada Obi",
		"receiverAddress":   "3 Marina Road, Lagos",
		"receiverPhone":     "08133334444",
		"description":       "Two cartons of books",
		"deliveryType":      "hubToHub",
		"originState":       "Lagos",
		"destinationState":  "Lagos",
		"weight":            2.5,
		"name":              "Parcel",
		"paymentMethod":     "cash",
		"branchName":        "Ikeja",
		"riderId":           1,
		"staffId":           1,
	}
}

func TestCreateShipmentAndFetchBack(t *testing.T) {
	db := setupTestDB(t)
	r := newShipmentRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/shipments", shipmentPayload())
	if w.Code != 201 {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	var created struct {
		Shipment models.Shipment `json:"shipment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.Shipment.WaybillNumber == "" {
		t.Fatal("created shipment has no waybill number")
	}
	// 500 base + 200 (0-5 band) + 300 hubToHub + 100 withinState
	if created.Shipment.TotalPrice != 1100 {
		t.Errorf("total price = %v, want 1100", created.Shipment.TotalPrice)
	}
	if created.Shipment.Status != string(models.StatusPending) {
		t.Errorf("status = %q, want Pending", created.Shipment.Status)
	}
	// amountPaid was omitted; it defaults to the computed total.
	if created.Shipment.AmountPaid != 1100 {
		t.Errorf("amountPaid = %v, want 1100", created.Shipment.AmountPaid)
	}

	// The record fetched by id and by waybill number is the same shipment.
	w = doJSON(t, r, http.MethodGet, "/shipments/1", nil)
	if w.Code != 200 {
		t.Fatalf("get by id status = %d, body %s", w.Code, w.Body.String())
	}
	var byID models.Shipment
	if err := json.Unmarshal(w.Body.Bytes(), &byID); err != nil {
		t.Fatalf("failed to decode shipment: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/shipments/waybill/"+created.Shipment.WaybillNumber, nil)
	if w.Code != 200 {
		t.Fatalf("get by waybill status = %d, body %s", w.Code, w.Body.String())
	}
	var byWaybill models.Shipment
	if err := json.Unmarshal(w.Body.Bytes(), &byWaybill); err != nil {
		t.Fatalf("failed to decode shipment: %v", err)
	}

	if byID.ID != created.Shipment.ID || byWaybill.ID != created.Shipment.ID {
		t.Fatalf("ids differ: created %d, by id %d, by waybill %d", created.Shipment.ID, byID.ID, byWaybill.ID)
	}
	if byID.WaybillNumber != byWaybill.WaybillNumber {
		t.Fatalf("waybills differ: %q vs %q", byID.WaybillNumber, byWaybill.WaybillNumber)
	}

	// The receipt was persisted alongside the shipment.
	w = doJSON(t, r, http.MethodGet, "/receipts/waybill/"+created.Shipment.WaybillNumber, nil)
	if w.Code != 200 {
		t.Fatalf("get receipt status = %d, body %s", w.Code, w.Body.String())
	}
	var receipt receiptView
	if err := json.Unmarshal(w.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("failed to decode receipt: %v", err)
	}
	if len(receipt.PDF.Data) == 0 {
		t.Fatal("receipt has no PDF payload")
	}
}

func TestCreateShipmentRejectsUnregisteredSender(t *testing.T) {
	db := setupTestDB(t)
	r := newShipmentRouter(t, db)

	payload := shipmentPayload()
	payload["senderPhoneNumber"] = "08099990000"

	w := doJSON(t, r, http.MethodPost, "/shipments", payload)
	if w.Code != 400 {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error != "Sender is not a registered customer" {
		t.Errorf("error = %q, want the sender rejection message", resp.Error)
	}

	var count int64
	db.Model(&models.Shipment{}).Count(&count)
	if count != 0 {
		t.Fatalf("shipments persisted = %d, want 0", count)
	}
}

func TestCreateShipmentRejectsUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	r := newShipmentRouter(t, db)

	payload := shipmentPayload()
	payload["name"] = "Freight"

	w := doJSON(t, r, http.MethodPost, "/shipments", payload)
	if w.Code != 400 {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}
