package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateWaybillNumber returns a new customer-facing waybill number, e.g.
// "RC-20260830-7F3A21C4". The date prefix keeps numbers sortable at a glance;
// the uuid fragment makes them unique.
func GenerateWaybillNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("RC-%s-%s", time.Now().Format("20060102"), suffix)
}
