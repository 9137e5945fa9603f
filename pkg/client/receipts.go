package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
)

// Receipt is a stored receipt with its rendered PDF payload.
type Receipt struct {
	ID            uint   `json:"id"`
	WaybillNumber string `json:"waybillNumber"`
	SenderName    string `json:"senderName"`
	PDF           struct {
		Data []byte `json:"data"`
	} `json:"pdf"`
}

// ReceiptsBySender lists all receipts for a sender name, newest first.
func (c *Client) ReceiptsBySender(ctx context.Context, senderName string) ([]Receipt, error) {
	var receipts []Receipt
	if err := c.get(ctx, "/receipts/"+senderName, &receipts); err != nil {
		return nil, fmt.Errorf("failed to fetch receipts: %w", err)
	}
	return receipts, nil
}

// LatestReceiptBySender returns the most recent receipt for a sender.
func (c *Client) LatestReceiptBySender(ctx context.Context, senderName string) (*Receipt, error) {
	var receipt Receipt
	if err := c.get(ctx, "/receipts/latest/sender/"+senderName, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ReceiptBinder holds the receipt for the shipment currently on screen. It
// tracks which waybill the held receipt belongs to so that re-binding the
// same shipment does not refetch, and so late responses from an abandoned
// bind cannot clobber the current one.
type ReceiptBinder struct {
	client *Client

	mu         sync.Mutex
	nextSeq    uint64
	appliedSeq uint64
	waybill    string
	receipt    *Receipt
}

// NewReceiptBinder creates an empty binder.
func NewReceiptBinder(c *Client) *ReceiptBinder {
	return &ReceiptBinder{client: c}
}

// Receipt returns the currently bound receipt, or nil when the bound
// shipment has none.
func (b *ReceiptBinder) Receipt() *Receipt {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.receipt
}

// Bind fetches the receipt for a waybill number and holds it. Binding the
// waybill already held (with a loaded receipt) is a no-op. A shipment with
// no receipt yet binds to nil without error; only transport and server
// failures are reported.
func (b *ReceiptBinder) Bind(ctx context.Context, waybillNumber string) (*Receipt, error) {
	b.mu.Lock()
	if b.waybill == waybillNumber && b.receipt != nil {
		held := b.receipt
		b.mu.Unlock()
		return held, nil
	}
	b.nextSeq++
	seq := b.nextSeq
	b.mu.Unlock()

	var receipt Receipt
	err := b.client.get(ctx, "/receipts/waybill/"+waybillNumber, &receipt)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq < b.appliedSeq {
		return b.receipt, nil
	}
	b.appliedSeq = seq

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			b.waybill = waybillNumber
			b.receipt = nil
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch receipt: %w", err)
	}

	b.waybill = waybillNumber
	b.receipt = &receipt
	return b.receipt, nil
}

// Print writes the bound receipt's PDF to the given surface. Printing with
// no receipt loaded, an empty payload, or a nil surface logs and does
// nothing.
func (b *ReceiptBinder) Print(surface io.Writer) error {
	b.mu.Lock()
	receipt := b.receipt
	b.mu.Unlock()

	if receipt == nil || len(receipt.PDF.Data) == 0 {
		log.Println("print skipped: no receipt payload loaded")
		return nil
	}
	if surface == nil {
		log.Println("print skipped: no print surface available")
		return nil
	}

	if _, err := surface.Write(receipt.PDF.Data); err != nil {
		return fmt.Errorf("failed to write receipt to print surface: %w", err)
	}
	return nil
}
