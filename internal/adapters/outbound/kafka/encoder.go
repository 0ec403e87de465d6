package kafkaout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"drinkstand/internal/core/domain"
)

// OrderSaved is the message value written for every saved order.
type OrderSaved struct {
	Event       string            `json:"event"`
	OrderNumber int               `json:"order_number"`
	Date        time.Time         `json:"date"`
	Items       []domain.LineItem `json:"items"`
	Total       int               `json:"total"`
}

const eventOrderSaved = "order_saved"

func EncodeOrder(o domain.Order) ([]byte, error) {
	b, err := json.Marshal(OrderSaved{
		Event:       eventOrderSaved,
		OrderNumber: o.Number,
		Date:        o.Date.UTC(),
		Items:       o.Items,
		Total:       o.TotalQuantity(),
	})
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return b, nil
}

// DecodeOrder parses an OrderSaved value back into an order, for consumers
// of the topic.
func DecodeOrder(b []byte) (domain.Order, error) {
	var ev OrderSaved

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&ev); err != nil {
		return domain.Order{}, fmt.Errorf("json decode: %w", err)
	}
	if ev.Event != eventOrderSaved {
		return domain.Order{}, fmt.Errorf("unexpected event %q", ev.Event)
	}

	o := domain.Order{Number: ev.OrderNumber, Date: ev.Date, Items: ev.Items}
	for _, ln := range o.Lines() {
		if err := ln.Validate(); err != nil {
			return domain.Order{}, fmt.Errorf("order validate: %w", err)
		}
	}
	if len(o.Items) == 0 {
		return domain.Order{}, errors.New("order validate: no items")
	}
	return o, nil
}
