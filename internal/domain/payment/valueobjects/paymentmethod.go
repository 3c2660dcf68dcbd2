package valueobjects

import "fmt"

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodEFT        PaymentMethod = "eft"
	PaymentMethodDebitOrder PaymentMethod = "debit_order"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodStopOrder  PaymentMethod = "stop_order"
)

func NewPaymentMethod(method string) (PaymentMethod, error) {
	pm := PaymentMethod(method)
	if !pm.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", method)
	}
	return pm, nil
}

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodCash, PaymentMethodEFT, PaymentMethodDebitOrder,
		PaymentMethodCard, PaymentMethodStopOrder:
		return true
	default:
		return false
	}
}

func (pm PaymentMethod) String() string {
	return string(pm)
}
