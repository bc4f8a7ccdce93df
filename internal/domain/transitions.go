package domain

// Allowed status transitions per entity. Terminal states have no
// outgoing edges, which makes delivered and cancelled irreversible.
var purchaseOrderTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderStatusPending:   {PurchaseOrderStatusApproved, PurchaseOrderStatusCancelled},
	PurchaseOrderStatusApproved:  {PurchaseOrderStatusDelivered, PurchaseOrderStatusCancelled},
	PurchaseOrderStatusDelivered: {},
	PurchaseOrderStatusCancelled: {},
}

var deliveryOrderTransitions = map[DeliveryOrderStatus][]DeliveryOrderStatus{
	DeliveryOrderStatusScheduled: {DeliveryOrderStatusInTransit, DeliveryOrderStatusDelivered, DeliveryOrderStatusCancelled},
	DeliveryOrderStatusInTransit: {DeliveryOrderStatusDelivered, DeliveryOrderStatusCancelled},
	DeliveryOrderStatusDelivered: {},
	DeliveryOrderStatusCancelled: {},
}

// Alert handling moves strictly forward, never back to an earlier state.
var alertTransitions = map[AlertStatus][]AlertStatus{
	AlertStatusOpen:       {AlertStatusInProgress, AlertStatusResolved},
	AlertStatusInProgress: {AlertStatusResolved},
	AlertStatusResolved:   {},
}

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusUnpaid: {InvoiceStatusPaid},
	InvoiceStatusPaid:   {},
}

// CanTransitionTo checks if the purchase order status can move to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	for _, allowed := range purchaseOrderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s PurchaseOrderStatus) IsTerminal() bool {
	return len(purchaseOrderTransitions[s]) == 0
}

// CanTransitionTo checks if the delivery order status can move to the target status
func (s DeliveryOrderStatus) CanTransitionTo(target DeliveryOrderStatus) bool {
	for _, allowed := range deliveryOrderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s DeliveryOrderStatus) IsTerminal() bool {
	return len(deliveryOrderTransitions[s]) == 0
}

// CanTransitionTo checks if the alert status can move to the target status
func (s AlertStatus) CanTransitionTo(target AlertStatus) bool {
	for _, allowed := range alertTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s AlertStatus) IsTerminal() bool {
	return len(alertTransitions[s]) == 0
}

// CanTransitionTo checks if the invoice status can move to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
