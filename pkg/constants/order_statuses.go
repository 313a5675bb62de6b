package constants

// --- СТАТУСЫ ЗАКАЗОВ (совпадают со значениями в колонке orders.status) ---
type OrderStatus string

const (
	OrderStatusReceived         OrderStatus = "received"
	OrderStatusInProgress       OrderStatus = "in_progress"
	OrderStatusSent             OrderStatus = "sent"
	OrderStatusPartiallySent    OrderStatus = "partially_sent"
	OrderStatusFinished         OrderStatus = "finished"
	OrderStatusCancelled        OrderStatus = "cancelled"
	OrderStatusRefundedReturned OrderStatus = "refunded_returned"
)

var OrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusInProgress,
	OrderStatusSent,
	OrderStatusPartiallySent,
	OrderStatusFinished,
	OrderStatusCancelled,
	OrderStatusRefundedReturned,
}

// NominalNextStatuses - "обычный" маршрут заказа, который показывает админка.
// Бэкенд его не навязывает: записать можно любой статус из OrderStatuses.
var NominalNextStatuses = map[OrderStatus][]OrderStatus{
	OrderStatusReceived:      {OrderStatusInProgress, OrderStatusCancelled, OrderStatusRefundedReturned},
	OrderStatusInProgress:    {OrderStatusSent, OrderStatusPartiallySent, OrderStatusCancelled, OrderStatusRefundedReturned},
	OrderStatusSent:          {OrderStatusFinished, OrderStatusCancelled, OrderStatusRefundedReturned},
	OrderStatusPartiallySent: {OrderStatusSent, OrderStatusFinished, OrderStatusCancelled, OrderStatusRefundedReturned},
	OrderStatusFinished:      {},
}

func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// --- СТАТУСЫ ОПЛАТЫ ---
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

func (s PaymentStatus) String() string { return string(s) }

// --- ТИПЫ КЛИЕНТОВ ---
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeCompany    CustomerType = "company"
	CustomerTypeSchool     CustomerType = "school"
)

// --- ТИПЫ ДОКУМЕНТОВ ЗАКАЗА ---
type DocumentType string

const (
	DocumentTypePredracun           DocumentType = "predracun"
	DocumentTypePurchaseOrder       DocumentType = "purchase_order"
	DocumentTypeSchoolPurchaseOrder DocumentType = "school_purchase_order"
	DocumentTypeInvoice             DocumentType = "invoice"
	DocumentTypeDeliveryNote        DocumentType = "delivery_note"
)
