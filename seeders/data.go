package seeders

import (
	"github.com/shopspring/decimal"

	"supplies-backoffice/pkg/constants"
)

// Ставка НДС в Сербии.
var taxRate = decimal.RequireFromString("0.20")

type demoItem struct {
	ProductName string
	Quantity    int
	UnitPrice   string
}

type demoDocument struct {
	DocumentType constants.DocumentType
	Filename     string
}

type demoOrder struct {
	OrderNumber   string
	CustomerType  constants.CustomerType
	ContactName   string
	ContactEmail  string
	ContactPhone  string
	CompanyName   string
	SchoolName    string
	Address       string
	Status        constants.OrderStatus
	PaymentStatus constants.PaymentStatus
	Items         []demoItem
	Documents     []demoDocument
	// Archived - после вставки заказ уходит в архив через обычное мягкое удаление.
	Archived bool
}

var ordersData = []demoOrder{
	{
		OrderNumber:   "ORD-2026-0001",
		CustomerType:  constants.CustomerTypeSchool,
		ContactName:   "Marija Petrović",
		ContactEmail:  "nabavka@osvukkaradzic.edu.rs",
		ContactPhone:  "+381 11 123 4567",
		SchoolName:    "OŠ \"Vuk Karadžić\"",
		Address:       "Takovska 10, Beograd",
		Status:        constants.OrderStatusReceived,
		PaymentStatus: constants.PaymentStatusUnpaid,
		Items: []demoItem{
			{ProductName: "Sveska A4 kockice", Quantity: 200, UnitPrice: "89.00"},
			{ProductName: "Grafitna olovka HB", Quantity: 300, UnitPrice: "25.50"},
		},
		Documents: []demoDocument{
			{DocumentType: constants.DocumentTypeSchoolPurchaseOrder, Filename: "narudzbenica-skola.pdf"},
			{DocumentType: constants.DocumentTypePredracun, Filename: "predracun.pdf"},
		},
	},
	{
		OrderNumber:   "ORD-2026-0002",
		CustomerType:  constants.CustomerTypeCompany,
		ContactName:   "Nikola Jovanović",
		ContactEmail:  "office@kancelarija-plus.rs",
		CompanyName:   "Kancelarija Plus d.o.o.",
		Address:       "Bulevar oslobođenja 45, Novi Sad",
		Status:        constants.OrderStatusInProgress,
		PaymentStatus: constants.PaymentStatusPaid,
		Items: []demoItem{
			{ProductName: "Papir A4 80g (500 listova)", Quantity: 40, UnitPrice: "649.99"},
			{ProductName: "Registrator široki", Quantity: 25, UnitPrice: "310.00"},
		},
		Documents: []demoDocument{
			{DocumentType: constants.DocumentTypePurchaseOrder, Filename: "narudzbenica.pdf"},
			{DocumentType: constants.DocumentTypeInvoice, Filename: "faktura.pdf"},
		},
	},
	{
		OrderNumber:   "ORD-2026-0003",
		CustomerType:  constants.CustomerTypeIndividual,
		ContactName:   "Ana Nikolić",
		ContactEmail:  "ana.nikolic@example.rs",
		Status:        constants.OrderStatusSent,
		PaymentStatus: constants.PaymentStatusPaid,
		Items: []demoItem{
			{ProductName: "Ranac za školu", Quantity: 1, UnitPrice: "3490.00"},
		},
		Documents: []demoDocument{
			{DocumentType: constants.DocumentTypeDeliveryNote, Filename: "otpremnica.pdf"},
		},
	},
	{
		OrderNumber:   "ORD-2026-0004",
		CustomerType:  constants.CustomerTypeSchool,
		ContactName:   "Jelena Stanković",
		ContactEmail:  "sekretar@gimnazija-nis.edu.rs",
		SchoolName:    "Gimnazija \"Svetozar Marković\"",
		Address:       "Stanoja Bunuševca bb, Niš",
		Status:        constants.OrderStatusCancelled,
		PaymentStatus: constants.PaymentStatusRefunded,
		Items: []demoItem{
			{ProductName: "Kreda bela (kutija)", Quantity: 50, UnitPrice: "120.00"},
		},
		Archived: true,
	},
}

// totals считает сумму позиций, НДС и итог с округлением до пара.
func (o demoOrder) totals() (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.lineTotal())
	}
	tax = subtotal.Mul(taxRate).Round(2)
	return subtotal, tax, subtotal.Add(tax)
}

func (i demoItem) unitPrice() decimal.Decimal {
	return decimal.RequireFromString(i.UnitPrice)
}

func (i demoItem) lineTotal() decimal.Decimal {
	return i.unitPrice().Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}
