package entity

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name  string
		table map[string][]string
		from  string
		to    string
		want  bool
	}{
		{"vendor pending to approved", ValidVendorTransitions, VendorStatusPending, VendorStatusApproved, true},
		{"vendor rejected may be re-reviewed", ValidVendorTransitions, VendorStatusRejected, VendorStatusApproved, true},
		{"vendor approved cannot go pending", ValidVendorTransitions, VendorStatusApproved, VendorStatusPending, false},

		{"enquiry pending to quoted", ValidEnquiryTransitions, EnquiryStatusPending, EnquiryStatusQuoted, true},
		{"enquiry rejected reopens", ValidEnquiryTransitions, EnquiryStatusRejected, EnquiryStatusPending, true},
		{"enquiry quoted is terminal", ValidEnquiryTransitions, EnquiryStatusQuoted, EnquiryStatusPending, false},

		{"quotation sent to negotiating", ValidQuotationTransitions, QuotationStatusSent, QuotationStatusNegotiating, true},
		{"quotation accepted to approved", ValidQuotationTransitions, QuotationStatusAccepted, QuotationStatusApproved, true},
		{"quotation rejected is terminal", ValidQuotationTransitions, QuotationStatusRejected, QuotationStatusApproved, false},

		{"counter pending to accepted", ValidCounterTransitions, CounterStatusPending, CounterStatusAccepted, true},
		{"counter accepted is settled", ValidCounterTransitions, CounterStatusAccepted, CounterStatusRejected, false},

		{"loi sent to accepted", ValidLOITransitions, LOIStatusSent, LOIStatusAccepted, true},
		{"loi rejected may be resent", ValidLOITransitions, LOIStatusRejected, LOIStatusSent, true},
		{"loi accepted to confirmed", ValidLOITransitions, LOIStatusAccepted, LOIStatusConfirmed, true},
		{"loi sent cannot skip to confirmed", ValidLOITransitions, LOIStatusSent, LOIStatusConfirmed, false},

		{"order pending to confirmed", ValidOrderTransitions, OrderStatusPending, OrderStatusConfirmed, true},
		{"order confirmed to completed", ValidOrderTransitions, OrderStatusConfirmed, OrderStatusCompleted, true},
		{"order completed is terminal", ValidOrderTransitions, OrderStatusCompleted, OrderStatusCancelled, false},
		{"order cancelled is terminal", ValidOrderTransitions, OrderStatusCancelled, OrderStatusPending, false},

		{"invoice pending to received", ValidInvoiceTransitions, InvoiceStatusPending, InvoiceStatusReceived, true},
		{"invoice received to paid", ValidInvoiceTransitions, InvoiceStatusReceived, InvoiceStatusPaid, true},
		{"invoice pending cannot skip to paid", ValidInvoiceTransitions, InvoiceStatusPending, InvoiceStatusPaid, false},
		{"invoice paid is terminal", ValidInvoiceTransitions, InvoiceStatusPaid, InvoiceStatusRejected, false},

		{"payment pending to completed", ValidPaymentTransitions, PaymentStatusPending, PaymentStatusCompleted, true},
		{"payment completed to receipt sent", ValidPaymentTransitions, PaymentStatusCompleted, PaymentStatusReceiptSent, true},
		{"payment failed is terminal", ValidPaymentTransitions, PaymentStatusFailed, PaymentStatusCompleted, false},

		{"unknown status has no targets", ValidOrderTransitions, "bogus", OrderStatusConfirmed, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CanTransition(c.table, c.from, c.to); got != c.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
			}
		})
	}
}
