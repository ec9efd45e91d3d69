package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrganizationsCreated counts successfully created organizations
	OrganizationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "organizations_created_total",
		Help: "Number of organizations created",
	})

	// StatusTransitions counts onboarding lifecycle transitions by target status
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "organization_status_transitions_total",
		Help: "Number of organization status transitions",
	}, []string{"to"})

	// PaymentReadinessChecks counts readiness evaluations by outcome
	PaymentReadinessChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "organization_payment_readiness_checks_total",
		Help: "Number of payment readiness evaluations",
	}, []string{"ready"})

	// InvoiceNumbersAllocated counts allocated customer invoice numbers
	InvoiceNumbersAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "organization_invoice_numbers_allocated_total",
		Help: "Number of customer invoice numbers allocated",
	})
)
