package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OTPIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mystore_otp_issued_total",
		Help: "One-time codes issued.",
	})

	OTPVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mystore_otp_verifications_total",
		Help: "OTP verification attempts by result.",
	}, []string{"result"})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mystore_emails_total",
		Help: "Outbound emails by type and delivery status.",
	}, []string{"type", "status"})

	ProductMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mystore_product_mutations_total",
		Help: "Product state transitions by action.",
	}, []string{"action"})
)
