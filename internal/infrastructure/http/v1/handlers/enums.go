package handlers

import (
	"github.com/gin-gonic/gin"

	"vitrin/internal/domain/catalogs/customer"
	"vitrin/internal/domain/orders"
)

// EnumsHandler lists the fixed value sets clients build pickers from.
type EnumsHandler struct {
	*BaseHandler
}

// NewEnumsHandler creates a new enums handler.
func NewEnumsHandler(base *BaseHandler) *EnumsHandler {
	return &EnumsHandler{BaseHandler: base}
}

// List handles GET /meta/enums.
func (h *EnumsHandler) List(c *gin.Context) {
	h.OK(c, gin.H{
		"orderStatuses": []orders.Status{
			orders.StatusPending,
			orders.StatusProcessing,
			orders.StatusShipped,
			orders.StatusDelivered,
			orders.StatusCancelled,
		},
		"paymentStatuses": []orders.PaymentStatus{
			orders.PaymentPending,
			orders.PaymentPaid,
			orders.PaymentFailed,
			orders.PaymentRefunded,
		},
		"paymentMethods": []orders.PaymentMethod{
			orders.MethodCash,
			orders.MethodCreditCard,
			orders.MethodBankTransfer,
			orders.MethodOnline,
		},
		"customerTypes": []customer.Type{
			customer.TypeIndividual,
			customer.TypeBusiness,
		},
	})
}
