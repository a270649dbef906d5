package controller

import (
	"encoding/json"
	"net/http"

	"github.com/bhavishkl/NoQue/auth"
	"github.com/bhavishkl/NoQue/config"
	"github.com/bhavishkl/NoQue/requests"
)

// joinFeeCurrency is the currency join-fee orders are created and verified
// in.
const joinFeeCurrency = "INR"

// CreatePaymentOrder creates a gateway order for the configured join fee so
// the client can collect payment before joining.
func (c *Controller) CreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	fee := config.GetJoinFee()
	if !fee.IsPositive() {
		requests.RespondBadRequest(w)
		return
	}

	order, err := c.Payments.CreateOrder(ctx, fee, joinFeeCurrency, "join-"+userID)
	if err != nil {
		c.Logger.WithError(err).Error("create payment order")
		requests.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}
