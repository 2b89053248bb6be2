package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from OrderStatusType
		to   OrderStatusType
		want bool
	}{
		{OrderPending, OrderSuccess, true},
		{OrderPending, OrderFail, true},
		{OrderPending, OrderCancel, true},
		{OrderPending, OrderPending, false},
		{OrderSuccess, OrderFail, false},
		{OrderSuccess, OrderCancel, false},
		{OrderFail, OrderSuccess, false},
		{OrderCancel, OrderSuccess, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
