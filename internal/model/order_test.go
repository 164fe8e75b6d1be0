package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFlow(t *testing.T) {
	flow := StatusFlow()

	assert.Equal(t, StatusPending, flow[0])
	assert.Equal(t, StatusDelivered, flow[len(flow)-1])

	// walking NextStatus from PENDING visits the whole flow and stops at DELIVERED
	status := StatusPending
	visited := []OrderStatus{status}
	for {
		next, ok := NextStatus(status)
		if !ok {
			break
		}
		visited = append(visited, next)
		status = next
	}
	assert.Equal(t, flow, visited)
	assert.Equal(t, StatusDelivered, status)
}

func TestNextStatus_Terminal(t *testing.T) {
	_, ok := NextStatus(StatusDelivered)
	assert.False(t, ok)

	_, ok = NextStatus(StatusCancelled)
	assert.False(t, ok)

	_, ok = NextStatus(OrderStatus("UNKNOWN"))
	assert.False(t, ok)
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())

	for _, s := range StatusFlow()[:len(statusFlow)-1] {
		assert.False(t, s.Terminal(), "status %s", s)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range StatusFlow() {
		assert.True(t, ValidStatus(s), "status %s", s)
	}
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus(OrderStatus("SHIPPED")))
	assert.False(t, ValidStatus(OrderStatus("")))
}

func TestRestaurantView_CoversEveryStatus(t *testing.T) {
	expected := map[OrderStatus]RestaurantOrderStatus{
		StatusPending:   ViewPending,
		StatusConfirmed: ViewAccepted,
		StatusPreparing: ViewCooking,
		StatusReady:     ViewReadyForPickup,
		StatusAssigned:  ViewReadyForPickup,
		StatusPickedUp:  ViewCompleted,
		StatusDelivered: ViewCompleted,
		StatusCancelled: ViewCancelled,
	}
	for status, view := range expected {
		assert.Equal(t, view, status.RestaurantView(), "status %s", status)
	}

	// every status in the flow has a condensed mapping
	for _, s := range StatusFlow() {
		_, ok := expected[s]
		assert.True(t, ok, "status %s has no restaurant view", s)
	}
}
