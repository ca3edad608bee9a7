package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionWants(t *testing.T) {
	sub := Subscription{
		PhoneNumber: "+254712345678",
		CountyID:    39,
		AlertTypes:  []string{EventFlood, EventStorm},
		Active:      true,
	}

	assert.True(t, sub.Wants(EventFlood))
	assert.False(t, sub.Wants(EventDrought))

	wildcard := sub
	wildcard.AlertTypes = []string{AlertTypeAll}
	assert.True(t, wildcard.Wants(EventDrought))

	inactive := sub
	inactive.Active = false
	assert.False(t, inactive.Wants(EventFlood))
}
