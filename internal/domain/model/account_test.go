package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccount_IsPayoutReady(t *testing.T) {
	tests := []struct {
		name     string
		account  Account
		expected bool
	}{
		{
			name:     "active with payouts enabled",
			account:  Account{Status: AccountStatusActive, IsPayoutsEnabled: true},
			expected: true,
		},
		{
			name:     "active without payouts enabled",
			account:  Account{Status: AccountStatusActive, IsPayoutsEnabled: false},
			expected: false,
		},
		{
			name:     "under review with payouts enabled",
			account:  Account{Status: AccountStatusUnderReview, IsPayoutsEnabled: true},
			expected: false,
		},
		{
			name:     "created",
			account:  Account{Status: AccountStatusCreated},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.account.IsPayoutReady())
		})
	}
}
