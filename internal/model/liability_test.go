package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiabilityRepaymentPercentage(t *testing.T) {
	liability := &Liability{
		CurrentBalance: dec("250000"),
		OriginalAmount: decp("1000000"),
	}
	require.True(t, dec("750000").Equal(liability.PaidAmount()))
	require.True(t, dec("75").Equal(liability.RepaymentPercentage()))
}

func TestLiabilityRepaymentWithoutOriginal(t *testing.T) {
	liability := &Liability{CurrentBalance: dec("5000")}
	require.True(t, liability.PaidAmount().IsZero())
	require.True(t, liability.RepaymentPercentage().IsZero())
}

func TestLiabilityRepaymentZeroOriginal(t *testing.T) {
	liability := &Liability{
		CurrentBalance: dec("0"),
		OriginalAmount: decp("0"),
	}
	require.True(t, liability.RepaymentPercentage().IsZero())
}

func TestLiabilityRepaymentRounding(t *testing.T) {
	liability := &Liability{
		CurrentBalance: dec("2"),
		OriginalAmount: decp("3"),
	}
	// paid 1 of 3: 33.33% after half-up rounding at four decimals.
	require.True(t, dec("33.33").Equal(liability.RepaymentPercentage()),
		"got %s", liability.RepaymentPercentage())
}
