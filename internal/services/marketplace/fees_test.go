package marketplace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlatformFee(t *testing.T) {
	testcases := []struct {
		name    string
		amount  int64
		rate    int64
		want    int64
		wantErr error
	}{
		{name: "ten_percent_of_100", amount: 100, rate: 10, want: 10},
		{name: "floor_truncates", amount: 99, rate: 10, want: 9},
		{name: "zero_rate", amount: 1000, rate: 0, want: 0},
		{name: "full_rate", amount: 1000, rate: 100, want: 1000},
		{name: "sub_unit_amount_floors_to_zero", amount: 9, rate: 10, want: 0},
		{name: "overflow_is_fatal", amount: math.MaxInt64, rate: 99, wantErr: ErrArithmeticOverflow},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := platformFee(tc.amount, tc.rate)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestReimbursementAmount(t *testing.T) {
	testcases := []struct {
		name     string
		quantity int64
		price    int64
		rate     int64
		want     int64
		wantErr  error
	}{
		// 10 units at nominal price 50 reimbursed at 80%.
		{name: "eighty_percent_payout", quantity: 10, price: 50, rate: 80, want: 400},
		{name: "floor_truncates", quantity: 1, price: 3, rate: 50, want: 1},
		{name: "zero_rate_pays_nothing", quantity: 100, price: 50, rate: 0, want: 0},
		{name: "full_rate_pays_nominal", quantity: 7, price: 50, rate: 100, want: 350},
		{name: "value_overflow_is_fatal", quantity: math.MaxInt64, price: 2, rate: 80, wantErr: ErrArithmeticOverflow},
		{name: "scaled_overflow_is_fatal", quantity: math.MaxInt64 / 2, price: 2, rate: 80, wantErr: ErrArithmeticOverflow},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := reimbursementAmount(tc.quantity, tc.price, tc.rate)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCheckedMul(t *testing.T) {
	got, err := checkedMul(0, math.MaxInt64)
	require.NoError(t, err)
	require.Zero(t, got)

	got, err = checkedMul(math.MaxInt64, 1)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), got)

	_, err = checkedMul(math.MaxInt64, 2)
	require.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestCheckedAdd(t *testing.T) {
	got, err := checkedAdd(math.MaxInt64-1, 1)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), got)

	_, err = checkedAdd(math.MaxInt64, 1)
	require.ErrorIs(t, err, ErrArithmeticOverflow)
}
