package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

func TestComputePayoutAmount(t *testing.T) {
	salary := &models.StaffBaseSalary{Amount: 1_500_000}
	allowance := &models.StaffAllowance{Amount: 200_000, IsActive: true}

	amount, err := computePayoutAmount(models.PayoutBaseSalary, salary, allowance)
	assert.NoError(t, err)
	assert.Equal(t, int64(1_500_000), amount)

	amount, err = computePayoutAmount(models.PayoutAllowance, salary, allowance)
	assert.NoError(t, err)
	assert.Equal(t, int64(200_000), amount)

	amount, err = computePayoutAmount(models.PayoutCombined, salary, allowance)
	assert.NoError(t, err)
	assert.Equal(t, int64(1_700_000), amount)
}

func TestComputePayoutAmountWithoutAllowance(t *testing.T) {
	salary := &models.StaffBaseSalary{Amount: 900_000}

	// Combined payout still works, it just pays the base salary alone.
	amount, err := computePayoutAmount(models.PayoutCombined, salary, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(900_000), amount)

	// An allowance-only payout needs an allowance on file.
	_, err = computePayoutAmount(models.PayoutAllowance, salary, nil)
	assert.Error(t, err)
}

func TestComputePayoutAmountWithoutSalary(t *testing.T) {
	allowance := &models.StaffAllowance{Amount: 50_000, IsActive: true}

	_, err := computePayoutAmount(models.PayoutBaseSalary, nil, allowance)
	assert.Error(t, err)

	_, err = computePayoutAmount(models.PayoutCombined, nil, allowance)
	assert.Error(t, err)

	amount, err := computePayoutAmount(models.PayoutAllowance, nil, allowance)
	assert.NoError(t, err)
	assert.Equal(t, int64(50_000), amount)
}
