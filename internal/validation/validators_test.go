package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+201001234567", true},
		{"01001234567", true},
		{"+77011234567", true},
		{"12345", false},
		{"", false},
		{"phone", false},
		{"+20 100 123", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPhone(tt.phone), "phone %q", tt.phone)
	}
}

func TestValidNationalID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"29801011234567", true},
		{"2980101123456", false},  // 13 цифр
		{"298010112345678", false}, // 15 цифр
		{"2980101123456a", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidNationalID(tt.id), "id %q", tt.id)
	}
}

func TestCheckUnitRejectsNegatives(t *testing.T) {
	assert.False(t, CheckUnit(100000, 85.5).HasErrors())
	assert.Contains(t, CheckUnit(-1, 50), "price")
	assert.Contains(t, CheckUnit(100, -0.5), "area")
	// Ноль допустим
	assert.False(t, CheckUnit(0, 0).HasErrors())
}

func TestCheckContract(t *testing.T) {
	tests := []struct {
		name        string
		total       float64
		discount    float64
		final       float64
		downPayment float64
		wantField   string
	}{
		{"valid", 500000, 50000, 450000, 100000, ""},
		{"discount above total", 500000, 500001, -1, 0, "discount"},
		{"down payment above total", 500000, 0, 500000, 500001, "downPayment"},
		{"final price mismatch", 500000, 50000, 449000, 0, "finalPrice"},
		{"negative down payment", 500000, 0, 500000, -5, "downPayment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := CheckContract(tt.total, tt.discount, tt.final, tt.downPayment)
			if tt.wantField == "" {
				assert.False(t, errs.HasErrors())
			} else {
				assert.Contains(t, errs, tt.wantField)
			}
		})
	}
}

func TestCheckTransferRejectsSameSafe(t *testing.T) {
	// Перевод кассы самой себе отклоняется всегда
	errs := CheckTransfer(3, 3, 1000)
	assert.Contains(t, errs, "toSafeId")

	assert.False(t, CheckTransfer(1, 2, 1000).HasErrors())
	assert.Contains(t, CheckTransfer(1, 2, 0), "amount")
}

func TestCheckDateRange(t *testing.T) {
	early := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	assert.False(t, CheckDateRange(nil, nil).HasErrors())
	assert.False(t, CheckDateRange(&early, nil).HasErrors())
	assert.False(t, CheckDateRange(nil, &late).HasErrors())
	assert.False(t, CheckDateRange(&early, &late).HasErrors())
	assert.False(t, CheckDateRange(&early, &early).HasErrors())
	assert.Contains(t, CheckDateRange(&late, &early), "startDate")
}
