package finance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		Kind:     KindExpense,
		Category: "Gıda",
		Amount:   300,
		Date:     NewDate(2024, 5, 10),
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr error
	}{
		{name: "valid", mutate: func(d *Draft) {}},
		{name: "unknown kind", mutate: func(d *Draft) { d.Kind = "transfer" }, wantErr: ErrInvalidKind},
		{name: "blank category", mutate: func(d *Draft) { d.Category = "  " }, wantErr: ErrEmptyCategory},
		{name: "zero amount", mutate: func(d *Draft) { d.Amount = 0 }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(d *Draft) { d.Amount = -5 }, wantErr: ErrInvalidAmount},
		{name: "zero date", mutate: func(d *Draft) { d.Date = Date{} }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 5, 3)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-03"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("03/05/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestKindSign(t *testing.T) {
	assert.Equal(t, 1.0, KindIncome.Sign())
	assert.Equal(t, -1.0, KindExpense.Sign())
}

func TestCategoriesFor(t *testing.T) {
	assert.Contains(t, CategoriesFor(KindExpense), "Kira")
	assert.Contains(t, CategoriesFor(KindIncome), "Maaş")
}
