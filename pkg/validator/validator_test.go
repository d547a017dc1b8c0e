package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type createOrderPayload struct {
	CustomerName string  `json:"customer_name" validate:"max=120"`
	TableNumber  int     `json:"table_number" validate:"min=0"`
	TotalAmount  float64 `json:"total_amount" validate:"min=0"`
	Status       string  `json:"status" validate:"required"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&createOrderPayload{TableNumber: -1})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)

	fields := make(map[string]string)
	for _, f := range failures {
		fields[f.Field] = f.Tag
	}
	require.Equal(t, "min", fields["table_number"])
	require.Equal(t, "required", fields["status"])
}

func TestValidateStructPassesValidPayload(t *testing.T) {
	err := ValidateStruct(&createOrderPayload{
		CustomerName: "Walk-in",
		TableNumber:  4,
		TotalAmount:  23.50,
		Status:       "pending",
	})
	require.NoError(t, err)
}
