package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     StructuredCommand
		wantErr bool
	}{
		{"set income", StructuredCommand{Intent: SetValue, Category: CategoryIncome, Amount: Float(25000), Confidence: 0.9}, false},
		{"query without amount", StructuredCommand{Intent: QueryOnly, Category: CategoryOther}, false},
		{"missing amount is a shape-valid command", StructuredCommand{Intent: AddValue, Category: CategoryExpense}, false},
		{"unknown intent", StructuredCommand{Intent: "MULTIPLY", Category: CategoryIncome}, true},
		{"unknown category", StructuredCommand{Intent: AddValue, Category: "rent"}, true},
		{"confidence above one", StructuredCommand{Intent: AddValue, Category: CategoryExpense, Confidence: 1.2}, true},
		{"negative amount", StructuredCommand{Intent: AddValue, Category: CategoryExpense, Amount: Float(-3)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCommand)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIntentRequiresAmount(t *testing.T) {
	assert.True(t, SetValue.RequiresAmount())
	assert.True(t, AddValue.RequiresAmount())
	assert.True(t, SubtractValue.RequiresAmount())
	assert.True(t, SimulateLoan.RequiresAmount())
	assert.False(t, QueryOnly.RequiresAmount())
	assert.False(t, Intent("NOPE").RequiresAmount())
}
