package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

func TestComponent_IsValid(t *testing.T) {
	for _, c := range types.AllComponents() {
		gt.B(t, c.IsValid()).True()
	}

	gt.B(t, types.Component("DateInput").IsValid()).False()
	gt.B(t, types.Component("").IsValid()).False()
}

func TestParseComponent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.Component
		wantErr bool
	}{
		{
			name:  "valid text",
			input: "TextInput",
			want:  types.ComponentText,
		},
		{
			name:  "valid email",
			input: "EmailInput",
			want:  types.ComponentEmail,
		},
		{
			name:  "valid phone",
			input: "PhoneInput",
			want:  types.ComponentPhone,
		},
		{
			name:  "valid currency",
			input: "CurrencyInput",
			want:  types.ComponentCurrency,
		},
		{
			name:    "invalid component",
			input:   "SelectInput",
			wantErr: true,
		},
		{
			name:    "empty component",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseComponent(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
				gt.V(t, got).Equal(tt.want)
			}
		})
	}
}

func TestObjectType_Validate(t *testing.T) {
	gt.NoError(t, types.ObjectType("sales-lead").Validate())
	gt.NoError(t, types.ObjectType("ticket2").Validate())
	gt.Error(t, types.ObjectType("").Validate())
	gt.Error(t, types.ObjectType("Sales Lead").Validate())
	gt.Error(t, types.ObjectType("-lead").Validate())
}

func TestStageID_Validate(t *testing.T) {
	gt.NoError(t, types.StageID("qualified").Validate())
	gt.NoError(t, types.StageID("in_progress").Validate())
	gt.Error(t, types.StageID("").Validate())
	gt.Error(t, types.StageID("New Stage").Validate())
}
