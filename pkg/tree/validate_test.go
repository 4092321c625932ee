package tree

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/sunburst/pkg/errors"
)

func angle(v float64) *float64 { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		node     *Node
		wantCode errors.Code
	}{
		{
			name: "valid tree",
			node: branch(leaf(), branch(leaf(), leaf())),
		},
		{
			name: "valid override",
			node: branch(&Node{StartAngle: angle(0), EndAngle: angle(math.Pi)}),
		},
		{
			name:     "nil root",
			node:     nil,
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "negative leaves",
			node:     branch(&Node{Leaves: -1}),
			wantCode: errors.ErrCodeInvalidWeight,
		},
		{
			name:     "start without end",
			node:     branch(&Node{StartAngle: angle(1)}),
			wantCode: errors.ErrCodeInconsistentOverride,
		},
		{
			name:     "end without start",
			node:     branch(&Node{EndAngle: angle(1)}),
			wantCode: errors.ErrCodeInconsistentOverride,
		},
		{
			name:     "NaN override",
			node:     branch(&Node{StartAngle: angle(math.NaN()), EndAngle: angle(1)}),
			wantCode: errors.ErrCodeInconsistentOverride,
		},
		{
			name:     "nil child",
			node:     &Node{Children: []*Node{nil}},
			wantCode: errors.ErrCodeMissingStructure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestValidateReportsPath(t *testing.T) {
	bad := &Node{Leaves: -2}
	root := branch(leaf(), branch(leaf(), bad))

	err := Validate(root)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if want := "0:1:1"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should mention path %s", err, want)
	}
}
