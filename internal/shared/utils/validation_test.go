package utils

import (
	"strings"
	"testing"

	"coursegate/internal/shared/errors"
)

func TestValidateStruct(t *testing.T) {
	type checkoutReq struct {
		EntitlementSlug string `json:"entitlement_slug" validate:"required,max=128"`
	}

	t.Run("valid struct passes", func(t *testing.T) {
		if err := ValidateStruct(checkoutReq{EntitlementSlug: "course:go-basics"}); err != nil {
			t.Errorf("ValidateStruct() = %v, want nil", err)
		}
	})

	t.Run("missing required field reports json name", func(t *testing.T) {
		err := ValidateStruct(checkoutReq{})
		if !errors.IsValidationError(err) {
			t.Fatalf("ValidateStruct() = %v, want validation error", err)
		}
		appErr := err.(*errors.AppError)
		if !strings.Contains(appErr.Details, "entitlement_slug is required") {
			t.Errorf("Details = %q, want required message with json field name", appErr.Details)
		}
	})

	t.Run("overlong field rejected", func(t *testing.T) {
		err := ValidateStruct(checkoutReq{EntitlementSlug: strings.Repeat("x", 200)})
		if !errors.IsValidationError(err) {
			t.Fatalf("ValidateStruct() = %v, want validation error", err)
		}
	})
}

func TestValidateAccessTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{"free sentinel", "free", false},
		{"course slug", "course:go-basics", false},
		{"membership slug", "membership:monthly", false},
		{"all-access slug", "membership:all-access", false},
		{"empty", "", true},
		{"unknown prefix", "bundle:starter", true},
		{"uppercase", "course:Go-Basics", true},
		{"missing identifier", "course:", true},
		{"bare word", "go-basics", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccessTag(tt.tag)
			if tt.wantErr && !errors.IsValidationError(err) {
				t.Errorf("ValidateAccessTag(%q) = %v, want validation error", tt.tag, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAccessTag(%q) = %v, want nil", tt.tag, err)
			}
		})
	}
}
