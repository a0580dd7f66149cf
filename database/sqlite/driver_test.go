package sqlite

import (
	"testing"

	"github.com/pingdeck/migrate/database"
)

func TestNewDriver(t *testing.T) {
	driver := NewDriver()

	if driver == nil {
		t.Fatal("Expected non-nil driver")
	}

	if driver.Introspector == nil {
		t.Error("Expected non-nil introspector")
	}

	if driver.Generator == nil {
		t.Error("Expected non-nil generator")
	}
}

func TestDriver_Name(t *testing.T) {
	driver := NewDriver()

	if driver.Name() != "sqlite" {
		t.Errorf("Expected name 'sqlite', got '%s'", driver.Name())
	}
}

func TestDriver_SupportsFeature(t *testing.T) {
	driver := NewDriver()

	tests := []struct {
		feature  string
		expected bool
	}{
		{database.FeatureVolatileColumnDefault, false}, // ADD COLUMN only accepts constant defaults
		{database.FeatureAddColumnIfNotExists, false},
		{"UNSUPPORTED_FEATURE", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.feature, func(t *testing.T) {
			result := driver.SupportsFeature(tt.feature)
			if result != tt.expected {
				t.Errorf("SupportsFeature(%s) = %v, want %v", tt.feature, result, tt.expected)
			}
		})
	}
}

func TestDriver_ImplementsInterface(t *testing.T) {
	var _ database.Driver = (*Driver)(nil)
	var _ database.Introspector = (*Introspector)(nil)
	var _ database.SQLGenerator = (*Generator)(nil)
}
