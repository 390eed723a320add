package typeid

import (
	"strings"
	"testing"
)

func TestNewAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"document", NewDocumentID, PrefixDocument},
		{"snapshot", NewSnapshotID, PrefixSnapshot},
		{"session", NewSessionID, PrefixSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.gen()
			if !strings.HasPrefix(id, tt.prefix+"_") {
				t.Errorf("id %q missing prefix %q", id, tt.prefix)
			}
			if err := Validate(id, tt.prefix); err != nil {
				t.Errorf("Validate(%q) error = %v", id, err)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	if err := Validate(NewDocumentID(), PrefixSession); err == nil {
		t.Error("Validate with the wrong prefix error = nil")
	}
	if err := Validate("not-an-id", PrefixDocument); err == nil {
		t.Error("Validate(garbage) error = nil")
	}
}
