package research

import "testing"

func TestSplitCompanyResearch(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantSpecific string
		wantOverview string
		wantFound    bool
	}{
		{
			name:         "marker present",
			text:         "Acme builds widgets for the topic.\n\nGeneral Company Information:\nAcme is a mid-size manufacturer.",
			wantSpecific: "Acme builds widgets for the topic.",
			wantOverview: "Acme is a mid-size manufacturer.",
			wantFound:    true,
		},
		{
			name:         "marker missing",
			text:         "Acme builds widgets for the topic.",
			wantSpecific: "Acme builds widgets for the topic.",
			wantOverview: "",
			wantFound:    false,
		},
		{
			name:         "marker first",
			text:         "General Company Information:\nAcme is a mid-size manufacturer.",
			wantSpecific: "",
			wantOverview: "Acme is a mid-size manufacturer.",
			wantFound:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specific, overview, found := splitCompanyResearch(tt.text)

			if specific != tt.wantSpecific {
				t.Errorf("specific = %q, want %q", specific, tt.wantSpecific)
			}
			if overview != tt.wantOverview {
				t.Errorf("overview = %q, want %q", overview, tt.wantOverview)
			}
			if found != tt.wantFound {
				t.Errorf("found = %v, want %v", found, tt.wantFound)
			}
		})
	}
}
