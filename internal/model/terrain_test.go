package model

import "testing"

func TestParseBiomes(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    Biome
		wantErr bool
	}{
		{"empty", nil, 0, false},
		{"single", []string{"Arctic"}, BiomeArctic, false},
		{"case and spaces", []string{" tundra ", "ARID"}, BiomeTundra | BiomeArid, false},
		{"unknown", []string{"Arctic", "Moon"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBiomes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBiomes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBiomes() = %b, want %b", got, tt.want)
			}
		})
	}
}

func TestParseTopologies(t *testing.T) {
	got, err := ParseTopologies([]string{
		"Cliffside", "Cliff", "Lake", "Ocean", "Monument", "Building", "Offshore", "River", "Swamp",
	})
	if err != nil {
		t.Fatalf("ParseTopologies() error = %v", err)
	}
	if got != DefaultBlockedTopology {
		t.Errorf("ParseTopologies() = %b, want %b", got, DefaultBlockedTopology)
	}

	if _, err := ParseTopologies([]string{"lava"}); err == nil {
		t.Error("ParseTopologies(lava) error = nil, want error")
	}
}
