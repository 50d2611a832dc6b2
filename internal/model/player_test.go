package model

import "testing"

func TestPlayer_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		player *Player
		want   string
	}{
		{"nil player", nil, "Unknown"},
		{"named", &Player{ID: 7, Name: "raider"}, "raider"},
		{"blank name falls back to id", &Player{ID: 76561198000000001}, "76561198000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlayer_IsAwakeHuman(t *testing.T) {
	tests := []struct {
		name   string
		player *Player
		want   bool
	}{
		{"nil", nil, false},
		{"awake human", &Player{Human: true}, true},
		{"sleeping human", &Player{Human: true, Sleeping: true}, false},
		{"bot", &Player{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.IsAwakeHuman(); got != tt.want {
				t.Errorf("IsAwakeHuman() = %v, want %v", got, tt.want)
			}
		})
	}
}
