package portfolio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferTitle(t *testing.T) {
	tests := []struct {
		file     string
		category string
		want     string
	}{
		{"celine-isa-LHQ-03.jpg", "cosplay", "Celine Cosplay Session 03"},
		{"20240105-143000-gardacon-lhq-12.jpg", "cosplay", "GardaCon Convention - Jan 5, 2024 12"},
		{"jabergamo-2025.jpg", "corporate", "JA Finals 2025"},
		{"comofun-2024", "cosplay", "ComoFun Convention 2024"},
		{"MDAY-1.JPG", "corporate", "Marconi's Day 1"},
		{"microsoft-143015.jpg", "corporate", "Microsoft Event at 14:30 143015"},
		{"dragon-knight.jpg", "cosplay", "Dragon Cosplay - Knight"},
		{"dragon-knight.jpg", "corporate", "Dragon Knight"},
		{"torino-comicon-day2.jpg", "cosplay", "Comicon Convention - Comicon Day2"},
		{"20240105-143000-dragon-knight.jpg", "corporate", "Dragon Knight - Jan 5, 2024"},
		{"20241399-dragon.jpg", "corporate", "20241399 Dragon"},
		{"team-offsite-2023.jpg", "corporate", "Team Offsite"},
		{"portrait.png", "cosplay", "Portrait"},
		{"---.jpg", "cosplay", Untitled},
		{"", "cosplay", Untitled},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			assert.Equal(t, tc.want, InferTitle(tc.file, tc.category))
		})
	}
}

func TestInferTitleLongestKeywordWins(t *testing.T) {
	// "br4ndy" is longer than "cos" and "lhq"
	assert.Equal(t, "Brandy Cosplay Series 02", InferTitle("SGT25-br4ndy.cos_-LHQ-02.jpg", "cosplay"))
	// "akiraflame" beats "lhq"
	assert.Equal(t, "Akira Flame Cosplay Session 03", InferTitle("akiraflame-LHQ-03.jpg", "cosplay"))
}

func TestInferTitleIsTotalAndDeterministic(t *testing.T) {
	names := []string{
		"a", "A.JPG", "_", "-", "....", "20240229-x.jpg", "19991231", "123456",
		"con-con-con", "galaxy_far_away.webp", "x-0", "x-2024", "ç-ü.png",
	}
	for _, n := range names {
		for _, c := range []string{"cosplay", "corporate", ""} {
			got := InferTitle(n, c)
			assert.NotEmpty(t, got, "InferTitle(%q, %q)", n, c)
			assert.Equal(t, got, InferTitle(n, c), "InferTitle(%q, %q) not deterministic", n, c)
		}
	}
}

func TestInferTitleIncludesPrefixDate(t *testing.T) {
	for _, n := range []string{"20240229-sunset.jpg", "20231105-a-b.jpg", "19990101-nibbo.jpg"} {
		got := InferTitle(n, "cosplay")
		assert.True(t, strings.Contains(got, "Feb 29, 2024") || strings.Contains(got, "Nov 5, 2023") || strings.Contains(got, "Jan 1, 1999"),
			"%q: date missing from %q", n, got)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Comic Con 2024", TitleCase("comic-con_2024"))
	assert.Equal(t, "Hello World", TitleCase("hello__world"))
	assert.Equal(t, "", TitleCase("--"))
}
