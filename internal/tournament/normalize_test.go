package tournament

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/firetourneys/arena/internal/models"
)

func baseInput(gameMode, teamType string) CreateTournamentInput {
	return CreateTournamentInput{
		Name:        "Weekend Clash",
		Type:        teamType,
		Slots:       48,
		EntryFee:    25,
		OrganizerID: 1,
		GameMode:    gameMode,
		StartTime:   time.Date(2026, 9, 5, 18, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeBattleRoyaleDefaults(t *testing.T) {
	got := Normalize(baseInput(models.ModeBattleRoyale, models.TypeSquad))

	assert.Equal(t, 1, got.MatchCount)
	assert.Equal(t, 1, got.KillPoints)
	assert.Equal(t, "10,6,5,4,3,2,1", got.PositionPoints)
	assert.Equal(t, models.StatusOpen, got.Status)
}

func TestNormalizeClashSquadDefaults(t *testing.T) {
	got := Normalize(baseInput(models.ModeClashSquad, models.TypeDuo))

	assert.Equal(t, 1, got.MatchCount)
	assert.Equal(t, 0, got.KillPoints)
	assert.Empty(t, got.PositionPoints)
	assert.Equal(t, "Limited", got.CSGameVariant)
	assert.Equal(t, "Both", got.Device)
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	in := baseInput(models.ModeBattleRoyale, models.TypeSolo)
	matchCount := 3
	killPoints := 2
	positionPoints := "15,12,10"
	in.MatchCount = &matchCount
	in.KillPoints = &killPoints
	in.PositionPoints = &positionPoints
	in.Format = "BR Solo Erangel Only"
	in.Description = "Custom description"

	got := Normalize(in)

	assert.Equal(t, 3, got.MatchCount)
	assert.Equal(t, 2, got.KillPoints)
	assert.Equal(t, "15,12,10", got.PositionPoints)
	assert.Equal(t, "BR Solo Erangel Only", got.Format)
	assert.Equal(t, "Custom description", got.Description)
}

func TestNormalizeDerivesFormatAndDescription(t *testing.T) {
	got := Normalize(baseInput(models.ModeBattleRoyale, models.TypeSquad))

	assert.Equal(t, "BR squad", got.Format)
	assert.Contains(t, got.Description, "BR squad")
}

func TestNormalizeExplicitZeroKillPoints(t *testing.T) {
	in := baseInput(models.ModeBattleRoyale, models.TypeSquad)
	zero := 0
	in.KillPoints = &zero

	got := Normalize(in)

	assert.Equal(t, 0, got.KillPoints, "an explicit zero is not replaced by the default")
}
