package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArmForIndex(t *testing.T) {
	assert.Equal(t, ArmPlacebo, ArmForIndex(0))
	assert.Equal(t, ArmDrug1mg, ArmForIndex(1))
	assert.Equal(t, ArmDrug2mg, ArmForIndex(2))
	assert.Equal(t, ArmPlacebo, ArmForIndex(3))

	counts := map[Arm]int{}
	for i := 0; i < 600; i++ {
		counts[ArmForIndex(i)]++
	}
	for _, arm := range Arms {
		assert.Equal(t, 200, counts[arm], "arm %s", arm)
	}
}

func TestArmValidAndActive(t *testing.T) {
	assert.True(t, ArmDrug2mg.Active())
	assert.True(t, ArmDrug1mg.Active())
	assert.False(t, ArmPlacebo.Active())
	assert.False(t, Arm("Drug-5mg").Valid())
}

func TestTimepointIndex(t *testing.T) {
	assert.Equal(t, 0, TimepointBaseline.Index())
	assert.Equal(t, 3, TimepointWeek24.Index())
	assert.Equal(t, -1, Timepoint("week52").Index())
}

func TestDirectionSign(t *testing.T) {
	assert.Equal(t, -1.0, LowerIsBetter.Sign())
	assert.Equal(t, 1.0, HigherIsBetter.Sign())
	assert.False(t, Direction("sideways").Valid())
}

func TestStudyDesignArmMultiplier(t *testing.T) {
	assert.Equal(t, int64(1), DesignSingleArm.ArmMultiplier())
	assert.Equal(t, int64(2), DesignTwoArm.ArmMultiplier())
}

func TestTimeProfileValid(t *testing.T) {
	for _, p := range []TimeProfile{ProfileLinear, ProfileImmediate, ProfileDelayed, ProfileBiphasic, ProfilePeakDrop} {
		assert.True(t, p.Valid(), "profile %s", p)
	}
	assert.False(t, TimeProfile("sigmoid").Valid())
}
