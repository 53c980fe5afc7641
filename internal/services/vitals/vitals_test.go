package vitals_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/services/vitals"
)

type VitalsTestSuite struct {
	suite.Suite
	clock *daytime.Clock
	agent *vitals.Agent
}

func (s *VitalsTestSuite) SetupTest() {
	clock, err := daytime.New(daytime.DefaultConfig())
	s.Require().NoError(err)

	agent, err := vitals.New(&vitals.Config{
		MaxHealth:        3,
		MaxHappiness:     10,
		MaxHunger:        2,
		MaxThirst:        4,
		HungerEveryTicks: 4,
		ThirstEveryTicks: 2,
		StarvationDamage: 1,
	})
	s.Require().NoError(err)
	s.Require().NoError(clock.Subscribe(agent))

	s.clock = clock
	s.agent = agent
}

func (s *VitalsTestSuite) TestDecayPerHour() {
	s.Require().NoError(s.clock.SkipHours(1))

	status := s.agent.Status()
	s.Equal(1, status.Hunger.Current)
	s.Equal(2, status.Thirst.Current)
	s.Equal(3, status.Health.Current)
}

func (s *VitalsTestSuite) TestStarvation() {
	// hunger empties on tick 8; ticks 8, 9 and 10 each cost one health
	s.Require().NoError(s.clock.SkipMinutes(7 * 15))
	s.False(s.agent.Dead())
	s.Equal(3, s.agent.Status().Health.Current)

	s.Require().NoError(s.clock.SkipMinutes(2 * 15))
	s.False(s.agent.Dead())
	s.Equal(1, s.agent.Status().Health.Current)

	s.Require().NoError(s.clock.SkipMinutes(15))
	s.True(s.agent.Dead())

	// no further decay once dead
	before := s.agent.Status()
	s.Require().NoError(s.clock.SkipHours(5))
	s.Equal(before, s.agent.Status())
}

func (s *VitalsTestSuite) TestEatAndDrinkClamp() {
	s.Require().NoError(s.clock.SkipHours(1))

	s.agent.Eat(10)
	s.agent.Drink(1)

	status := s.agent.Status()
	s.Equal(2, status.Hunger.Current)
	s.Equal(3, status.Thirst.Current)
}

func (s *VitalsTestSuite) TestRestore() {
	s.agent.DeductHealth(2)
	s.agent.DeductHappiness(7)
	s.Equal(1, s.agent.Status().Health.Current)
	s.Equal(3, s.agent.Status().Happiness.Current)

	s.agent.AddHealth(1)
	s.agent.AddHappiness(1)
	s.Equal(2, s.agent.Status().Health.Current)
	s.Equal(4, s.agent.Status().Happiness.Current)

	s.agent.FullHealth()
	s.agent.FullHappiness()
	s.Equal(3, s.agent.Status().Health.Current)
	s.Equal(10, s.agent.Status().Happiness.Current)
}

func (s *VitalsTestSuite) TestConfigValidation() {
	_, err := vitals.New(nil)
	s.Error(err)

	cfg := vitals.DefaultConfig()
	cfg.HungerEveryTicks = 0
	cfg.StarvationDamage = -1
	_, err = vitals.New(cfg)
	s.Require().Error(err)
	s.Contains(err.Error(), "HungerEveryTicks")
	s.Contains(err.Error(), "StarvationDamage")
}

func TestVitalsTestSuite(t *testing.T) {
	suite.Run(t, new(VitalsTestSuite))
}
