package maccommand

import (
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/brocaar/chirpstack-device-region/internal/region"
)

type TestBase struct {
	suite.Suite

	plan  *region.Plan
	state State
}

func (ts *TestBase) SetupTest() {
	ts.plan = region.NewEU868(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ts.state = NewState(ts.plan)
}
