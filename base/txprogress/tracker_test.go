package txprogress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type trackerTestSuite struct {
	suite.Suite
}

func TestTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(trackerTestSuite))
}

func (s *trackerTestSuite) TestStartAdvanceFail() {
	tr := New(WithKind(KindListing))
	tr.Start()
	tr.Advance("step1")
	tr.Fail("boom")

	st := tr.State()
	s.True(st.IsOpen)
	s.False(st.IsLoading)
	s.Equal("boom", st.Error)
	s.Equal(1, st.CurrentStep)
	s.Equal(PhaseError, tr.Phase())

	label, ok := st.Label()
	s.True(ok)
	s.Equal("Upload", label.Title)
}

func (s *trackerTestSuite) TestStartClearsPreviousError() {
	tr := New()
	tr.Start()
	tr.Fail("boom")
	tr.Start()

	st := tr.State()
	s.True(st.IsLoading)
	s.Empty(st.Error)
	s.Equal(0, st.CurrentStep)
	s.Equal(PhaseOpen, tr.Phase())
}

func (s *trackerTestSuite) TestAdvancePastLastStep() {
	tr := New()
	tr.Start(Step{Title: "only"})
	tr.Advance()
	tr.Advance()

	st := tr.State()
	s.Equal(2, st.CurrentStep)
	_, ok := st.Label()
	s.False(ok)
}

func (s *trackerTestSuite) TestSetStep() {
	tr := New(WithKind(KindPurchase))
	tr.Start()
	tr.SetStep(3, "confirming")

	st := tr.State()
	s.Equal(3, st.CurrentStep)
	s.Equal("confirming", st.Message)
	label, ok := st.Label()
	s.True(ok)
	s.Equal("Confirmation", label.Title)

	tr.SetStep(9)
	s.Equal(9, tr.State().CurrentStep)
	s.Equal("confirming", tr.State().Message)
}

func (s *trackerTestSuite) TestCustomStepsOnlyForOneRun() {
	tr := New(WithKind(KindBid))
	tr.Start(Step{Title: "custom"})
	s.Len(tr.State().Steps, 1)

	tr.Reset()
	tr.Start()
	s.Equal(DefaultSteps(KindBid), tr.State().Steps)
}

func (s *trackerTestSuite) TestCompleteClosesAfterDelay() {
	tr := New(WithCloseDelay(10 * time.Millisecond))
	tr.Start()
	tr.Advance()
	tr.Complete("done")

	st := tr.State()
	s.False(st.IsLoading)
	s.Equal("done", st.Message)
	s.Equal(PhaseClosing, tr.Phase())

	s.Eventually(func() bool { return tr.Phase() == PhaseIdle }, time.Second, 5*time.Millisecond)
	s.Equal(State{}, tr.State())
}

func (s *trackerTestSuite) TestStartCancelsPendingClose() {
	tr := New(WithCloseDelay(30 * time.Millisecond))
	tr.Start()
	tr.Complete()
	tr.Start()
	tr.Advance("fresh")

	time.Sleep(80 * time.Millisecond)
	st := tr.State()
	s.True(st.IsOpen)
	s.True(st.IsLoading)
	s.Equal(1, st.CurrentStep)
	s.Equal("fresh", st.Message)
	s.Equal(PhaseOpen, tr.Phase())
}

func (s *trackerTestSuite) TestReset() {
	tr := New(WithKind(KindListing))
	tr.Start()
	tr.Advance("a")
	tr.Reset()

	s.Equal(State{}, tr.State())
	s.Equal(PhaseIdle, tr.Phase())
}

func (s *trackerTestSuite) TestObserverSeesEveryChange() {
	var mu sync.Mutex
	var seen []State
	tr := New(WithObserver(func(st State) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, st)
	}))
	tr.Start()
	tr.UpdateMessage("hello")
	tr.Fail("x")

	mu.Lock()
	defer mu.Unlock()
	s.Len(seen, 3)
	s.Equal("hello", seen[1].Message)
	s.Equal("x", seen[2].Error)
}

func (s *trackerTestSuite) TestStateIsACopy() {
	tr := New(WithKind(KindListing))
	tr.Start()
	st := tr.State()
	st.Steps[0].Title = "changed"
	s.Equal("Approval", tr.State().Steps[0].Title)
}

func (s *trackerTestSuite) TestDefaultStepsUnknownKind() {
	s.Nil(DefaultSteps(Kind("auction")))
	s.Len(DefaultSteps(KindPurchase), 4)
}
