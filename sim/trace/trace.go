package trace

import "github.com/sirupsen/logrus"

// Config controls trace collection behavior.
type Config struct {
	// Enabled turns recording and log emission on.
	Enabled bool
	// Emit additionally writes a human-readable line per record through
	// logrus at Info level.
	Emit bool
}

// Trace collects caller lifecycle records during one simulation run.
// A disabled Trace drops records with no overhead; the engine never branches
// on trace state.
type Trace struct {
	Config  Config
	Records []CallRecord
}

// New creates a Trace ready for recording.
func New(config Config) *Trace {
	return &Trace{
		Config:  config,
		Records: make([]CallRecord, 0),
	}
}

// Record appends a caller lifecycle record and, when emission is on, logs it.
func (t *Trace) Record(rec CallRecord) {
	if !t.Config.Enabled {
		return
	}
	t.Records = append(t.Records, rec)
	if !t.Config.Emit {
		return
	}
	switch rec.Stage {
	case StageArrival:
		logrus.Infof("call %d arrives at %.3f", rec.CallerID, rec.Clock)
	case StageServiceStart:
		logrus.Infof("operator answered call %d at %.3f; waiting time was %.3f",
			rec.CallerID, rec.Clock, rec.WaitingTime)
	case StageServiceEnd:
		logrus.Infof("call %d ended at %.3f; duration was %.3f",
			rec.CallerID, rec.Clock, rec.Duration)
	case StageCallbackStart:
		logrus.Infof("nurse called patient %d back at %.3f; waiting time was %.3f",
			rec.CallerID, rec.Clock, rec.WaitingTime)
	case StageCallbackEnd:
		logrus.Infof("nurse consultation %d ended at %.3f; duration was %.3f",
			rec.CallerID, rec.Clock, rec.Duration)
	}
}

// ForStage returns the recorded entries for one lifecycle stage.
func (t *Trace) ForStage(stage Stage) []CallRecord {
	out := make([]CallRecord, 0)
	for _, rec := range t.Records {
		if rec.Stage == stage {
			out = append(out, rec)
		}
	}
	return out
}
