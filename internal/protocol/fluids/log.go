package fluids

import (
	"time"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
)

// BolusLog is the append-only bolus sequence for one session. Records are
// never deleted within a session; the running total is the basis for the
// escalation thresholds.
type BolusLog struct {
	records []model.FluidBolusRecord
}

// NewBolusLog rebuilds a log from previously persisted records, assumed
// to be in administration order.
func NewBolusLog(records []model.FluidBolusRecord) *BolusLog {
	log := &BolusLog{records: make([]model.FluidBolusRecord, len(records))}
	copy(log.records, records)
	return log
}

// Append records one administered bolus, assigning its number and the new
// running total, and returns the completed record.
func (l *BolusLog) Append(bolusType model.BolusType, volumeMLKg float64, volumeML int, at time.Time) model.FluidBolusRecord {
	record := model.FluidBolusRecord{
		BolusNumber:    len(l.records) + 1,
		Type:           bolusType,
		VolumeMLKg:     volumeMLKg,
		VolumeML:       volumeML,
		TotalGivenMLKg: l.TotalMLKg() + volumeMLKg,
		TimeGiven:      at,
		Outcome:        model.OutcomePending,
	}
	l.records = append(l.records, record)
	return record
}

// TotalMLKg returns the cumulative volume given across the session.
func (l *BolusLog) TotalMLKg() float64 {
	if len(l.records) == 0 {
		return 0
	}
	return l.records[len(l.records)-1].TotalGivenMLKg
}

// Overloaded reports whether any recorded bolus was reassessed as fluid
// overload. Overload is a hard stop for the whole session, not only for
// the bolus it was observed on.
func (l *BolusLog) Overloaded() bool {
	for _, r := range l.records {
		if r.Outcome == model.OutcomeOverloaded {
			return true
		}
	}
	return false
}

// Latest returns the most recently administered record, false on an
// empty log. The log is kept in administration order, so the last record
// carries the current protocol type and running total.
func (l *BolusLog) Latest() (model.FluidBolusRecord, bool) {
	if len(l.records) == 0 {
		return model.FluidBolusRecord{}, false
	}
	return l.records[len(l.records)-1], true
}

// Count returns the number of boluses given.
func (l *BolusLog) Count() int {
	return len(l.records)
}

// Records returns a copy of the log in administration order.
func (l *BolusLog) Records() []model.FluidBolusRecord {
	out := make([]model.FluidBolusRecord, len(l.records))
	copy(out, l.records)
	return out
}
