package fixedorder

import "rseclp/internal/model"

// baselineScheduler rescans every metering interval that could possibly be
// affected by a right shift of the predecessor, rather than walking outward
// locally. It is slower than optimizedScheduler but structurally simpler,
// and the two are cross-checked against each other rather than one being
// thrown away once the other existed.
type baselineScheduler struct {
	ins              *model.Instance
	startTimes       model.StartTimes
	latestStartTimes model.StartTimes
	rightShift       model.StartTimes
}

func newBaselineScheduler(ins *model.Instance) *baselineScheduler {
	n := ins.NumOperations()
	return &baselineScheduler{
		ins:              ins,
		startTimes:       model.NewStartTimes(n),
		latestStartTimes: model.NewStartTimes(n),
		rightShift:       model.NewStartTimes(n),
	}
}

func (s *baselineScheduler) StartTimes() model.StartTimes { return s.startTimes }

func (s *baselineScheduler) Create(ordered []model.Operation) Result {
	return create(s, ordered)
}

func (s *baselineScheduler) AppendPosition(ordered []model.Operation, position int) Result {
	ins := s.ins
	op := ordered[position]
	s.startTimes[op.Index] = op.ReleaseTime

	if position > 0 {
		s.appendAfterPredecessor(ordered, position)
	}

	s.startTimes.ComputeLatestStartTime(ins, ordered, position, s.latestStartTimes)
	if mi, ok := ins.FirstNonZeroIntersectionMeteringInterval(s.startTimes[op.Index]); ok {
		for idx := mi.Index; idx < ins.NumMeteringIntervals(); idx++ {
			meteringInterval := ins.MeteringInterval(idx)
			maxNonviolating := int(meteringInterval.MaxEnergyConsumption / op.PowerConsumption)
			maxIntersection := minInt(op.ProcessingTime, intersectionLength(
				meteringInterval.Start, meteringInterval.End,
				s.startTimes[op.Index], s.latestStartTimes[op.Index]+op.ProcessingTime))
			if maxIntersection == 0 {
				break
			}
			if maxNonviolating < maxIntersection {
				s.startTimes[op.Index] = meteringInterval.End - maxNonviolating
				s.startTimes.ComputeLatestStartTime(ins, ordered, position, s.latestStartTimes)
			}
		}
	}

	if s.startTimes[op.Index] > ins.MaximumStartTime() {
		return Infeasible
	}
	return Feasible
}

func (s *baselineScheduler) appendAfterPredecessor(ordered []model.Operation, position int) {
	ins := s.ins
	op := ordered[position]
	prevPos := position - 1
	prev := ordered[prevPos]

	s.startTimes[op.Index] = maxInt(op.ReleaseTime, s.startTimes[prev.Index]+prev.ProcessingTime)

	t := s.latestStartTimes[prev.Index]
	tMin := minInt(s.latestStartTimes[prev.Index], maxInt(s.startTimes[prev.Index], op.ReleaseTime-prev.ProcessingTime))

	for t >= tMin {
		meteringInterval, ok := ins.LastNonZeroIntersectionMeteringInterval(t + prev.ProcessingTime)
		if !ok {
			break
		}
		s.computeRightShiftStartTimes(ordered, prevPos, t, meteringInterval)
		consumed := s.computeEnergyConsumptionInMeteringInterval(ordered, prevPos, meteringInterval)
		maxPossibleIntersection := int((meteringInterval.MaxEnergyConsumption - consumed) / op.PowerConsumption)

		switch {
		case op.ProcessingTime <= maxPossibleIntersection:
			t = meteringInterval.Start - prev.ProcessingTime - 1
		case maxPossibleIntersection >= meteringInterval.End-(s.rightShift[prev.Index]+prev.ProcessingTime):
			t--
		default:
			s.startTimes[op.Index] = maxInt(op.ReleaseTime, meteringInterval.End-maxPossibleIntersection)
			return
		}
	}
}

// computeRightShiftStartTimes fills s.rightShift for the prefix
// ordered[0..forPosition], assuming ordered[forPosition] is pushed out to t,
// scanning backward and stopping once an operation falls clear of
// meteringInterval.
func (s *baselineScheduler) computeRightShiftStartTimes(ordered []model.Operation, forPosition, t int, meteringInterval model.MeteringInterval) {
	s.rightShift[ordered[forPosition].Index] = t
	for position := forPosition - 1; position >= 0; position-- {
		op := ordered[position]
		next := ordered[position+1]
		s.rightShift[op.Index] = minInt(s.latestStartTimes[op.Index], s.rightShift[next.Index]-op.ProcessingTime)
		if s.rightShift[op.Index]+op.ProcessingTime <= meteringInterval.Start {
			break
		}
	}
}

func (s *baselineScheduler) computeEnergyConsumptionInMeteringInterval(ordered []model.Operation, upToPosition int, meteringInterval model.MeteringInterval) float64 {
	energy := 0.0
	for position := upToPosition; position >= 0; position-- {
		op := ordered[position]
		startTime := s.rightShift[op.Index]
		completionTime := startTime + op.ProcessingTime
		if completionTime <= meteringInterval.Start {
			break
		}
		intersection := intersectionLength(meteringInterval.Start, meteringInterval.End, startTime, completionTime)
		energy += float64(intersection) * op.PowerConsumption
	}
	return energy
}
