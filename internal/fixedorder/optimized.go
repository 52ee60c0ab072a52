package fixedorder

import "rseclp/internal/model"

// optimizedScheduler is the position-local variant: instead of rescanning
// every metering interval that might be affected by a right shift, it walks
// outward from the single interval straddling the previous operation's
// latest completion, stopping as soon as no further interval can possibly
// force a later start.
type optimizedScheduler struct {
	ins              *model.Instance
	startTimes       model.StartTimes
	latestStartTimes model.StartTimes
	rightShift       model.StartTimes
}

func newOptimizedScheduler(ins *model.Instance) *optimizedScheduler {
	n := ins.NumOperations()
	return &optimizedScheduler{
		ins:              ins,
		startTimes:       model.NewStartTimes(n),
		latestStartTimes: model.NewStartTimes(n),
		rightShift:       model.NewStartTimes(n),
	}
}

func (s *optimizedScheduler) StartTimes() model.StartTimes { return s.startTimes }

func (s *optimizedScheduler) Create(ordered []model.Operation) Result {
	return create(s, ordered)
}

func (s *optimizedScheduler) AppendPosition(ordered []model.Operation, position int) Result {
	ins := s.ins
	op := ordered[position]

	if position == 0 {
		s.startTimes[op.Index] = op.ReleaseTime
	} else {
		s.appendAfterPredecessor(ordered, position)
	}

	s.startTimes.ComputeLatestStartTime(ins, ordered, position, s.latestStartTimes)

	numIntervals := ins.NumMeteringIntervals()
	L := ins.LengthMeteringInterval()
	for mi := s.startTimes[op.Index] / L; mi < numIntervals; mi++ {
		meteringInterval := ins.MeteringInterval(mi)
		maxIntersection := int(meteringInterval.MaxEnergyConsumption / op.PowerConsumption)
		intersection := minInt(op.ProcessingTime, intersectionLength(
			meteringInterval.Start, meteringInterval.End,
			s.startTimes[op.Index], s.latestStartTimes[op.Index]+op.ProcessingTime))
		if intersection == 0 {
			break
		}
		if maxIntersection < intersection {
			s.startTimes[op.Index] = meteringInterval.End - maxIntersection
			s.startTimes.ComputeLatestStartTime(ins, ordered, position, s.latestStartTimes)
		}
	}

	if s.startTimes[op.Index] > ins.MaximumStartTime() {
		return Infeasible
	}
	return Feasible
}

func (s *optimizedScheduler) appendAfterPredecessor(ordered []model.Operation, position int) {
	ins := s.ins
	op := ordered[position]
	prevPos := position - 1
	prev := ordered[prevPos]

	s.startTimes[op.Index] = maxInt(op.ReleaseTime, s.startTimes[prev.Index]+prev.ProcessingTime)

	numIntervals := ins.NumMeteringIntervals()
	itIdx := minInt((s.latestStartTimes[prev.Index]+prev.ProcessingTime)/ins.LengthMeteringInterval(), numIntervals-1)
	meteringInterval := ins.MeteringInterval(itIdx)
	stop := false
	if s.latestStartTimes[prev.Index]+prev.ProcessingTime == meteringInterval.Start {
		if itIdx == 0 {
			stop = true
		} else {
			itIdx--
		}
	}

	for !stop {
		meteringInterval = ins.MeteringInterval(itIdx)
		t := minInt(meteringInterval.End-prev.ProcessingTime-1, s.latestStartTimes[prev.Index])
		if t < s.startTimes[prev.Index] {
			stop = true
			continue
		}

		s.computeRightShiftStartTimes(ordered, prevPos, prevPos, t, meteringInterval)
		firstIntersectingPosition := s.findFirstIntersectingPosition(ordered, prevPos, meteringInterval)
		leftShiftStart := s.computeLeftShiftStartTimeFromRightShift(ordered, firstIntersectingPosition, meteringInterval)
		s.computeRightShiftStartTimes(ordered, firstIntersectingPosition, prevPos, leftShiftStart, meteringInterval)

		continueWithPrev := false
		for !stop && !continueWithPrev {
			firstOp := ordered[firstIntersectingPosition]
			earliestStartTime := s.computeEarliestStartTimeDuePreceeding(ordered, firstIntersectingPosition, position, meteringInterval)

			switch {
			case firstIntersectingPosition == position:
				if meteringInterval.Start < earliestStartTime {
					s.startTimes[op.Index] = earliestStartTime
					stop = true
				} else {
					continueWithPrev = true
				}
			case s.rightShift[prev.Index]+prev.ProcessingTime < earliestStartTime:
				s.startTimes[op.Index] = earliestStartTime
				stop = true
			case s.startTimes[firstOp.Index] == s.rightShift[firstOp.Index]:
				stop = true
			case earliestStartTime+op.ProcessingTime <= meteringInterval.End:
				continueWithPrev = true
			case firstOp.PowerConsumption >= op.PowerConsumption:
				firstIntersectingPosition++
			default:
				s.computeRightShiftStartTimes(ordered, firstIntersectingPosition, prevPos, s.rightShift[firstOp.Index]-1, meteringInterval)
				if s.rightShift[firstOp.Index]+firstOp.ProcessingTime <= meteringInterval.Start {
					firstIntersectingPosition++
				}
			}
		}

		if continueWithPrev {
			if itIdx == 0 {
				stop = true
			} else {
				itIdx--
			}
		}
	}
}

// computeRightShiftStartTimes fills s.rightShift[forPosition..upToPosition]
// (and the prefix before forPosition, scanned backward) with the start times
// operations would have if ordered[forPosition] started at t, stopping early
// once an operation no longer overlaps meteringInterval.
func (s *optimizedScheduler) computeRightShiftStartTimes(ordered []model.Operation, forPosition, upToPosition, t int, meteringInterval model.MeteringInterval) {
	s.rightShift[ordered[forPosition].Index] = t
	for position := forPosition - 1; position >= 0; position-- {
		op := ordered[position]
		next := ordered[position+1]
		s.rightShift[op.Index] = minInt(s.latestStartTimes[op.Index], s.rightShift[next.Index]-op.ProcessingTime)
		if s.rightShift[op.Index] <= meteringInterval.Start {
			break
		}
	}
	for position := forPosition + 1; position <= upToPosition; position++ {
		op := ordered[position]
		prev := ordered[position-1]
		s.rightShift[op.Index] = maxInt(s.startTimes[op.Index], s.rightShift[prev.Index]+prev.ProcessingTime)
		if meteringInterval.End <= s.rightShift[op.Index]+op.ProcessingTime {
			break
		}
	}
}

func (s *optimizedScheduler) findFirstIntersectingPosition(ordered []model.Operation, upToPosition int, meteringInterval model.MeteringInterval) int {
	lastNonZero := -1
	for position := upToPosition; position >= 0; position-- {
		op := ordered[position]
		startTime := s.rightShift[op.Index]
		completionTime := startTime + op.ProcessingTime
		intersection := intersectionLength(meteringInterval.Start, meteringInterval.End, startTime, completionTime)
		if intersection == 0 {
			if lastNonZero >= 0 {
				return lastNonZero
			}
		} else {
			lastNonZero = position
		}
		if startTime <= meteringInterval.Start {
			break
		}
	}
	return lastNonZero
}

func (s *optimizedScheduler) computeLeftShiftStartTimeFromRightShift(ordered []model.Operation, firstIntersectingPosition int, meteringInterval model.MeteringInterval) int {
	op := ordered[firstIntersectingPosition]
	v := minInt(meteringInterval.Start, s.rightShift[op.Index])
	return maxInt(s.startTimes[op.Index], v)
}

func (s *optimizedScheduler) computeEarliestStartTimeDuePreceeding(ordered []model.Operation, firstIntersectingPosition, forPosition int, meteringInterval model.MeteringInterval) int {
	op := ordered[forPosition]
	energyConsumption := s.computeEnergyConsumption(ordered, firstIntersectingPosition, forPosition-1, meteringInterval)
	remaining := meteringInterval.MaxEnergyConsumption - energyConsumption
	if remaining < 0 {
		remaining = 0
	}
	maxIntersection := int(remaining / op.PowerConsumption)
	earliestStartTime := s.startTimes[op.Index]
	if maxIntersection < op.ProcessingTime {
		if v := meteringInterval.End - maxIntersection; v > earliestStartTime {
			earliestStartTime = v
		}
	}
	return earliestStartTime
}

func (s *optimizedScheduler) computeEnergyConsumption(ordered []model.Operation, firstIntersectingPosition, upToPosition int, meteringInterval model.MeteringInterval) float64 {
	energy := 0.0
	for position := upToPosition; position >= firstIntersectingPosition; position-- {
		op := ordered[position]
		startTime := s.rightShift[op.Index]
		completionTime := startTime + op.ProcessingTime
		intersection := intersectionLength(meteringInterval.Start, meteringInterval.End, startTime, completionTime)
		energy += op.PowerConsumption * float64(intersection)
	}
	return energy
}
