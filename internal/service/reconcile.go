package service

import (
	"time"

	"timeturner/internal/models"
	"timeturner/internal/repository"

	"github.com/sirupsen/logrus"
)

// Add reconciles a proposed segment against the stored timeline and
// persists the outcome. Existing segments may be trimmed, split or
// deleted depending on tag priorities; the returned slice holds every
// segment that was inserted or updated on behalf of this call. An
// empty result is not an error: the proposal may have been fully
// superseded by higher-priority segments or fall entirely on non-work
// days.
func (s *TrackerService) Add(params models.NewSegmentParams) ([]models.Segment, error) {
	now := s.now()

	if params.End != nil && !params.End.After(params.Start) {
		return nil, ErrInvalidRange
	}

	s.logger.WithFields(logrus.Fields{
		"start": params.Start.Format("2006-01-02 15:04"),
		"tags":  params.Tags,
	}).Info("Adding segment")

	var result []models.Segment
	err := s.segmentRepo.Transaction(func(repo repository.SegmentRepository) error {
		segments, err := s.reconcile(repo, params, now)
		if err != nil {
			return err
		}
		result = segments
		return nil
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to reconcile segment")
		return nil, err
	}

	return result, nil
}

// reconcile implements the conflict resolution state machine. It
// recurses on sub-ranges produced by weekday splitting and by
// conflicts that cover the middle of the proposed range.
func (s *TrackerService) reconcile(
	repo repository.SegmentRepository,
	params models.NewSegmentParams,
	now time.Time,
) ([]models.Segment, error) {
	currentPrio := s.settings.MaxPriority(params.Tags)

	var conflicts []models.Segment
	conflictsLoaded := false

	for _, tagName := range params.Tags {
		tagSettings, ok := s.settings.TagSettings[tagName]
		if !ok {
			continue
		}
		if tagSettings.OnlyCoverWorkDays {
			ranges, err := s.splitPerWeekday(params)
			if err != nil {
				return nil, err
			}
			if len(ranges) == 0 {
				// entirely on non-work days, nothing to record
				return nil, nil
			}
			if len(ranges) > 1 {
				var segments []models.Segment
				for _, sub := range ranges {
					added, err := s.reconcile(repo, sub, now)
					if err != nil {
						return nil, err
					}
					segments = append(segments, added...)
				}
				return segments, nil
			}
			params = ranges[0]
		}
		if tagSettings.FullDay {
			// full-day tags only ever conflict with other full-day
			// segments, never with ordinary clocked time
			all, err := repo.GetOverlapping(params.Start, params.End, false)
			if err != nil {
				return nil, err
			}
			conflicts = conflicts[:0]
			for _, segment := range all {
				if segment.FullDays {
					conflicts = append(conflicts, segment)
				}
			}
			conflictsLoaded = true
		}
	}

	if !conflictsLoaded {
		var err error
		conflicts, err = repo.GetOverlapping(params.Start, params.End, true)
		if err != nil {
			return nil, err
		}
	}

	for i := range conflicts {
		conflict := &conflicts[i]
		conflictPrio := s.settings.MaxPriority(conflict.TagNames())

		switch {
		case !params.Start.After(conflict.Start):
			if params.End != nil && params.End.After(conflict.Start) {
				if conflict.End == nil || params.End.Before(*conflict.End) {
					// the conflict covers the tail of the new range
					if conflictPrio <= currentPrio {
						err := repo.Update(conflict.ID, repository.SegmentUpdate{
							Start: repository.Set(*params.End),
						})
						if err != nil {
							return nil, err
						}
					} else {
						end := conflict.Start
						params.End = &end
					}
				} else {
					// the conflict is fully covered by the new range
					if conflictPrio <= currentPrio {
						if err := repo.Delete(conflict.ID); err != nil {
							return nil, err
						}
					} else {
						before, after := splitAroundConflict(params, conflict)
						var segments []models.Segment
						if before != nil {
							added, err := s.reconcile(repo, *before, now)
							if err != nil {
								return nil, err
							}
							segments = append(segments, added...)
						}
						// the conflict keeps the middle, nothing to add there
						if after != nil {
							added, err := s.reconcile(repo, *after, now)
							if err != nil {
								return nil, err
							}
							segments = append(segments, added...)
						}
						return segments, nil
					}
				}
			} else if params.End == nil && conflict.Start.Before(now) {
				// an open-ended entry must not swallow a later segment
				// that already started
				end := conflict.Start
				params.End = &end
			}

		case conflict.End == nil:
			// the older open segment is implicitly ended by this one
			closeAt := params.Start
			err := repo.Update(conflict.ID, repository.SegmentUpdate{
				End: repository.Set(&closeAt),
			})
			if err != nil {
				return nil, err
			}

		case params.End != nil && params.Start.After(conflict.Start) && params.End.Before(*conflict.End):
			// new range lies strictly inside the conflict
			if conflictPrio > currentPrio {
				return nil, nil
			}
			trimAt := params.Start
			err := repo.Update(conflict.ID, repository.SegmentUpdate{
				End: repository.Set(&trimAt),
			})
			if err != nil {
				return nil, err
			}
			inserted := params.Segment()
			if err := repo.Create(inserted); err != nil {
				return nil, err
			}
			tail := &models.Segment{
				Start:       *params.End,
				End:         conflict.End,
				Passive:     conflict.Passive,
				FullDays:    conflict.FullDays,
				Description: conflict.Description,
				Tags:        conflict.Tags,
			}
			if err := repo.Create(tail); err != nil {
				return nil, err
			}
			return []models.Segment{*inserted, *tail}, nil

		case params.Start.Before(*conflict.End) && params.Start.After(conflict.Start):
			// new range starts inside the conflict and extends past it
			if conflictPrio <= currentPrio {
				trimAt := params.Start
				err := repo.Update(conflict.ID, repository.SegmentUpdate{
					End: repository.Set(&trimAt),
				})
				if err != nil {
					return nil, err
				}
			} else {
				params.Start = *conflict.End
			}
		}
	}

	segment := params.Segment()
	if err := repo.Create(segment); err != nil {
		return nil, err
	}
	return []models.Segment{*segment}, nil
}

// splitAroundConflict carves the proposed range into the pieces before
// and after a fully covered, higher-priority conflict. Either piece
// may be nil.
func splitAroundConflict(
	params models.NewSegmentParams,
	conflict *models.Segment,
) (before, after *models.NewSegmentParams) {
	if params.Start.Before(conflict.Start) {
		end := conflict.Start
		piece := params.WithRange(params.Start, &end)
		before = &piece
	}
	if conflict.End != nil &&
		(params.End == nil || params.End.After(*conflict.End)) {
		piece := params.WithRange(*conflict.End, params.End)
		after = &piece
	}
	return before, after
}
