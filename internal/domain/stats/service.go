package stats

import (
	"context"
	"time"

	"people-monitor-go/internal/domain/event"
)

type SnapshotReader interface {
	Snapshot(ctx context.Context, ownerID, eventID string) (event.Snapshot, error)
}

type Service struct {
	events SnapshotReader
	now    func() time.Time
}

func NewService(events SnapshotReader) *Service {
	return &Service{events: events, now: time.Now}
}

func (s *Service) EventStatistics(ctx context.Context, ownerID, eventID string) (Statistics, error) {
	snapshot, err := s.events.Snapshot(ctx, ownerID, eventID)
	if err != nil {
		return Statistics{}, err
	}
	return Compute(snapshot, s.now().UTC()), nil
}

// Compute joins a roster with its responses.
//
// NoResponseCount is roster size minus response count, not a per-person check,
// so it drifts if a response outlives its person. Tag counts are per membership:
// a person with two tags is counted under both. A response whose status is
// neither safe nor need_help is counted as a response but lands in no bucket.
func Compute(snapshot event.Snapshot, now time.Time) Statistics {
	total := len(snapshot.People)
	responded := len(snapshot.Responses)

	byPerson := make(map[string]event.Status, responded)
	result := Statistics{
		TotalPeople:     total,
		NoResponseCount: total - responded,
		TagStatistics:   make(map[string]TagStats),
		LastUpdated:     now,
	}

	for _, response := range snapshot.Responses {
		switch response.Status {
		case event.StatusSafe:
			result.SafeCount++
		case event.StatusNeedHelp:
			result.NeedHelpCount++
		}
		if _, ok := byPerson[response.PersonID]; !ok {
			byPerson[response.PersonID] = response.Status
		}
	}

	if total > 0 {
		result.ResponseRate = float64(responded) / float64(total) * 100
	}

	for _, person := range snapshot.People {
		status, ok := byPerson[person.ID]
		for _, tag := range person.Tags {
			bucket := result.TagStatistics[tag]
			bucket.Total++
			switch {
			case !ok:
				bucket.NoResponse++
			case status == event.StatusSafe:
				bucket.Safe++
			case status == event.StatusNeedHelp:
				bucket.NeedHelp++
			}
			result.TagStatistics[tag] = bucket
		}
	}

	return result
}
