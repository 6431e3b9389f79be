package app

import (
	"svitlo_notification_bot/internal/domain/region"
	"svitlo_notification_bot/internal/domain/schedule"
)

// ScheduleService answers the bot's read-side questions: rendered schedule
// views, queue lists and the default area for new profiles.
type ScheduleService struct {
	store schedule.Store
}

func NewScheduleService(store schedule.Store) *ScheduleService {
	return &ScheduleService{store: store}
}

// BuildView renders the schedule of an area for the given day. With showAll
// set the view covers every queue in the document instead of the user's own.
func (s *ScheduleService) BuildView(areaCode string, queues []string, mode schedule.Mode, showAll bool, titlePrefix string) schedule.Message {
	doc := s.store.Load(areaCode)
	if showAll {
		queues = schedule.AllQueues(doc)
	}
	return schedule.BuildMessage(queues, doc, mode, region.Title(areaCode), titlePrefix)
}

// QueuesFor lists the queue IDs currently published for an area.
func (s *ScheduleService) QueuesFor(areaCode string) []string {
	return schedule.AllQueues(s.store.Load(areaCode))
}

// DefaultArea is the area assigned to new profiles: the first area with a
// published schedule, or rivne when nothing is published yet.
func (s *ScheduleService) DefaultArea() string {
	if available := s.store.Available(); len(available) > 0 {
		return available[0]
	}
	return "rivne"
}

// AvailableAreas lists areas with a published schedule, in catalogue order.
func (s *ScheduleService) AvailableAreas() []string {
	return s.store.Available()
}
