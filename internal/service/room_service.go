package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campusflow/catalogue-api/internal/models"
	"github.com/campusflow/catalogue-api/pkg/clock"
	appErrors "github.com/campusflow/catalogue-api/pkg/errors"
)

// RoomService answers room listings, per-room schedules, and availability
// queries over a term's class-time rows.
type RoomService struct {
	repo      catalogueRepository
	catalogue *CatalogueService
	cache     *CacheService
	notifier  Notifier
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewRoomService creates a room service instance.
func NewRoomService(repo catalogueRepository, catalogue *CatalogueService, cache *CacheService, notifier Notifier, metrics *MetricsService, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, catalogue: catalogue, cache: cache, notifier: notifier, metrics: metrics, logger: logger}
}

// Rooms lists every known room of a term.
func (s *RoomService) Rooms(ctx context.Context, termID string) ([]models.Room, error) {
	key := "catalogue:" + termID + ":rooms"
	var cached []models.Room
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	rooms, err := s.repo.DistinctLocations(ctx, termID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	s.cache.Set(ctx, key, rooms)
	return rooms, nil
}

// RoomSchedule returns every class meeting at the given room, with each
// class's times narrowed to that room.
func (s *RoomService) RoomSchedule(ctx context.Context, termID, room string) (*models.ScheduleSet, error) {
	if s.notifier != nil {
		s.notifier.Notify(fmt.Sprintf("Room '%s' lookup in term %s", room, termID))
	}

	ids, err := s.repo.ClassIDsForLocation(ctx, termID, room)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list room classes")
	}

	classes := make([]*models.ClassDetail, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		detail, err := s.catalogue.HydrateClass(ctx, termID, id)
		if err != nil {
			return nil, err
		}
		classes = append(classes, narrowToLocation(detail, room))
	}
	return &models.ScheduleSet{
		Schedules: [][]*models.ClassDetail{classes},
		Aliases:   models.AliasMap{},
	}, nil
}

// narrowToLocation copies a hydrated class keeping only the class times
// held at the given room. Coalesced locations ("A, B") count as a match
// when they contain the room.
func narrowToLocation(detail *models.ClassDetail, room string) *models.ClassDetail {
	narrowed := *detail
	narrowed.ClassTimes = nil
	for _, ct := range detail.ClassTimes {
		if ct.Location == nil {
			continue
		}
		if *ct.Location == room || containsLocation(*ct.Location, room) {
			narrowed.ClassTimes = append(narrowed.ClassTimes, ct)
		}
	}
	return &narrowed
}

func containsLocation(coalesced, room string) bool {
	for _, part := range strings.Split(coalesced, ", ") {
		if part == room {
			return true
		}
	}
	return false
}

// AvailableRooms reports which rooms are free for the window on the given
// weekday, grouped by building. A room with any overlapping booking is
// excluded permanently; for the rest, the result carries how many classes
// the room hosts that day and whether one starts after the window.
func (s *RoomService) AvailableRooms(ctx context.Context, termID, weekday, startClock, endClock string) (models.AvailableRooms, error) {
	if s.notifier != nil {
		s.notifier.Notify(fmt.Sprintf("Available room lookup for term %s on %s from %s to %s", termID, weekday, startClock, endClock))
	}

	queryStart, err := clock.Parse(startClock)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrMalformedTime, "malformed start time")
	}
	queryEnd, err := clock.Parse(endClock)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrMalformedTime, "malformed end time")
	}

	// The term-wide scan is the heaviest query the service issues.
	queryStarted := time.Now()
	rows, err := s.repo.ListTermClassTimes(ctx, termID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list term class times")
	}
	s.metrics.ObserveDBQuery("term_class_times", time.Since(queryStarted))

	type tally struct {
		classesToday int
		classAfter   bool
	}
	rooms := make(map[string]*tally)
	excluded := make(map[string]struct{})

	for _, row := range rows {
		if row.Location == nil {
			continue
		}
		room := *row.Location
		// Exclusion is monotonic: once a room conflicts it stays out, no
		// matter what later rows show.
		if _, out := excluded[room]; out {
			continue
		}
		if row.Day != weekday {
			if _, ok := rooms[room]; !ok {
				rooms[room] = &tally{}
			}
			continue
		}
		rowStart, err := clock.Parse(row.StartTime)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrMalformedTime, "catalogue row has a malformed start time")
		}
		rowEnd, err := clock.Parse(row.EndTime)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrMalformedTime, "catalogue row has a malformed end time")
		}
		// Half-open overlap: touching endpoints do not conflict.
		if queryStart < rowEnd && rowStart < queryEnd {
			excluded[room] = struct{}{}
			delete(rooms, room)
			continue
		}
		entry, ok := rooms[room]
		if !ok {
			entry = &tally{}
			rooms[room] = entry
		}
		if rowStart >= queryEnd {
			entry.classAfter = true
		}
		entry.classesToday++
	}

	grouped := make(models.AvailableRooms)
	for room, entry := range rooms {
		building := room
		if fields := strings.Fields(room); len(fields) > 0 {
			building = fields[0]
		}
		grouped[building] = append(grouped[building], models.RoomInfo{
			Name:         room,
			ClassesToday: entry.classesToday,
			ClassAfter:   entry.classAfter,
		})
	}
	for _, infos := range grouped {
		sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	}
	return grouped, nil
}
