package services

import (
	"sort"
	"strings"

	"hostel-backend/models"
)

// genderCompatible treats a missing gender on either side as "no constraint".
func genderCompatible(studentGender, blockGender string) bool {
	if studentGender == "" || blockGender == "" {
		return true
	}
	return strings.EqualFold(studentGender, blockGender)
}

// typeCompatible enforces a case-insensitive match only when both the
// preference and the room carry a type.
func typeCompatible(preferred, roomType string) bool {
	if preferred == "" || roomType == "" {
		return true
	}
	return strings.EqualFold(preferred, roomType)
}

// SelectRoom picks the best candidate room for an application, independent of
// storage. Rooms must have Block populated. Candidates keep free capacity and
// pass the gender/block/type filters; ordered by ascending occupancy, ties
// broken by the smaller room number string. Returns nil when no candidate
// remains.
func SelectRoom(rooms []models.Room, studentGender, preferredBlock, preferredType string) *models.Room {
	candidates := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.CurrentOccupancy >= room.Capacity {
			continue
		}
		if !genderCompatible(studentGender, room.Block.Gender) {
			continue
		}
		if preferredBlock != "" && !strings.EqualFold(room.Block.Name, preferredBlock) {
			continue
		}
		if !typeCompatible(preferredType, room.RoomType) {
			continue
		}
		candidates = append(candidates, room)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].CurrentOccupancy != candidates[j].CurrentOccupancy {
			return candidates[i].CurrentOccupancy < candidates[j].CurrentOccupancy
		}
		return candidates[i].RoomNumber < candidates[j].RoomNumber
	})

	return &candidates[0]
}
