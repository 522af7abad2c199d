package events

const (
	EventTypeShiftAssigned = "shift.assigned"
	EventTypeShiftReleased = "shift.released"
	EventTypeUserRegistered = "user.registered"
)

type ShiftAssignedEvent struct {
	BaseEvent
	ShiftID int64 `json:"shift_id"`
	UserID  int64 `json:"user_id"`
}

func NewShiftAssignedEvent(shiftID, userID int64) *ShiftAssignedEvent {
	return &ShiftAssignedEvent{
		BaseEvent: NewBaseEvent(EventTypeShiftAssigned, map[string]interface{}{
			"shift_id": shiftID,
			"user_id":  userID,
		}),
		ShiftID: shiftID,
		UserID:  userID,
	}
}

type ShiftReleasedEvent struct {
	BaseEvent
	ShiftID int64 `json:"shift_id"`
	UserID  int64 `json:"user_id"`
}

func NewShiftReleasedEvent(shiftID, userID int64) *ShiftReleasedEvent {
	return &ShiftReleasedEvent{
		BaseEvent: NewBaseEvent(EventTypeShiftReleased, map[string]interface{}{
			"shift_id": shiftID,
			"user_id":  userID,
		}),
		ShiftID: shiftID,
		UserID:  userID,
	}
}

type UserRegisteredEvent struct {
	BaseEvent
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func NewUserRegisteredEvent(userID int64, username string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: NewBaseEvent(EventTypeUserRegistered, map[string]interface{}{
			"user_id":  userID,
			"username": username,
		}),
		UserID:   userID,
		Username: username,
	}
}
