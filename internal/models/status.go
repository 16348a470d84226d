package models

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// taskTransitions maps every status to the set of statuses it may move to.
// Terminal statuses map to an empty set.
var taskTransitions = map[TaskStatus]map[TaskStatus]struct{}{
	TaskStatusPending: {
		TaskStatusInProgress: {},
		TaskStatusCancelled:  {},
	},
	TaskStatusInProgress: {
		TaskStatusCompleted: {},
		TaskStatusCancelled: {},
	},
	TaskStatusCompleted: {},
	TaskStatusCancelled: {},
}

func (s TaskStatus) Valid() bool {
	_, ok := taskTransitions[s]
	return ok
}

// CanTransitionTo reports whether the pair s -> to is in the transition table.
func (s TaskStatus) CanTransitionTo(to TaskStatus) bool {
	_, ok := taskTransitions[s][to]
	return ok
}

func (s TaskStatus) Terminal() bool {
	return s.Valid() && len(taskTransitions[s]) == 0
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleMember UserRole = "MEMBER"
	UserRoleViewer UserRole = "VIEWER"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleMember, UserRoleViewer:
		return true
	}
	return false
}
