package consts

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
)

const (
	RecountBatchSize = 200
)
