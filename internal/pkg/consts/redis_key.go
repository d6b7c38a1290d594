package consts

const (
	NewsCounterDirtyKey = "news:counter:dirty"
)

const (
	NewsFullRecountLock  = "lock:news:recount:full"
	NewsDirtyRecountLock = "lock:news:recount:dirty"
)
