package services

// Change kinds published to live listeners.
const (
	ChangeCreated  = "created"
	ChangeUpdated  = "updated"
	ChangeDeleted  = "deleted"
	ChangeReloaded = "reloaded"
)

// ChangeNotifier is told about every change to the log.
type ChangeNotifier interface {
	NotifyChange(kind string, id int64)
}

type NopNotifier struct{}

func (NopNotifier) NotifyChange(string, int64) {}
