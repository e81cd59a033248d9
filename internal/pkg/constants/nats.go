package constants

// Subjects consumed by the dispatcher
const (
	SubjectDriverLocation     = "driver.location"
	SubjectDriverAvailability = "driver.availability"
	SubjectDispatchRequest    = "dispatch.request"
	SubjectOrderClosed        = "order.closed"
)

// Subjects published by the dispatcher. The same names are used as NSQ topics.
const (
	SubjectOrderAssigned  = "dispatch.assigned"
	SubjectDispatchFailed = "dispatch.failed"
)

// QueueDispatcher lets several dispatcher replicas share subscriptions
const QueueDispatcher = "dispatcher"
