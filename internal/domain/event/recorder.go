package event

type Recorder interface {
	EventCreated()
	PeopleAdded(count int)
	PersonRemoved()
	ResponseSubmitted(status Status)
}

type noopRecorder struct{}

func (noopRecorder) EventCreated() {}

func (noopRecorder) PeopleAdded(int) {}

func (noopRecorder) PersonRemoved() {}

func (noopRecorder) ResponseSubmitted(Status) {}
