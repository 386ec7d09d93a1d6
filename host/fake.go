package host

import "github.com/machinefabric/plugkit-go/listing"

// Fake is an in-memory Host that records everything handed to it. It backs
// the framework's own tests and is exported so plugin authors can unit-test
// their routes without a running host.
type Fake struct {
	Entries       []listing.Sealed
	Content       string
	Category      string
	SortMethods   []listing.SortMethod
	ViewMode      string
	ListingEnded  bool
	ListingOK     bool
	UpdateListing bool

	Resolved     *listing.Sealed
	ResolvedOK   bool
	Queue        []listing.Sealed
	QueueURLs    []string
	QueueCleared bool

	Notifications []Notification
	Records       []LogRecord
}

// Notification is one recorded Notify call.
type Notification struct {
	Title   string
	Message string
	Icon    string
}

// LogRecord is one recorded Log call.
type LogRecord struct {
	Message string
	Level   Level
}

// NewFake creates an empty recording host.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Directory() Directory { return (*fakeDirectory)(f) }
func (f *Fake) Player() Player       { return (*fakePlayer)(f) }
func (f *Fake) Notifier() Notifier   { return (*fakeNotifier)(f) }
func (f *Fake) Log() LogSink         { return (*fakeLog)(f) }

// LogMessages returns every recorded message at the given level.
func (f *Fake) LogMessages(level Level) []string {
	var out []string
	for _, record := range f.Records {
		if record.Level == level {
			out = append(out, record.Message)
		}
	}
	return out
}

type fakeDirectory Fake

func (d *fakeDirectory) AddEntries(handle int, entries []listing.Sealed) error {
	d.Entries = append(d.Entries, entries...)
	return nil
}

func (d *fakeDirectory) SetContent(handle int, content string) error {
	d.Content = content
	return nil
}

func (d *fakeDirectory) SetCategory(handle int, category string) error {
	d.Category = category
	return nil
}

func (d *fakeDirectory) SetSortMethods(handle int, methods []listing.SortMethod) error {
	d.SortMethods = append(d.SortMethods, methods...)
	return nil
}

func (d *fakeDirectory) SetViewMode(mode string) error {
	d.ViewMode = mode
	return nil
}

func (d *fakeDirectory) EndListing(handle int, success, updateListing bool) error {
	d.ListingEnded = true
	d.ListingOK = success
	d.UpdateListing = updateListing
	return nil
}

type fakePlayer Fake

func (p *fakePlayer) Resolve(handle int, success bool, item listing.Sealed) error {
	p.Resolved = &item
	p.ResolvedOK = success
	return nil
}

func (p *fakePlayer) ClearQueue() error {
	p.Queue = nil
	p.QueueURLs = nil
	p.QueueCleared = true
	return nil
}

func (p *fakePlayer) Enqueue(url string, item listing.Sealed) error {
	p.Queue = append(p.Queue, item)
	p.QueueURLs = append(p.QueueURLs, url)
	return nil
}

func (p *fakePlayer) QueueLen() int {
	return len(p.Queue)
}

type fakeNotifier Fake

func (n *fakeNotifier) Notify(title, message, icon string) error {
	n.Notifications = append(n.Notifications, Notification{
		Title:   title,
		Message: message,
		Icon:    icon,
	})
	return nil
}

type fakeLog Fake

func (l *fakeLog) Log(message string, level Level) {
	l.Records = append(l.Records, LogRecord{Message: message, Level: level})
}
