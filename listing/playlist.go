package listing

// PlaylistEntry is one element of a resolver playlist result that carries
// its own display title alongside the media URL.
type PlaylistEntry struct {
	URL   string
	Title string
}
