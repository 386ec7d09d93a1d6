package listing

// SortMethod is a host sort method identifier. The numeric values are the
// host's own sort method table and are passed through unchanged.
type SortMethod int

const (
	SortUnsorted    SortMethod = 0
	SortLabel       SortMethod = 1
	SortDate        SortMethod = 3
	SortSize        SortMethod = 4
	SortTrackNumber SortMethod = 7
	SortDuration    SortMethod = 8
	SortTitle       SortMethod = 9
	SortArtist      SortMethod = 11
	SortAlbum       SortMethod = 14
	SortGenre       SortMethod = 16
	SortYear        SortMethod = 18
	SortRating      SortMethod = 19
	SortEpisode     SortMethod = 24
	SortStudio      SortMethod = 33
)

// infoLabelSortHints maps recognized info labels to the sort method the
// host would sort that label by. Setting one of these labels on an item
// records the matching hint for auto sort detection.
var infoLabelSortHints = map[string]SortMethod{
	"title":       SortTitle,
	"duration":    SortDuration,
	"genre":       SortGenre,
	"date":        SortDate,
	"year":        SortYear,
	"episode":     SortEpisode,
	"rating":      SortRating,
	"size":        SortSize,
	"studio":      SortStudio,
	"artist":      SortArtist,
	"album":       SortAlbum,
	"tracknumber": SortTrackNumber,
}

// MethodSet is an unordered accumulation of sort methods.
type MethodSet map[SortMethod]struct{}

// NewMethodSet creates an empty sort method set.
func NewMethodSet() MethodSet {
	return make(MethodSet)
}

// Add inserts the given methods into the set.
func (s MethodSet) Add(methods ...SortMethod) {
	for _, method := range methods {
		s[method] = struct{}{}
	}
}

// Union inserts every method of other into the set.
func (s MethodSet) Union(other MethodSet) {
	for method := range other {
		s[method] = struct{}{}
	}
}

// Sorted returns the set as an ascending slice, the order the methods are
// handed to the host.
func (s MethodSet) Sorted() []SortMethod {
	out := make([]SortMethod, 0, len(s))
	for method := range s {
		out = append(out, method)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
