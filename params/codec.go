package params

import (
	"encoding/hex"
	"net/url"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// OpaquePrefix is the token identifying an opaque-encoded query string.
// The remainder of the string is a hex-encoded CBOR map. CBOR is
// self-describing, round-trips arbitrary nested mappings, sequences and
// scalars, and decoding it cannot execute anything, which makes it safe
// for untrusted invocation URLs.
const OpaquePrefix = "_cbor_="

var (
	decMode cbor.DecMode
	encMode cbor.EncMode
)

func init() {
	var err error

	// Decode nested CBOR maps as map[string]any so opaque params round-trip
	// into the same shape they were encoded from.
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		IntDec:         cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		panic(err)
	}

	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Decode decodes the raw query-string portion of an invocation into a
// parameter set. An empty string decodes to an empty set. The encoding is
// self-identified: strings carrying the opaque prefix are hex+CBOR decoded,
// everything else is treated as a form-encoded query string where every
// value decodes as text.
func Decode(raw string) (Params, error) {
	if raw == "" {
		return make(Params), nil
	}

	if strings.HasPrefix(raw, OpaquePrefix) {
		return decodeOpaque(raw[len(OpaquePrefix):])
	}
	return decodeForm(raw)
}

// Encode encodes a parameter set into the opaque query-string form. The
// output always round-trips through Decode unchanged in value. An empty or
// nil set encodes to the empty string.
func Encode(p Params) (string, error) {
	if len(p) == 0 {
		return "", nil
	}

	blob, err := encMode.Marshal(map[string]any(p))
	if err != nil {
		return "", NewDecodeError("opaque", err.Error())
	}
	return OpaquePrefix + hex.EncodeToString(blob), nil
}

func decodeOpaque(body string) (Params, error) {
	blob, err := hex.DecodeString(body)
	if err != nil {
		return nil, NewDecodeError("opaque", err.Error())
	}

	decoded := make(map[string]any)
	if err := decMode.Unmarshal(blob, &decoded); err != nil {
		return nil, NewDecodeError("opaque", err.Error())
	}
	return Params(decoded), nil
}

func decodeForm(raw string) (Params, error) {
	decoded := make(Params)

	for _, field := range strings.Split(raw, "&") {
		if field == "" {
			continue
		}

		key, value, _ := strings.Cut(field, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			return nil, NewDecodeError("form", err.Error())
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			return nil, NewDecodeError("form", err.Error())
		}

		if _, exists := decoded[key]; exists {
			return nil, &DuplicateParamError{Key: key}
		}
		decoded[key] = value
	}
	return decoded, nil
}
