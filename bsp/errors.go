package bsp

import "fmt"

// Kind identifies the category of a codec failure or warning.
type Kind int

const (
	KindIO Kind = iota
	KindBadMagic
	KindBadVersion
	KindShortLump
	KindBadRecord
	KindIndexOutOfRange
	KindBadEntitySyntax
	KindTruncated
	KindUnsupportedStrict
	KindUnknownBits
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "Io"
	case KindBadMagic:
		return "BadMagic"
	case KindBadVersion:
		return "BadVersion"
	case KindShortLump:
		return "ShortLump"
	case KindBadRecord:
		return "BadRecord"
	case KindIndexOutOfRange:
		return "IndexOutOfRange"
	case KindBadEntitySyntax:
		return "BadEntitySyntax"
	case KindTruncated:
		return "Truncated"
	case KindUnsupportedStrict:
		return "UnsupportedStrict"
	case KindUnknownBits:
		return "UnknownBits"
	default:
		return "Unknown"
	}
}

// Error is the codec's single error type. It carries the lump role the
// failure occurred in (when applicable), a byte offset, and a short
// diagnostic, per the lump-oriented error design in the spec.
type Error struct {
	Kind   Kind
	Lump   LumpRole
	Offset int
	Msg    string
	err    error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Lump >= 0 && int(e.Lump) < len(lumpRoleNames) {
		if e.Offset >= 0 {
			return fmt.Sprintf("%s: lump %s at offset %d: %s", e.Kind, e.Lump, e.Offset, e.Msg)
		}
		return fmt.Sprintf("%s: lump %s: %s", e.Kind, e.Lump, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is lets callers compare against a bare &Error{Kind: ...} sentinel via
// errors.Is, matching on Kind only.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, lump LumpRole, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Lump: lump, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, lump LumpRole, offset int, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Lump: lump, Offset: offset, Msg: fmt.Sprintf(format, args...), err: cause}
}

// Warning is a non-fatal decode issue returned alongside a valid model.
type Warning struct {
	Kind Kind
	Lump LumpRole
	Msg  string
}

func (w Warning) String() string {
	if w.Lump >= 0 && int(w.Lump) < len(lumpRoleNames) {
		return fmt.Sprintf("%s: lump %s: %s", w.Kind, w.Lump, w.Msg)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Msg)
}

// noLump marks an Error/Warning as not belonging to any particular lump.
const noLump LumpRole = -1
