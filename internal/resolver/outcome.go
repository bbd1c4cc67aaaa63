package resolver

import (
	"errors"
	"strconv"

	"linewar-tracker/internal/api"
)

var ErrSearchAborted = errors.New("search aborted")

type OutcomeKind int

const (
	KindResolved OutcomeKind = iota + 1
	// KindNotFound: the provider reported zero matches. Not worth retrying soon.
	KindNotFound
	// KindAborted: the search depth ran out without a match or a zero-result
	// page. A deeper search may still succeed.
	KindAborted
)

func (k OutcomeKind) String() string {
	switch k {
	case KindResolved:
		return "resolved"
	case KindNotFound:
		return "not_found"
	case KindAborted:
		return "aborted"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

type Outcome struct {
	Kind    OutcomeKind
	SteamID uint64
}

func Resolved(id uint64) Outcome { return Outcome{Kind: KindResolved, SteamID: id} }

func NotFound() Outcome { return Outcome{Kind: KindNotFound} }

func Aborted() Outcome { return Outcome{Kind: KindAborted} }

func (o Outcome) IsResolved() bool { return o.Kind == KindResolved }

// Err maps an unresolved outcome to its sentinel error, nil when resolved.
func (o Outcome) Err() error {
	switch o.Kind {
	case KindResolved:
		return nil
	case KindNotFound:
		return api.ErrUserNotFound
	default:
		return ErrSearchAborted
	}
}

func (o Outcome) String() string {
	if o.Kind == KindResolved {
		return "resolved(" + strconv.FormatUint(o.SteamID, 10) + ")"
	}
	return o.Kind.String()
}
