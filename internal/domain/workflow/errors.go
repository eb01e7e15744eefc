package workflow

import "github.com/campusconnect/campus-api/internal/domain"

// Rejection errors produced by Validate. Each is a distinct sentinel for
// errors.Is checks and additionally unwraps to a shared domain sentinel
// (ErrConflict for state-shape rejections, ErrForbidden for actor
// rejections) so the HTTP error mapper needs no workflow-specific cases.
// Validator rejections are deterministic and never retried.
var (
	ErrUnknownTransition = &rejection{msg: "unknown transition for current state", base: domain.ErrConflict}
	ErrTerminal          = &rejection{msg: "item is in a terminal state", base: domain.ErrConflict}
	ErrAlreadyOffered    = &rejection{msg: "helper already offered on this item", base: domain.ErrConflict}
	ErrWrongRole         = &rejection{msg: "actor role may not trigger this transition", base: domain.ErrForbidden}
	ErrNotOwner          = &rejection{msg: "only the item owner may trigger this transition", base: domain.ErrForbidden}
	ErrIsOwner           = &rejection{msg: "the item owner may not trigger this transition", base: domain.ErrForbidden}
)

type rejection struct {
	msg  string
	base error
}

func (e *rejection) Error() string { return e.msg }

func (e *rejection) Unwrap() error { return e.base }
