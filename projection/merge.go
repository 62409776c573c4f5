// Package projection builds the local timeline from observed records.
// Handles ordering, deduplication, and the pre-load buffer.
// Does not talk to the backend or the UI directly.
package projection

import (
	"chat-sync/domain"
	"chat-sync/errors"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type stamped struct {
	msg domain.Message
	at  time.Time
}

// Merge folds incoming records into current and returns a new slice.
//
// Records are unioned by ID: a record sharing an ID with an earlier one
// replaces it in place (last arrival wins, revisions are not compared).
// The result is sorted by creation time with ties kept in arrival order.
// Records without an ID or with a missing or unparseable creation time are
// dropped; each one is reported as an errors.MalformedRecordError in the
// joined error while the rest of the batch is still merged.
func Merge(current []domain.Message, incoming ...domain.Message) ([]domain.Message, error) {
	var errs []error
	merged := make([]stamped, 0, len(current)+len(incoming))
	position := make(map[string]int, len(current)+len(incoming))

	add := func(msg domain.Message) {
		at, err := Validate(msg)
		if err != nil {
			errs = append(errs, err)
			return
		}
		if i, ok := position[msg.ID]; ok {
			merged[i] = stamped{msg: msg, at: at}
			return
		}
		position[msg.ID] = len(merged)
		merged = append(merged, stamped{msg: msg, at: at})
	}
	for _, msg := range current {
		add(msg)
	}
	for _, msg := range incoming {
		add(msg)
	}

	slices.SortStableFunc(merged, func(a, b stamped) int {
		return a.at.Compare(b.at)
	})
	return lo.Map(merged, func(item stamped, _ int) domain.Message {
		return item.msg
	}), stderrors.Join(errs...)
}

// Validate checks the shape of a record and returns its parsed creation time.
func Validate(msg domain.Message) (time.Time, error) {
	if err := validate.Struct(msg); err != nil {
		return time.Time{}, errors.MalformedRecordError{ID: msg.ID, Reason: reason(err)}
	}
	at, err := msg.CreatedTime()
	if err != nil {
		return time.Time{}, errors.MalformedRecordError{
			ID:     msg.ID,
			Reason: fmt.Sprintf("unparseable creation timestamp %q", msg.CreatedAt),
		}
	}
	return at, nil
}

func reason(err error) string {
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return err.Error()
	}
	return strings.Join(lo.Map(fieldErrors, func(fe validator.FieldError, _ int) string {
		return fmt.Sprintf("%s is %s", fe.Field(), fe.Tag())
	}), ", ")
}
