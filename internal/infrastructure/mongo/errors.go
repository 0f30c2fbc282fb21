package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/minimart/catalog-api/internal/pkg/storeerr"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes this adapter cares about. Anything unlisted falls
// through to storeerr.ErrInternal.
const (
	codeBadValue                        = 2
	codeFailedToParse                   = 9
	codeTypeMismatch                    = 14
	codeNamespaceNotFound               = 26
	codeExceededTimeLimit               = 50
	codeShutdownInProgress              = 91
	codeWriteConflict                   = 112
	codeInterruptedAtShutdown           = 11600
	codeInterruptedDueToReplStateChange = 11602
)

// mapError normalizes driver failures into the store taxonomy. Conditional
// no-match outcomes (ErrNoDocuments, zero matched count) are handled at the
// call sites, not here.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", storeerr.ErrUnavailable, err)
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", storeerr.ErrConditionFailed, err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeWriteConflict, codeExceededTimeLimit:
			return fmt.Errorf("%w: %v", storeerr.ErrThrottled, err)
		case codeShutdownInProgress, codeInterruptedAtShutdown, codeInterruptedDueToReplStateChange:
			return fmt.Errorf("%w: %v", storeerr.ErrUnavailable, err)
		case codeBadValue, codeFailedToParse, codeTypeMismatch:
			return fmt.Errorf("%w: %v", storeerr.ErrMalformed, err)
		case codeNamespaceNotFound:
			return fmt.Errorf("%w: collection missing: %v", storeerr.ErrInternal, err)
		}
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			switch we.Code {
			case codeWriteConflict:
				return fmt.Errorf("%w: %v", storeerr.ErrThrottled, err)
			case codeBadValue, codeFailedToParse, codeTypeMismatch:
				return fmt.Errorf("%w: %v", storeerr.ErrMalformed, err)
			}
		}
	}

	return fmt.Errorf("%w: %v", storeerr.ErrInternal, err)
}
