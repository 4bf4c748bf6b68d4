package levels

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels/formats"
)

// ErrMalformedLevel is wrapped by every ValidationError.
var ErrMalformedLevel = errors.New("malformed level")

// Validation codes.
const (
	CodeParse         = "PARSE"
	CodeMissingField  = "MISSING_FIELD"
	CodeNoBottles     = "NO_BOTTLES"
	CodeBadCount      = "BAD_COUNT"
	CodeTooManyColors = "TOO_MANY_COLORS"
	CodeUnknownColor  = "UNKNOWN_COLOR"
	CodeDuplicateID   = "DUPLICATE_ID"
	CodeUnsolvable    = "UNSOLVABLE"

	// CodeColorBalance is reported as a warning only.
	CodeColorBalance = "COLOR_BALANCE"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap lets callers match any validation failure with ErrMalformedLevel.
func (e ValidationError) Unwrap() error {
	return ErrMalformedLevel
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("liquidcolor", func(fl validator.FieldLevel) bool {
		_, ok := core.ParseColor(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks a parsed level file and returns the first problem found.
func Validate(yl formats.YAMLLevel) error {
	if err := validate.Struct(yl); err != nil {
		return translate(yl, err)
	}
	for i, b := range yl.Bottles {
		if b.Count != nil && *b.Count > len(b.Colors) {
			return ValidationError{
				Code:    CodeBadCount,
				Message: fmt.Sprintf("bottle %d: count %d exceeds %d listed colors", i+1, *b.Count, len(b.Colors)),
			}
		}
	}
	return nil
}

// translate maps the first validator failure to a coded error.
func translate(yl formats.YAMLLevel, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ValidationError{Code: CodeParse, Message: err.Error()}
	}

	fe := verrs[0]
	ns := fe.Namespace()
	switch {
	case fe.Field() == "ID":
		return ValidationError{Code: CodeMissingField, Message: "level id is required"}
	case fe.Field() == "Bottles":
		return ValidationError{Code: CodeNoBottles, Message: fmt.Sprintf("level %q has no bottles", yl.ID)}
	case fe.Field() == "Count":
		return ValidationError{
			Code:    CodeBadCount,
			Message: fmt.Sprintf("%s: count %v outside [0,%d]", bottleRef(ns), fe.Value(), core.Capacity),
		}
	case fe.Field() == "Colors" && fe.Tag() == "max":
		return ValidationError{
			Code:    CodeTooManyColors,
			Message: fmt.Sprintf("%s: more than %d colors", bottleRef(ns), core.Capacity),
		}
	case fe.Tag() == "liquidcolor":
		return ValidationError{
			Code:    CodeUnknownColor,
			Message: fmt.Sprintf("%s: unknown color %q", bottleRef(ns), fe.Value()),
		}
	default:
		return ValidationError{Code: CodeParse, Message: fe.Error()}
	}
}

// bottleRef turns "YAMLLevel.Bottles[2].Count" into "bottle 3".
func bottleRef(namespace string) string {
	start := strings.Index(namespace, "Bottles[")
	if start < 0 {
		return "bottle"
	}
	rest := namespace[start+len("Bottles["):]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return "bottle"
	}
	var n int
	if _, err := fmt.Sscanf(rest[:end], "%d", &n); err != nil {
		return "bottle"
	}
	return fmt.Sprintf("bottle %d", n+1)
}

// Warnings reports content problems that do not prevent loading.
// Colors whose total is not a multiple of the bottle capacity make the
// level impossible to complete.
func Warnings(lvl Level) []ValidationError {
	totals := lvl.NewBoard().ColorTotals()
	colors := make([]core.Color, 0, len(totals))
	for c := range totals {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })

	var warns []ValidationError
	for _, c := range colors {
		if totals[c]%core.Capacity != 0 {
			warns = append(warns, ValidationError{
				Code:    CodeColorBalance,
				Message: fmt.Sprintf("%s has %d layers, not a multiple of %d", c, totals[c], core.Capacity),
			})
		}
	}
	return warns
}

// CheckSolvable runs the solver and reports an unsolvable level as a
// ValidationError. A search that hits the limit is returned unchanged.
func CheckSolvable(lvl Level, limit int) (core.Solution, error) {
	sol, err := core.Solve(lvl.NewBoard(), limit)
	if errors.Is(err, core.ErrUnsolvable) {
		return sol, ValidationError{
			Code:    CodeUnsolvable,
			Message: fmt.Sprintf("level %q has no solution (%d positions explored)", lvl.ID, sol.Explored),
		}
	}
	return sol, err
}
