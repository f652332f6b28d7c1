package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrCityNotFound:     "Run 'mtplates' without arguments to add the city interactively, or use 'mtplates add'.",
	ErrUnknownCounty:    "Use 'mtplates counties' to see the recognized Montana counties.",
	ErrSeedMissing:      "Check the --seed flag or MTPLATES_SEED_FILE; omit both to use the built-in dataset.",
	ErrSeedMalformed:    "Every seed row must have exactly three fields: city,county,prefix.",
	ErrDiskFull:         "Free up disk space and try again. The entry was not saved.",
	ErrPermissionDenied: "Check file permissions in your data directory (~/.local/share/mtplates/).",
	ErrInvalidBackend:   "Use --backend text or --backend badger.",
}

// GetSuggestion returns a suggestion for an error, if available.
// A UserError's own suggestion wins over the generic one for its sentinel.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	// Disk full and permission problems are more specific than the persist failure.
	for _, known := range []error{ErrDiskFull, ErrPermissionDenied} {
		if errors.Is(err, known) {
			return Suggestions[known]
		}
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}
