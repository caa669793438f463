package schemata

type options struct {
	logger     *Logger
	strict     bool
	fieldIndex bool
}

func defaultOptions() options {
	return options{
		logger: NewLogger(nil),
	}
}

// Option configures a Schema.
//
// Options never change the record layout; two schemas with the same key type
// and fields accept the same entries regardless of their options.
type Option func(*options)

// WithLogger configures the logger that receives decode failures.
//
// If nil is passed, a logger backed by slog.Default() is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NewLogger(nil)
		}
		o.logger = l
	}
}

// WithStrictTypes makes writes check the value type against the declared
// field type.
//
// Schema.SetField then returns a *TypeMismatchError and EntryBuilder panics
// on a mismatch. By default writes are not checked and a mismatching value
// is stored as is; reading it back decodes the blob with the declared type.
func WithStrictTypes() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithFieldIndex precomputes a name to position table for field lookups.
//
// Lookups are linear scans otherwise, which is the better choice for the
// small schemas this package targets. Results are identical either way.
func WithFieldIndex() Option {
	return func(o *options) {
		o.fieldIndex = true
	}
}
