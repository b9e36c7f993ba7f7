package logging

import "time"

// LogField pairs key with an arbitrary value.
func LogField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func StringField(key, value string) Field { return LogField(key, value) }

func IntField(key string, value int) Field { return LogField(key, value) }

func BoolField(key string, value bool) Field { return LogField(key, value) }

// DurationField records d in whole milliseconds.
func DurationField(key string, d time.Duration) Field {
	return LogField(key, d.Milliseconds())
}

// ErrorField records err under "error"; a nil err is "<nil>".
func ErrorField(err error) Field {
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	return LogField("error", msg)
}

// MatcherField names the matcher an entry is about.
func MatcherField(name string) Field { return LogField("matcher", name) }

// TargetField names the value an entry is about.
func TargetField(name string) Field { return LogField("target", name) }
