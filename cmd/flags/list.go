package flags

import (
	"strings"
)

// List is a comma separated string slice flag. Setting it appends unless the value is empty.
type List struct {
	Value *[]string
}

func NewList(values string) *List {
	v := splitAndTrimEmpty(values, ",", " \t\r\n\b")

	return &List{Value: &v}
}

func (l *List) Set(values string) error {
	if values == "" {
		*l.Value = make([]string, 0)
	} else {
		*l.Value = append(*l.Value, splitAndTrimEmpty(values, ",", " \t\r\n\b")...)
	}

	return nil
}

func (l *List) String() string {
	return "[" + strings.Join(*l.Value, ",") + "]"
}

func (l List) Type() string {
	return "stringSlice"
}

func splitAndTrimEmpty(s, sep, cutset string) []string {
	if s == "" {
		return []string{}
	}

	spl := strings.Split(s, sep)
	nonEmptyStrings := make([]string, 0, len(spl))

	for i := 0; i < len(spl); i++ {
		element := strings.Trim(spl[i], cutset)
		if element != "" {
			nonEmptyStrings = append(nonEmptyStrings, element)
		}
	}

	return nonEmptyStrings
}
