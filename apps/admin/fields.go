package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/JaMeS-18-18/ForPluto/apps"
	"github.com/JaMeS-18-18/ForPluto/core/roster"
)

// minHintRatio is the similarity under which no "did you mean" hint is given.
const minHintRatio = 0.6

// closestField returns the field of grp most similar to field, "" if none is similar enough.
func closestField(grp roster.Group, field string) string {
	want := strings.Split(strings.ToLower(field), "")
	best, bestRatio := "", minHintRatio
	for _, f := range grp.Fields {
		m := difflib.NewMatcher(want, strings.Split(strings.ToLower(f), ""))
		if ratio := m.Ratio(); ratio >= bestRatio && (best == "" || ratio > bestRatio) {
			best, bestRatio = f, ratio
		}
	}
	return best
}

func unknownFieldError(grp roster.Group, field string) error {
	if hint := closestField(grp, field); hint != "" {
		return apps.NewArgumentError(fmt.Sprintf("unknown field %q, did you mean %q?", field, hint))
	}
	return apps.NewArgumentError(fmt.Sprintf("unknown field %q", field))
}

// parseValue reads a command line value as a value of kind.
// Notes are given as a JSON array of strings, or as a single note.
func parseValue(kind roster.FieldKind, s string) (roster.Value, error) {
	switch kind {
	case roster.KindBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return roster.Value{}, apps.NewArgumentError(fmt.Sprintf("%q is not a boolean (true|false)", s))
		}
		return roster.BoolValue(b), nil
	case roster.KindNoteList:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return roster.NotesValue(), nil
		}
		if !strings.HasPrefix(trimmed, "[") {
			return roster.NotesValue(s), nil
		}
		var notes []string
		if err := json.Unmarshal([]byte(trimmed), &notes); err != nil {
			return roster.Value{}, apps.NewArgumentError(fmt.Sprintf("%q is not a JSON array of strings", s))
		}
		return roster.NotesValue(notes...), nil
	default:
		return roster.TextValue(s), nil
	}
}
