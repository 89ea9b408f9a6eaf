package order

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusServed  Status = "served"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusServed
}

// ParseStatus accepts only the known statuses.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, raw)
	}
	return s, nil
}

// ParseStatusList parses a comma separated filter such as "pending,served".
// An empty string means no filter.
func ParseStatusList(raw string) ([]Status, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var statuses []Status
	seen := map[Status]bool{}
	for _, part := range strings.Split(raw, ",") {
		s, err := ParseStatus(part)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			statuses = append(statuses, s)
		}
	}
	return statuses, nil
}
